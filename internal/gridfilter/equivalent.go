package gridfilter

import (
	"strconv"

	"github.com/noah-isme/refine-admin-api/internal/models"
)

// EquivalentOperatorValue is the custom operator installed on the category
// column. The column renders a {id, title} object, so the grid's built-in
// operators cannot compare it against the selected id.
const EquivalentOperatorValue = "equivalent"

// CategoryCell is the value of the category column.
type CategoryCell = models.CategoryRef

// EquivalentOperator is the filter panel descriptor for the category column.
func EquivalentOperator() FilterOperator {
	return FilterOperator{
		Value:           EquivalentOperatorValue,
		Label:           EquivalentOperatorValue,
		InputType:       "select",
		OptionsResource: models.ResourceCategories,
		Placeholder:     "Select category",
	}
}

// EquivalentApplyFn returns the client-side predicate for an equivalent
// filter item, or nil when the item is incomplete and filters nothing.
func EquivalentApplyFn(item FilterItem) func(CategoryCell) bool {
	value := ValueString(item.Value)
	if item.ColumnField == "" || item.OperatorValue == "" || value == "" {
		return nil
	}
	return func(cell CategoryCell) bool {
		return strconv.FormatInt(cell.ID, 10) == value
	}
}
