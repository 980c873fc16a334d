package gridfilter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/noah-isme/refine-admin-api/internal/models"
	appErrors "github.com/noah-isme/refine-admin-api/pkg/errors"
)

// ErrUnsupportedOperator is wrapped by every translation failure caused by an
// operator that has no mapping for the field.
var ErrUnsupportedOperator = errors.New("gridfilter: unsupported operator")

func unsupported(format string, args ...any) error {
	return appErrors.Wrap(ErrUnsupportedOperator, appErrors.ErrUnsupportedOperator.Code, appErrors.ErrUnsupportedOperator.Status, fmt.Sprintf(format, args...))
}

// ToUIFilterModel renders backend filters as grid filter state. The grid shows
// a single filter, so only filters[0] is translated.
func ToUIFilterModel(filters []models.CrudFilter) (FilterModel, error) {
	model := FilterModel{Items: []FilterItem{}, LinkOperator: LinkAnd}
	if len(filters) == 0 {
		return model, nil
	}

	first := filters[0]
	label, ok := Label(first.Field, first.Operator)
	if !ok {
		return FilterModel{}, unsupported("operator %q is not supported on field %q", first.Operator, first.Field)
	}

	model.Items = append(model.Items, FilterItem{
		ColumnField:   ColumnFor(first.Field),
		OperatorValue: label,
		Value:         first.Value,
	})
	return model, nil
}

// ToBackendFilter converts the first grid filter item into a single-element
// backend filter list. An empty model yields an empty list.
func ToBackendFilter(model FilterModel) ([]models.CrudFilter, error) {
	if len(model.Items) == 0 {
		return []models.CrudFilter{}, nil
	}

	item := model.Items[0]
	field := FieldFor(item.ColumnField)
	code, ok := Code(field, item.OperatorValue)
	if !ok {
		return nil, unsupported("operator %q is not supported on column %q", item.OperatorValue, item.ColumnField)
	}

	return []models.CrudFilter{{
		Field:    field,
		Operator: code,
		Value:    ValueString(item.Value),
	}}, nil
}

// ToUISortModel relabels backend sorts as grid sort items, preserving order.
func ToUISortModel(sorts []models.CrudSort) []SortItem {
	out := make([]SortItem, 0, len(sorts))
	for _, s := range sorts {
		out = append(out, SortItem{Field: s.Field, Sort: string(s.Order)})
	}
	return out
}

// ToBackendSort relabels grid sort items as backend sorts, preserving order.
func ToBackendSort(items []SortItem) []models.CrudSort {
	out := make([]models.CrudSort, 0, len(items))
	for _, item := range items {
		out = append(out, models.CrudSort{Field: item.Field, Order: models.SortOrder(item.Sort)})
	}
	return out
}

// ValueString flattens a grid filter value into the backend string form.
// Absent values become "".
func ValueString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case json.Number:
		return value.String()
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprint(value)
	}
}
