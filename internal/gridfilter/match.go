package gridfilter

import (
	"strconv"
	"strings"

	"github.com/noah-isme/refine-admin-api/internal/models"
)

// Row is a grid row keyed by column field.
type Row map[string]any

// PostRow builds the grid row for a post.
func PostRow(p models.Post) Row {
	return Row{
		"id":           p.ID,
		"title":        p.Title,
		"status":       string(p.Status),
		"createdAt":    p.CreatedAt,
		ColumnCategory: CategoryCell(p.Category),
	}
}

// Match evaluates a grid filter item against a row in memory, the way the
// grid previews a filter client side. Incomplete items match every row.
func Match(row Row, item FilterItem) (bool, error) {
	if item.ColumnField == "" || item.OperatorValue == "" || ValueString(item.Value) == "" {
		return true, nil
	}

	if item.OperatorValue == EquivalentOperatorValue {
		cell, ok := row[item.ColumnField].(CategoryCell)
		if !ok {
			return false, nil
		}
		return EquivalentApplyFn(item)(cell), nil
	}

	code, ok := Code(FieldFor(item.ColumnField), item.OperatorValue)
	if !ok {
		return false, unsupported("operator %q is not supported on column %q", item.OperatorValue, item.ColumnField)
	}
	return compare(code, ValueString(row[item.ColumnField]), ValueString(item.Value)), nil
}

func compare(code models.CrudOperator, cell, value string) bool {
	if code == models.OperatorContains {
		return strings.Contains(strings.ToLower(cell), strings.ToLower(value))
	}

	var cmp int
	a, errA := strconv.ParseFloat(cell, 64)
	b, errB := strconv.ParseFloat(value, 64)
	if errA == nil && errB == nil {
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(strings.ToLower(cell), strings.ToLower(value))
	}

	switch code {
	case models.OperatorEq:
		return cmp == 0
	case models.OperatorNe:
		return cmp != 0
	case models.OperatorGt:
		return cmp > 0
	case models.OperatorLt:
		return cmp < 0
	case models.OperatorGte:
		return cmp >= 0
	case models.OperatorLte:
		return cmp <= 0
	}
	return false
}

// MatchModel evaluates every item of model against row, joined by the
// model's link operator (and by default). An empty model matches every row.
func MatchModel(row Row, model FilterModel) (bool, error) {
	if len(model.Items) == 0 {
		return true, nil
	}
	either := model.LinkOperator == LinkOr
	for _, item := range model.Items {
		ok, err := Match(row, item)
		if err != nil {
			return false, err
		}
		if either && ok {
			return true, nil
		}
		if !either && !ok {
			return false, nil
		}
	}
	return !either, nil
}
