// Package gridfilter translates between the DataGrid filter/sort model used by
// the dashboard and the {field, operator, value} filters understood by the
// REST list endpoints.
package gridfilter

import (
	"fmt"

	"github.com/noah-isme/refine-admin-api/internal/models"
)

// Kind identifies an operator table.
type Kind string

const (
	KindString   Kind = "string"
	KindNumber   Kind = "number"
	KindCategory Kind = "category"
)

// Backend field and grid column names that differ between the two models.
const (
	FieldCategoryID = "category.id"
	ColumnCategory  = "category"
)

type entry struct {
	code    models.CrudOperator
	label   string
	aliases []string
}

// table is the single source for one operator kind. Both lookup directions
// are derived from entries; aliases only exist in the label to code direction.
type table struct {
	kind    Kind
	entries []entry
	forward map[models.CrudOperator]string
	inverse map[string]models.CrudOperator
}

func newTable(kind Kind, entries ...entry) *table {
	t := &table{
		kind:    kind,
		entries: entries,
		forward: make(map[models.CrudOperator]string, len(entries)),
		inverse: make(map[string]models.CrudOperator, len(entries)),
	}
	for _, e := range entries {
		if _, dup := t.forward[e.code]; dup {
			panic(fmt.Sprintf("gridfilter: duplicate code %q in %s table", e.code, kind))
		}
		t.forward[e.code] = e.label
		for _, label := range append([]string{e.label}, e.aliases...) {
			if _, dup := t.inverse[label]; dup {
				panic(fmt.Sprintf("gridfilter: duplicate label %q in %s table", label, kind))
			}
			t.inverse[label] = e.code
		}
	}
	return t
}

func (t *table) label(code models.CrudOperator) (string, bool) {
	label, ok := t.forward[code]
	return label, ok
}

func (t *table) code(label string) (models.CrudOperator, bool) {
	code, ok := t.inverse[label]
	return code, ok
}

func (t *table) labels() []string {
	out := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.label)
	}
	return out
}

var (
	stringTable = newTable(KindString,
		entry{code: models.OperatorEq, label: "equals", aliases: []string{"is"}},
		entry{code: models.OperatorContains, label: "contains"},
	)

	numberTable = newTable(KindNumber,
		entry{code: models.OperatorEq, label: "="},
		entry{code: models.OperatorNe, label: "!="},
		entry{code: models.OperatorGt, label: ">"},
		entry{code: models.OperatorLt, label: "<"},
		entry{code: models.OperatorGte, label: ">="},
		entry{code: models.OperatorLte, label: "<="},
	)

	categoryTable = newTable(KindCategory,
		entry{code: models.OperatorEq, label: EquivalentOperatorValue},
	)

	tables = map[Kind]*table{
		KindString:   stringTable,
		KindNumber:   numberTable,
		KindCategory: categoryTable,
	}

	// fieldKinds is keyed by backend field name.
	fieldKinds = map[string]Kind{
		"id":            KindNumber,
		"title":         KindString,
		"status":        KindString,
		FieldCategoryID: KindCategory,
	}
)

// KindOf returns the operator kind for a backend field. Unknown fields fall
// back to the string table.
func KindOf(field string) Kind {
	if kind, ok := fieldKinds[field]; ok {
		return kind
	}
	return KindString
}

func tableFor(field string) *table {
	return tables[KindOf(field)]
}

// Label returns the grid label for a backend operator code on a field.
func Label(field string, code models.CrudOperator) (string, bool) {
	return tableFor(field).label(code)
}

// Code returns the backend operator code for a grid label on a field.
func Code(field, label string) (models.CrudOperator, bool) {
	return tableFor(field).code(label)
}

// Codes lists the backend operator codes a field supports, in table order.
func Codes(field string) []models.CrudOperator {
	t := tableFor(field)
	out := make([]models.CrudOperator, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.code)
	}
	return out
}

// ColumnFor maps a backend field to the grid column that renders it.
func ColumnFor(field string) string {
	if field == FieldCategoryID {
		return ColumnCategory
	}
	return field
}

// FieldFor maps a grid column to the backend field it filters on.
func FieldFor(column string) string {
	if column == ColumnCategory {
		return FieldCategoryID
	}
	return column
}
