package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/refine-admin-api/internal/models"
	appErrors "github.com/noah-isme/refine-admin-api/pkg/errors"
)

// Columns whitelists the filterable and sortable fields of a resource, keyed
// by API field name, valued by SQL expression.
type Columns map[string]string

// ValueType constrains the filter values a column accepts.
type ValueType int

const (
	TypeText ValueType = iota
	TypeInt
	TypeTime
)

// Types declares the value type of the non-text columns of a resource.
type Types map[string]ValueType

// Clause is a compiled list query.
type Clause struct {
	Where   string
	Args    []interface{}
	OrderBy string
	Limit   int
	Offset  int
}

// Builder compiles list queries for one resource.
type Builder struct {
	columns     Columns
	types       Types
	search      []string
	defaultSort string
}

// NewBuilder constructs a Builder. defaultSort is used when the query carries
// no sorts; search lists the expressions matched by the q parameter.
func NewBuilder(columns Columns, defaultSort string, search ...string) *Builder {
	return &Builder{columns: columns, search: search, defaultSort: defaultSort}
}

// WithTypes makes Build reject filter values that do not parse as the
// declared column type.
func (b *Builder) WithTypes(types Types) *Builder {
	b.types = types
	return b
}

// Build compiles filters into a WHERE clause with positional arguments and
// sorts into an ORDER BY list. Filters with an empty value are skipped;
// values that do not fit the column type are validation errors.
func (b *Builder) Build(q models.ListQuery) (Clause, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	for _, f := range q.Filters {
		if f.Value == "" {
			continue
		}
		column, err := b.column(f.Field)
		if err != nil {
			return Clause{}, err
		}
		if f.Operator != models.OperatorContains {
			if err := b.checkValue(f); err != nil {
				return Clause{}, err
			}
		}
		switch f.Operator {
		case models.OperatorEq:
			conditions = append(conditions, fmt.Sprintf("%s = %s", column, next(f.Value)))
		case models.OperatorNe:
			conditions = append(conditions, fmt.Sprintf("%s <> %s", column, next(f.Value)))
		case models.OperatorGt:
			conditions = append(conditions, fmt.Sprintf("%s > %s", column, next(f.Value)))
		case models.OperatorLt:
			conditions = append(conditions, fmt.Sprintf("%s < %s", column, next(f.Value)))
		case models.OperatorGte:
			conditions = append(conditions, fmt.Sprintf("%s >= %s", column, next(f.Value)))
		case models.OperatorLte:
			conditions = append(conditions, fmt.Sprintf("%s <= %s", column, next(f.Value)))
		case models.OperatorContains:
			conditions = append(conditions, fmt.Sprintf("%s::text ILIKE %s", column, next(likePattern(f.Value))))
		case models.OperatorIn:
			values := splitList(f.Value)
			if len(values) == 0 {
				return Clause{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s: empty value list", f.Field))
			}
			placeholders := make([]string, 0, len(values))
			for _, v := range values {
				placeholders = append(placeholders, next(v))
			}
			conditions = append(conditions, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")))
		default:
			return Clause{}, appErrors.Clone(appErrors.ErrUnsupportedOperator, fmt.Sprintf("operator %q is not supported", f.Operator))
		}
	}

	if q.Search != "" && len(b.search) > 0 {
		placeholder := next(likePattern(q.Search))
		matches := make([]string, 0, len(b.search))
		for _, expr := range b.search {
			matches = append(matches, fmt.Sprintf("%s ILIKE %s", expr, placeholder))
		}
		conditions = append(conditions, "("+strings.Join(matches, " OR ")+")")
	}

	orderBy, err := b.orderBy(q.Sorts)
	if err != nil {
		return Clause{}, err
	}

	return Clause{
		Where:   "WHERE " + strings.Join(conditions, " AND "),
		Args:    args,
		OrderBy: orderBy,
		Limit:   q.Limit(),
		Offset:  q.Offset(),
	}, nil
}

func (b *Builder) orderBy(sorts []models.CrudSort) (string, error) {
	if len(sorts) == 0 {
		return b.defaultSort, nil
	}
	parts := make([]string, 0, len(sorts))
	for _, s := range sorts {
		column, err := b.column(s.Field)
		if err != nil {
			return "", err
		}
		order := "ASC"
		if s.Order == models.SortDesc {
			order = "DESC"
		}
		parts = append(parts, column+" "+order)
	}
	return strings.Join(parts, ", "), nil
}

func (b *Builder) column(field string) (string, error) {
	column, ok := b.columns[field]
	if !ok {
		return "", appErrors.Clone(appErrors.ErrUnknownField, fmt.Sprintf("unknown field %q", field))
	}
	return column, nil
}

func (b *Builder) checkValue(f models.CrudFilter) error {
	kind, ok := b.types[f.Field]
	if !ok || kind == TypeText {
		return nil
	}
	values := []string{f.Value}
	if f.Operator == models.OperatorIn {
		values = splitList(f.Value)
	}
	for _, v := range values {
		if !validValue(kind, v) {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid value %q for field %q", v, f.Field))
		}
	}
	return nil
}

func validValue(kind ValueType, v string) bool {
	switch kind {
	case TypeInt:
		_, err := strconv.ParseInt(v, 10, 64)
		return err == nil
	case TypeTime:
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return true
		}
		_, err := time.Parse(time.DateOnly, v)
		return err == nil
	default:
		return true
	}
}

func likePattern(v string) string {
	escaped := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(v)
	return "%" + escaped + "%"
}
