// Package query parses and encodes the simple-rest list querystring and
// compiles the resulting filters into SQL.
package query

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/noah-isme/refine-admin-api/internal/models"
	appErrors "github.com/noah-isme/refine-admin-api/pkg/errors"
)

// Reserved querystring keys.
const (
	ParamStart  = "_start"
	ParamEnd    = "_end"
	ParamSort   = "_sort"
	ParamOrder  = "_order"
	ParamSearch = "q"
	// ParamID repeated selects several records at once (getMany).
	ParamID = "id"
)

// suffixes are checked longest first so _gte is not read as _gt.
var suffixes = []struct {
	suffix   string
	operator models.CrudOperator
}{
	{"_gte", models.OperatorGte},
	{"_lte", models.OperatorLte},
	{"_like", models.OperatorContains},
	{"_ne", models.OperatorNe},
	{"_gt", models.OperatorGt},
	{"_lt", models.OperatorLt},
}

// Parse reads a simple-rest list querystring.
func Parse(values url.Values) (models.ListQuery, error) {
	q := models.ListQuery{Filters: []models.CrudFilter{}, Sorts: []models.CrudSort{}}

	start, err := intParam(values, ParamStart, 0)
	if err != nil {
		return models.ListQuery{}, err
	}
	end, err := intParam(values, ParamEnd, start+models.DefaultPageSize)
	if err != nil {
		return models.ListQuery{}, err
	}
	if start < 0 || end < start {
		return models.ListQuery{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid window %d..%d", start, end))
	}
	q.Start, q.End = start, end

	sorts, err := parseSorts(values.Get(ParamSort), values.Get(ParamOrder))
	if err != nil {
		return models.ListQuery{}, err
	}
	q.Sorts = sorts
	q.Search = strings.TrimSpace(values.Get(ParamSearch))

	keys := make([]string, 0, len(values))
	for key := range values {
		if strings.HasPrefix(key, "_") || key == ParamSearch {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		vals := values[key]
		if key == ParamID && len(vals) > 1 {
			ids := make([]string, 0, len(vals))
			for _, v := range vals {
				ids = append(ids, splitList(v)...)
			}
			if len(ids) > 0 {
				q.Filters = append(q.Filters, models.CrudFilter{Field: ParamID, Operator: models.OperatorIn, Value: strings.Join(ids, ",")})
			}
			continue
		}
		field, op := splitKey(key)
		for _, v := range vals {
			if v == "" {
				continue
			}
			q.Filters = append(q.Filters, models.CrudFilter{Field: field, Operator: op, Value: v})
		}
	}

	return q, nil
}

// Encode renders a list query as a simple-rest querystring. Parse(Encode(q))
// reproduces q up to filter ordering.
func Encode(q models.ListQuery) url.Values {
	values := url.Values{}
	if q.End > 0 {
		values.Set(ParamStart, strconv.Itoa(q.Offset()))
		values.Set(ParamEnd, strconv.Itoa(q.End))
	}
	if len(q.Sorts) > 0 {
		fields := make([]string, 0, len(q.Sorts))
		orders := make([]string, 0, len(q.Sorts))
		for _, s := range q.Sorts {
			fields = append(fields, s.Field)
			orders = append(orders, string(s.Order))
		}
		values.Set(ParamSort, strings.Join(fields, ","))
		values.Set(ParamOrder, strings.Join(orders, ","))
	}
	if q.Search != "" {
		values.Set(ParamSearch, q.Search)
	}
	for _, f := range q.Filters {
		switch f.Operator {
		case models.OperatorEq:
			values.Add(f.Field, f.Value)
		case models.OperatorIn:
			for _, v := range strings.Split(f.Value, ",") {
				values.Add(f.Field, v)
			}
		default:
			values.Add(f.Field+suffixFor(f.Operator), f.Value)
		}
	}
	return values
}

func splitKey(key string) (string, models.CrudOperator) {
	for _, s := range suffixes {
		if field, ok := strings.CutSuffix(key, s.suffix); ok && field != "" {
			return field, s.operator
		}
	}
	return key, models.OperatorEq
}

func suffixFor(op models.CrudOperator) string {
	for _, s := range suffixes {
		if s.operator == op {
			return s.suffix
		}
	}
	return ""
}

func parseSorts(rawFields, rawOrders string) ([]models.CrudSort, error) {
	fields := splitList(rawFields)
	orders := splitList(rawOrders)
	sorts := make([]models.CrudSort, 0, len(fields))
	for i, field := range fields {
		order := models.SortAsc
		if i < len(orders) {
			switch strings.ToLower(orders[i]) {
			case "asc":
			case "desc":
				order = models.SortDesc
			default:
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid sort order %q", orders[i]))
			}
		}
		sorts = append(sorts, models.CrudSort{Field: field, Order: order})
	}
	return sorts, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func intParam(values url.Values, key string, fallback int) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be an integer", key))
	}
	return n, nil
}
