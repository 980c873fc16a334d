package models

// CrudOperator is the backend filter operator code understood by the REST layer.
type CrudOperator string

const (
	OperatorEq       CrudOperator = "eq"
	OperatorNe       CrudOperator = "ne"
	OperatorGt       CrudOperator = "gt"
	OperatorLt       CrudOperator = "lt"
	OperatorGte      CrudOperator = "gte"
	OperatorLte      CrudOperator = "lte"
	OperatorContains CrudOperator = "contains"
	// OperatorIn is only produced by repeated id parameters (getMany).
	OperatorIn CrudOperator = "in"
)

// Valid reports whether the operator is supported by the query layer.
func (o CrudOperator) Valid() bool {
	switch o {
	case OperatorEq, OperatorNe, OperatorGt, OperatorLt, OperatorGte, OperatorLte, OperatorContains, OperatorIn:
		return true
	}
	return false
}

// CrudFilter is a single {field, operator, value} backend filter.
// Values of OperatorIn filters are comma separated.
type CrudFilter struct {
	Field    string       `json:"field"`
	Operator CrudOperator `json:"operator"`
	Value    string       `json:"value"`
}

// SortOrder is the direction of a sort entry.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// CrudSort orders list results by field.
type CrudSort struct {
	Field string    `json:"field"`
	Order SortOrder `json:"order"`
}

// Default and maximum window sizes for list queries.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListQuery is the parsed form of a list request: filters are ANDed, sorts
// are applied in order and Start/End select the half-open row window.
type ListQuery struct {
	Filters []CrudFilter `json:"filters"`
	Sorts   []CrudSort   `json:"sorts"`
	Start   int          `json:"start"`
	End     int          `json:"end"`
	Search  string       `json:"search,omitempty"`
}

// Limit returns the window size clamped to MaxPageSize.
func (q ListQuery) Limit() int {
	size := q.End - q.Start
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Offset returns the first row of the window.
func (q ListQuery) Offset() int {
	if q.Start < 0 {
		return 0
	}
	return q.Start
}

// Pagination describes the window as page metadata.
func (q ListQuery) Pagination(total int) *Pagination {
	limit := q.Limit()
	return &Pagination{Page: q.Offset()/limit + 1, PageSize: limit, TotalCount: total}
}
