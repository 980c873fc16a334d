package gridfilter

import (
	"bytes"
	"encoding/json"
)

// LinkOperator joins the items of a FilterModel.
type LinkOperator string

const (
	LinkAnd LinkOperator = "and"
	LinkOr  LinkOperator = "or"
)

// FilterItem is one DataGrid filter entry. OperatorValue is the label the
// grid shows to the user ("equals", ">=", "equivalent"), not a backend code.
type FilterItem struct {
	ColumnField   string `json:"columnField"`
	OperatorValue string `json:"operatorValue"`
	Value         any    `json:"value,omitempty"`
}

// UnmarshalJSON decodes numeric values as json.Number so ids beyond 2^53
// keep every digit.
func (f *FilterItem) UnmarshalJSON(data []byte) error {
	type plain FilterItem
	var raw struct {
		plain
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = FilterItem(raw.plain)
	f.Value = nil
	if len(raw.Value) == 0 || bytes.Equal(raw.Value, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw.Value))
	dec.UseNumber()
	return dec.Decode(&f.Value)
}

// FilterModel is the DataGrid filter state.
type FilterModel struct {
	Items        []FilterItem `json:"items"`
	LinkOperator LinkOperator `json:"linkOperator,omitempty"`
}

// SortItem is one DataGrid sort entry.
type SortItem struct {
	Field string `json:"field"`
	Sort  string `json:"sort"`
}

// FilterOperator describes an operator offered in a column's filter panel.
type FilterOperator struct {
	Value string `json:"value"`
	Label string `json:"label"`
	// InputType hints which input component the panel renders: text, number or select.
	InputType string `json:"inputType"`
	// OptionsResource names the resource whose records populate a select input.
	OptionsResource string `json:"optionsResource,omitempty"`
	Placeholder     string `json:"placeholder,omitempty"`
}

// Column describes a DataGrid column and the filter operators it offers.
type Column struct {
	Field           string           `json:"field"`
	HeaderName      string           `json:"headerName"`
	Description     string           `json:"description,omitempty"`
	Type            string           `json:"type,omitempty"`
	Flex            float64          `json:"flex"`
	Filterable      bool             `json:"filterable"`
	Sortable        bool             `json:"sortable"`
	FilterOperators []FilterOperator `json:"filterOperators,omitempty"`
}
