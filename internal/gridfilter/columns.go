package gridfilter

// Operators the DataGrid ships for string and numeric columns. Only those
// with a backend mapping are offered.
var (
	builtinStringOperators  = []string{"contains", "equals", "startsWith", "endsWith", "isEmpty", "isNotEmpty", "isAnyOf"}
	builtinNumericOperators = []string{"=", "!=", ">", ">=", "<", "<=", "isEmpty", "isNotEmpty", "isAnyOf"}
)

// StringOperators returns the built-in string operators the backend supports.
func StringOperators() []FilterOperator {
	return supported(stringTable, builtinStringOperators, "text")
}

// NumericOperators returns the built-in numeric operators the backend supports.
func NumericOperators() []FilterOperator {
	return supported(numberTable, builtinNumericOperators, "number")
}

func supported(t *table, builtin []string, inputType string) []FilterOperator {
	out := make([]FilterOperator, 0, len(builtin))
	for _, value := range builtin {
		if _, ok := t.code(value); !ok {
			continue
		}
		out = append(out, FilterOperator{Value: value, Label: value, InputType: inputType})
	}
	return out
}

// PostColumns describes the posts grid.
func PostColumns() []Column {
	return []Column{
		{
			Field:           "id",
			HeaderName:      "ID",
			Description:     "Post ID",
			Type:            "number",
			Flex:            0.5,
			Filterable:      true,
			Sortable:        true,
			FilterOperators: NumericOperators(),
		},
		{
			Field:           "title",
			HeaderName:      "Title",
			Flex:            3,
			Filterable:      true,
			Sortable:        true,
			FilterOperators: StringOperators(),
		},
		{
			Field:           "status",
			HeaderName:      "Status",
			Flex:            1,
			Filterable:      true,
			Sortable:        true,
			FilterOperators: StringOperators(),
		},
		{
			Field:      "createdAt",
			HeaderName: "CreatedAt",
			Type:       "date",
			Flex:       1,
			Sortable:   true,
		},
		{
			Field:           ColumnCategory,
			HeaderName:      "Category",
			Flex:            2,
			Filterable:      true,
			Sortable:        true,
			FilterOperators: []FilterOperator{EquivalentOperator()},
		},
		{
			Field:      "actions",
			HeaderName: "Actions",
			Type:       "actions",
			Flex:       0.8,
		},
	}
}

// CategoryColumns describes the categories grid, which filters nothing.
func CategoryColumns() []Column {
	return []Column{
		{Field: "id", HeaderName: "ID", Description: "Category ID", Type: "number", Flex: 0.5, Sortable: true},
		{Field: "title", HeaderName: "Title", Flex: 3, Sortable: true},
		{Field: "actions", HeaderName: "Actions", Type: "actions", Flex: 0.8},
	}
}
