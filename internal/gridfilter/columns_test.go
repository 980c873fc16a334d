package gridfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/refine-admin-api/internal/models"
)

func operatorValues(ops []FilterOperator) []string {
	out := make([]string, 0, len(ops))
	for _, op := range ops {
		out = append(out, op.Value)
	}
	return out
}

func TestBuiltinOperatorsFiltered(t *testing.T) {
	assert.Equal(t, []string{"contains", "equals"}, operatorValues(StringOperators()))
	assert.Equal(t, []string{"=", "!=", ">", ">=", "<", "<="}, operatorValues(NumericOperators()))
}

func TestPostColumns(t *testing.T) {
	byField := map[string]Column{}
	for _, col := range PostColumns() {
		byField[col.Field] = col
	}

	require.Contains(t, byField, "category")
	assert.Equal(t, []string{"equivalent"}, operatorValues(byField["category"].FilterOperators))
	assert.Equal(t, models.ResourceCategories, byField["category"].FilterOperators[0].OptionsResource)
	assert.False(t, byField["createdAt"].Filterable)
	assert.Empty(t, byField["createdAt"].FilterOperators)

	for field, col := range byField {
		if field == "category" {
			continue
		}
		assert.NotContains(t, operatorValues(col.FilterOperators), EquivalentOperatorValue, field)
	}
}

func TestCategoryColumnsNotFilterable(t *testing.T) {
	for _, col := range CategoryColumns() {
		assert.False(t, col.Filterable)
	}
}
