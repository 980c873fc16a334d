package gridfilter

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/refine-admin-api/internal/models"
	appErrors "github.com/noah-isme/refine-admin-api/pkg/errors"
)

func TestToUIFilterModelEmpty(t *testing.T) {
	model, err := ToUIFilterModel(nil)
	require.NoError(t, err)
	assert.NotNil(t, model.Items)
	assert.Empty(t, model.Items)
	assert.Equal(t, LinkAnd, model.LinkOperator)
}

func TestToBackendFilterEmpty(t *testing.T) {
	filters, err := ToBackendFilter(FilterModel{})
	require.NoError(t, err)
	assert.NotNil(t, filters)
	assert.Empty(t, filters)
}

func TestToUIFilterModelNumeric(t *testing.T) {
	model, err := ToUIFilterModel([]models.CrudFilter{{Field: "id", Operator: models.OperatorGte, Value: "5"}})
	require.NoError(t, err)
	require.Len(t, model.Items, 1)
	assert.Equal(t, FilterItem{ColumnField: "id", OperatorValue: ">=", Value: "5"}, model.Items[0])
}

func TestToUIFilterModelOnlyFirstFilter(t *testing.T) {
	model, err := ToUIFilterModel([]models.CrudFilter{
		{Field: "title", Operator: models.OperatorContains, Value: "go"},
		{Field: "status", Operator: models.OperatorEq, Value: "draft"},
	})
	require.NoError(t, err)
	require.Len(t, model.Items, 1)
	assert.Equal(t, "title", model.Items[0].ColumnField)
}

func TestToUIFilterModelCategoryRewrite(t *testing.T) {
	model, err := ToUIFilterModel([]models.CrudFilter{{Field: FieldCategoryID, Operator: models.OperatorEq, Value: "7"}})
	require.NoError(t, err)
	assert.Equal(t, FilterItem{ColumnField: "category", OperatorValue: "equivalent", Value: "7"}, model.Items[0])
}

func TestToUIFilterModelUnknownFieldUsesStringTable(t *testing.T) {
	model, err := ToUIFilterModel([]models.CrudFilter{{Field: "content", Operator: models.OperatorContains, Value: "x"}})
	require.NoError(t, err)
	assert.Equal(t, "contains", model.Items[0].OperatorValue)
}

func TestToUIFilterModelUnsupportedOperator(t *testing.T) {
	_, err := ToUIFilterModel([]models.CrudFilter{{Field: "title", Operator: models.OperatorGt, Value: "a"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedOperator))
	assert.Equal(t, appErrors.ErrUnsupportedOperator.Code, appErrors.FromError(err).Code)
}

func TestToBackendFilterExamples(t *testing.T) {
	cases := []struct {
		name string
		item FilterItem
		want models.CrudFilter
	}{
		{
			name: "title contains",
			item: FilterItem{ColumnField: "title", OperatorValue: "contains", Value: "foo"},
			want: models.CrudFilter{Field: "title", Operator: models.OperatorContains, Value: "foo"},
		},
		{
			name: "status is aliases eq",
			item: FilterItem{ColumnField: "status", OperatorValue: "is", Value: "draft"},
			want: models.CrudFilter{Field: "status", Operator: models.OperatorEq, Value: "draft"},
		},
		{
			name: "category equivalent",
			item: FilterItem{ColumnField: "category", OperatorValue: "equivalent", Value: "12"},
			want: models.CrudFilter{Field: "category.id", Operator: models.OperatorEq, Value: "12"},
		},
		{
			name: "missing value defaults to empty",
			item: FilterItem{ColumnField: "id", OperatorValue: "!="},
			want: models.CrudFilter{Field: "id", Operator: models.OperatorNe, Value: ""},
		},
		{
			name: "numeric value",
			item: FilterItem{ColumnField: "id", OperatorValue: "<", Value: float64(42)},
			want: models.CrudFilter{Field: "id", Operator: models.OperatorLt, Value: "42"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			filters, err := ToBackendFilter(FilterModel{Items: []FilterItem{tc.item}})
			require.NoError(t, err)
			assert.Equal(t, []models.CrudFilter{tc.want}, filters)
		})
	}
}

func TestToBackendFilterCategoryAnyValue(t *testing.T) {
	for _, v := range []string{"", "1", "abc", "0042"} {
		filters, err := ToBackendFilter(FilterModel{Items: []FilterItem{{ColumnField: "category", OperatorValue: "equivalent", Value: v}}})
		require.NoError(t, err)
		assert.Equal(t, []models.CrudFilter{{Field: "category.id", Operator: models.OperatorEq, Value: v}}, filters)
	}
}

func TestToBackendFilterUnsupportedLabel(t *testing.T) {
	_, err := ToBackendFilter(FilterModel{Items: []FilterItem{{ColumnField: "title", OperatorValue: "startsWith", Value: "a"}}})
	assert.ErrorIs(t, err, ErrUnsupportedOperator)

	_, err = ToBackendFilter(FilterModel{Items: []FilterItem{{ColumnField: "category", OperatorValue: "equals", Value: "1"}}})
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestFilterRoundTrip(t *testing.T) {
	for _, field := range []string{"id", "title", "status", FieldCategoryID} {
		for _, code := range Codes(field) {
			in := []models.CrudFilter{{Field: field, Operator: code, Value: "v-" + string(code)}}
			model, err := ToUIFilterModel(in)
			require.NoError(t, err)
			out, err := ToBackendFilter(model)
			require.NoError(t, err)
			if diff := cmp.Diff(in, out); diff != "" {
				t.Errorf("round trip %s/%s mismatch (-want +got):\n%s", field, code, diff)
			}
		}
	}
}

func TestFilterModelJSON(t *testing.T) {
	var model FilterModel
	require.NoError(t, json.Unmarshal([]byte(`{"items":[{"columnField":"id","operatorValue":">","value":3}],"linkOperator":"and"}`), &model))
	filters, err := ToBackendFilter(model)
	require.NoError(t, err)
	assert.Equal(t, []models.CrudFilter{{Field: "id", Operator: models.OperatorGt, Value: "3"}}, filters)
}

func TestFilterModelJSONKeepsLargeIntegers(t *testing.T) {
	var model FilterModel
	require.NoError(t, json.Unmarshal([]byte(`{"items":[{"columnField":"id","operatorValue":"=","value":9007199254740993}]}`), &model))
	assert.Equal(t, json.Number("9007199254740993"), model.Items[0].Value)

	filters, err := ToBackendFilter(model)
	require.NoError(t, err)
	assert.Equal(t, []models.CrudFilter{{Field: "id", Operator: models.OperatorEq, Value: "9007199254740993"}}, filters)

	require.NoError(t, json.Unmarshal([]byte(`{"items":[{"columnField":"title","operatorValue":"contains","value":null}]}`), &model))
	assert.Nil(t, model.Items[0].Value)
	assert.Equal(t, "title", model.Items[0].ColumnField)
}

func TestSortRoundTrip(t *testing.T) {
	sorts := []models.CrudSort{
		{Field: "title", Order: models.SortDesc},
		{Field: "id", Order: models.SortAsc},
		{Field: "category", Order: models.SortAsc},
	}
	items := ToUISortModel(sorts)
	assert.Equal(t, []SortItem{{Field: "title", Sort: "desc"}, {Field: "id", Sort: "asc"}, {Field: "category", Sort: "asc"}}, items)
	assert.Equal(t, sorts, ToBackendSort(items))

	assert.Empty(t, ToUISortModel(nil))
	assert.NotNil(t, ToBackendSort(nil))
}
