package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQueryWindow(t *testing.T) {
	assert.Equal(t, DefaultPageSize, ListQuery{}.Limit())
	assert.Equal(t, 10, ListQuery{Start: 20, End: 30}.Limit())
	assert.Equal(t, MaxPageSize, ListQuery{Start: 0, End: 1000}.Limit())
	assert.Equal(t, 0, ListQuery{Start: -5, End: 5}.Offset())

	p := ListQuery{Start: 40, End: 60}.Pagination(95)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.PageSize)
	assert.Equal(t, 95, p.TotalCount)
}

func TestListQueryScanValue(t *testing.T) {
	q := ListQuery{
		Filters: []CrudFilter{{Field: "category.id", Operator: OperatorEq, Value: "3"}},
		Sorts:   []CrudSort{{Field: "id", Order: SortDesc}},
		Start:   0,
		End:     20,
	}
	raw, err := q.Value()
	require.NoError(t, err)

	var decoded ListQuery
	require.NoError(t, decoded.Scan(raw))
	assert.Equal(t, q, decoded)

	require.NoError(t, decoded.Scan(nil))
	assert.Equal(t, ListQuery{}, decoded)
	assert.Error(t, decoded.Scan(42))
}

func TestOperatorValid(t *testing.T) {
	assert.True(t, OperatorContains.Valid())
	assert.True(t, OperatorIn.Valid())
	assert.False(t, CrudOperator("between").Valid())
	assert.True(t, RoleEditor.Valid())
	assert.False(t, UserRole("MOCKED").Valid())
}
