package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/refine-admin-api/internal/models"
)

func TestListCategoriesGetMany(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCategoryRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, created_at, updated_at FROM categories WHERE 1=1 AND id IN ($1, $2) ORDER BY id ASC LIMIT 20 OFFSET 0")).
		WithArgs("1", "2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "created_at", "updated_at"}).
			AddRow(int64(1), "News", now, now).
			AddRow(int64(2), "Tech", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM categories WHERE 1=1 AND id IN ($1, $2)")).
		WithArgs("1", "2").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	categories, total, err := repo.List(context.Background(), models.ListQuery{
		Filters: []models.CrudFilter{{Field: "id", Operator: models.OperatorIn, Value: "1,2"}},
		End:     20,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, categories, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAndDeleteCategory(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCategoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO categories (title, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id")).
		WithArgs("News", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM categories WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	category := &models.Category{Title: "News"}
	require.NoError(t, repo.Create(context.Background(), category))
	assert.Equal(t, int64(5), category.ID)
	require.NoError(t, repo.Delete(context.Background(), category.ID))
	assert.NoError(t, mock.ExpectationsWereMet())
}
