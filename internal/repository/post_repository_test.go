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
	appErrors "github.com/noah-isme/refine-admin-api/pkg/errors"
)

var postRowColumns = []string{"id", "title", "content", "status", "category.id", "category.title", "created_at", "updated_at"}

func TestListPosts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(postRowColumns).
		AddRow(int64(7), "Hello", "Body", "draft", int64(3), "News", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+postColumns+" FROM "+postFrom+" WHERE 1=1 AND p.category_id = $1 AND p.title::text ILIKE $2 ORDER BY p.id DESC LIMIT 10 OFFSET 10")).
		WithArgs("3", "%hel%").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM "+postFrom+" WHERE 1=1 AND p.category_id = $1 AND p.title::text ILIKE $2")).
		WithArgs("3", "%hel%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	posts, total, err := repo.List(context.Background(), models.ListQuery{
		Filters: []models.CrudFilter{
			{Field: "category.id", Operator: models.OperatorEq, Value: "3"},
			{Field: "title", Operator: models.OperatorContains, Value: "hel"},
		},
		Sorts: []models.CrudSort{{Field: "id", Order: models.SortDesc}},
		Start: 10,
		End:   20,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, posts, 1)
	assert.Equal(t, models.CategoryRef{ID: 3, Title: "News"}, posts[0].Category)
	assert.Equal(t, models.PostStatusDraft, posts[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPostsUnknownField(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	_, _, err := repo.List(context.Background(), models.ListQuery{
		Filters: []models.CrudFilter{{Field: "password", Operator: models.OperatorEq, Value: "x"}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnknownField.Code, appErrors.FromError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPostsRejectsNonNumericIDs(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	for _, f := range []models.CrudFilter{
		{Field: "id", Operator: models.OperatorGte, Value: "abc"},
		{Field: "category.id", Operator: models.OperatorEq, Value: "abc"},
	} {
		_, _, err := repo.List(context.Background(), models.ListQuery{Filters: []models.CrudFilter{f}})
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePost(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO posts (title, content, status, category_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id")).
		WithArgs("Hello", "Body", models.PostStatusPublished, int64(2), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	post := &models.Post{Title: "Hello", Content: "Body", Status: models.PostStatusPublished, Category: models.CategoryRef{ID: 2}}
	require.NoError(t, repo.Create(context.Background(), post))
	assert.Equal(t, int64(42), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePostMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE posts SET")).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Post{ID: 9})
	assert.True(t, IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteManyPosts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM posts WHERE id IN ($1, $2) RETURNING id")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	deleted, err := repo.DeleteMany(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllPostsIgnoresWindow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + postColumns + " FROM " + postFrom + " WHERE 1=1 ORDER BY p.id ASC LIMIT 5000")).
		WillReturnRows(sqlmock.NewRows(postRowColumns))

	posts, err := repo.ListAll(context.Background(), models.ListQuery{Start: 40, End: 60}, 5000)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
