package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/refine-admin-api/internal/dto"
	"github.com/noah-isme/refine-admin-api/internal/models"
	appErrors "github.com/noah-isme/refine-admin-api/pkg/errors"
)

type postServiceMock struct {
	lastQuery  models.ListQuery
	created    dto.CreatePostRequest
	updated    dto.UpdatePostRequest
	deletedIDs []int64
	posts      map[int64]models.Post
}

func newPostServiceMock() *postServiceMock {
	return &postServiceMock{posts: map[int64]models.Post{
		1: {ID: 1, Title: "Hello", Status: models.PostStatusPublished, Category: models.CategoryRef{ID: 2}},
		2: {ID: 2, Title: "Draft", Status: models.PostStatusDraft, Category: models.CategoryRef{ID: 2}},
	}}
}

func (m *postServiceMock) List(ctx context.Context, q models.ListQuery) ([]models.Post, int, error) {
	m.lastQuery = q
	return []models.Post{m.posts[1]}, 57, nil
}

func (m *postServiceMock) Get(ctx context.Context, id int64) (*models.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "post not found")
	}
	return &p, nil
}

func (m *postServiceMock) Create(ctx context.Context, req dto.CreatePostRequest) (*models.Post, error) {
	m.created = req
	return &models.Post{ID: 3, Title: req.Title, Content: req.Content, Status: req.Status, Category: models.CategoryRef{ID: req.Category.ID}}, nil
}

func (m *postServiceMock) Update(ctx context.Context, id int64, req dto.UpdatePostRequest) (*models.Post, error) {
	m.updated = req
	p, ok := m.posts[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "post not found")
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	return &p, nil
}

func (m *postServiceMock) Delete(ctx context.Context, id int64) (*models.Post, error) {
	return m.Get(ctx, id)
}

func (m *postServiceMock) DeleteMany(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one id is required")
	}
	m.deletedIDs = ids
	return ids, nil
}

func postRouter(svc postService) http.Handler {
	h := NewPostHandler(svc)
	r := newTestRouter(adminClaims)
	r.GET("/posts", h.List)
	r.GET("/posts/:id", h.Get)
	r.POST("/posts", h.Create)
	r.PATCH("/posts/:id", h.Update)
	r.DELETE("/posts/:id", h.Delete)
	r.DELETE("/posts", h.DeleteMany)
	return r
}

func TestPostHandlerListSimpleRest(t *testing.T) {
	svc := newPostServiceMock()
	w := doRequest(t, postRouter(svc), http.MethodGet, "/posts?_start=10&_end=20&_sort=title&_order=desc&status=draft&id_gte=5&title_like=go", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "57", w.Header().Get("X-Total-Count"))

	var items []models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)

	assert.Equal(t, 10, svc.lastQuery.Start)
	assert.Equal(t, 20, svc.lastQuery.End)
	assert.Equal(t, []models.CrudSort{{Field: "title", Order: models.SortDesc}}, svc.lastQuery.Sorts)
	assert.ElementsMatch(t, []models.CrudFilter{
		{Field: "status", Operator: models.OperatorEq, Value: "draft"},
		{Field: "id", Operator: models.OperatorGte, Value: "5"},
		{Field: "title", Operator: models.OperatorContains, Value: "go"},
	}, svc.lastQuery.Filters)
}

func TestPostHandlerListRejectsBadWindow(t *testing.T) {
	w := doRequest(t, postRouter(newPostServiceMock()), http.MethodGet, "/posts?_start=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, errorCode(t, w))
}

func TestPostHandlerGetRaw(t *testing.T) {
	r := postRouter(newPostServiceMock())

	w := doRequest(t, r, http.MethodGet, "/posts/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var post models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, "Hello", post.Title)

	assert.Equal(t, http.StatusNotFound, doRequest(t, r, http.MethodGet, "/posts/99", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, r, http.MethodGet, "/posts/abc", nil).Code)
}

func TestPostHandlerCreate(t *testing.T) {
	svc := newPostServiceMock()
	w := doRequest(t, postRouter(svc), http.MethodPost, "/posts", map[string]interface{}{
		"title":    "New",
		"content":  "Body",
		"status":   "draft",
		"category": map[string]interface{}{"id": 2},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(2), svc.created.Category.ID)
	var post models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, int64(3), post.ID)

	w = doRequest(t, postRouter(svc), http.MethodPost, "/posts", "{")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostHandlerPartialUpdate(t *testing.T) {
	svc := newPostServiceMock()
	w := doRequest(t, postRouter(svc), http.MethodPatch, "/posts/2", map[string]interface{}{"title": "Renamed"})

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.updated.Title)
	assert.Equal(t, "Renamed", *svc.updated.Title)
	assert.Nil(t, svc.updated.Content)
	assert.Nil(t, svc.updated.Status)
}

func TestPostHandlerDeleteMany(t *testing.T) {
	svc := newPostServiceMock()
	r := postRouter(svc)

	w := doRequest(t, r, http.MethodDelete, "/posts?id=1&id=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{1, 2}, svc.deletedIDs)
	assert.JSONEq(t, `[{"id":1},{"id":2}]`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, doRequest(t, r, http.MethodDelete, "/posts?id=x", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, r, http.MethodDelete, "/posts", nil).Code)
}
