package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/refine-admin-api/internal/dto"
	"github.com/noah-isme/refine-admin-api/internal/middleware"
	"github.com/noah-isme/refine-admin-api/internal/models"
	"github.com/noah-isme/refine-admin-api/internal/service"
	appErrors "github.com/noah-isme/refine-admin-api/pkg/errors"
)

type categoryServiceMock struct {
	hit       bool
	deleteErr error
	created   []dto.CategoryRequest
}

func (m *categoryServiceMock) List(ctx context.Context, q models.ListQuery) (service.CategoryPage, bool, error) {
	return service.CategoryPage{Items: []models.Category{{ID: 1, Title: "Guides"}}, Total: 1}, m.hit, nil
}

func (m *categoryServiceMock) Get(ctx context.Context, id int64) (*models.Category, bool, error) {
	return &models.Category{ID: id, Title: "Guides"}, m.hit, nil
}

func (m *categoryServiceMock) Options(ctx context.Context) ([]models.SelectOption, error) {
	return []models.SelectOption{{Label: "Guides", Value: "1"}}, nil
}

func (m *categoryServiceMock) Create(ctx context.Context, req dto.CategoryRequest) (*models.Category, error) {
	m.created = append(m.created, req)
	return &models.Category{ID: 2, Title: req.Title}, nil
}

func (m *categoryServiceMock) Update(ctx context.Context, id int64, req dto.CategoryRequest) (*models.Category, error) {
	return &models.Category{ID: id, Title: req.Title}, nil
}

func (m *categoryServiceMock) Delete(ctx context.Context, id int64) (*models.Category, error) {
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	return &models.Category{ID: id}, nil
}

func categoryRouter(svc categoryService, claims *models.JWTClaims) http.Handler {
	h := NewCategoryHandler(svc)
	access := service.NewAccessControlService()
	r := newTestRouter(claims)
	r.GET("/categories", h.List)
	r.GET("/categories/:id", h.Get)
	r.GET("/grid/posts/category-options", h.Options)
	r.POST("/categories", middleware.Can(access, models.ResourceCategories, models.ActionCreate), h.Create)
	r.PATCH("/categories/:id", middleware.Can(access, models.ResourceCategories, models.ActionEdit), h.Update)
	r.DELETE("/categories/:id", middleware.Can(access, models.ResourceCategories, models.ActionDelete), h.Delete)
	return r
}

func TestCategoryHandlerListReportsCache(t *testing.T) {
	svc := &categoryServiceMock{}
	r := categoryRouter(svc, editorClaims)

	w := doRequest(t, r, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get(middleware.CacheHeader))
	assert.Equal(t, "1", w.Header().Get("X-Total-Count"))

	svc.hit = true
	w = doRequest(t, r, http.MethodGet, "/categories/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get(middleware.CacheHeader))
}

func TestCategoryHandlerMutationsAdminOnly(t *testing.T) {
	svc := &categoryServiceMock{}

	w := doRequest(t, categoryRouter(svc, editorClaims), http.MethodPost, "/categories", dto.CategoryRequest{Title: "News"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, svc.created)

	w = doRequest(t, categoryRouter(svc, editorClaims), http.MethodDelete, "/categories/1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, categoryRouter(svc, adminClaims), http.MethodPost, "/categories", dto.CategoryRequest{Title: "News"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "News", created.Title)

	w = doRequest(t, categoryRouter(svc, adminClaims), http.MethodPatch, "/categories/4", dto.CategoryRequest{Title: "Renamed"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCategoryHandlerDeleteInUse(t *testing.T) {
	svc := &categoryServiceMock{deleteErr: appErrors.Clone(appErrors.ErrConflict, "category is still used by posts")}
	w := doRequest(t, categoryRouter(svc, adminClaims), http.MethodDelete, "/categories/1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, appErrors.ErrConflict.Code, errorCode(t, w))
}

func TestCategoryHandlerOptions(t *testing.T) {
	w := doRequest(t, categoryRouter(&categoryServiceMock{}, editorClaims), http.MethodGet, "/grid/posts/category-options", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var options []models.SelectOption
	decodeData(t, w, &options)
	assert.Equal(t, []models.SelectOption{{Label: "Guides", Value: "1"}}, options)
}
