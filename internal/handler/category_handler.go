package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/refine-admin-api/internal/dto"
	"github.com/noah-isme/refine-admin-api/internal/middleware"
	"github.com/noah-isme/refine-admin-api/internal/models"
	"github.com/noah-isme/refine-admin-api/internal/query"
	"github.com/noah-isme/refine-admin-api/internal/service"
	"github.com/noah-isme/refine-admin-api/pkg/response"
)

type categoryService interface {
	List(ctx context.Context, q models.ListQuery) (service.CategoryPage, bool, error)
	Get(ctx context.Context, id int64) (*models.Category, bool, error)
	Options(ctx context.Context) ([]models.SelectOption, error)
	Create(ctx context.Context, req dto.CategoryRequest) (*models.Category, error)
	Update(ctx context.Context, id int64, req dto.CategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id int64) (*models.Category, error)
}

// CategoryHandler serves the categories resource.
type CategoryHandler struct {
	service categoryService
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(svc categoryService) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

// List godoc
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {array} models.Category
// @Header 200 {string} X-Cache "HIT or MISS"
// @Router /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	q, err := query.Parse(c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}
	page, hit, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.List(c, page.Items, page.Total)
}

// Get godoc
// @Summary Get category
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Category
// @Failure 404 {object} response.Envelope
// @Router /categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	category, hit, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.Raw(c, http.StatusOK, category)
}

// Options godoc
// @Summary Category select options
// @Description Value/label pairs for the category column's equivalent filter input.
// @Tags Grid
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /grid/posts/category-options [get]
func (h *CategoryHandler) Options(c *gin.Context) {
	options, err := h.service.Options(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options, nil)
}

// Create godoc
// @Summary Create category
// @Description Admin only.
// @Tags Categories
// @Accept json
// @Produce json
// @Param payload body dto.CategoryRequest true "Category payload"
// @Success 201 {object} models.Category
// @Failure 403 {object} response.Envelope
// @Router /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if err := bindJSON(c, &req, "invalid category payload"); err != nil {
		response.Error(c, err)
		return
	}
	category, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusCreated, category)
}

// Update godoc
// @Summary Update category
// @Description Admin only.
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param payload body dto.CategoryRequest true "Category payload"
// @Success 200 {object} models.Category
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /categories/{id} [patch]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CategoryRequest
	if err := bindJSON(c, &req, "invalid category payload"); err != nil {
		response.Error(c, err)
		return
	}
	category, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, category)
}

// Delete godoc
// @Summary Delete category
// @Description Admin only. Fails with 409 while posts still reference the category.
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Category
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	category, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, category)
}
