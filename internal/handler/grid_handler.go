package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/refine-admin-api/internal/dto"
	"github.com/noah-isme/refine-admin-api/internal/gridfilter"
	"github.com/noah-isme/refine-admin-api/internal/models"
	"github.com/noah-isme/refine-admin-api/pkg/response"
)

type gridService interface {
	Columns(resource string) ([]gridfilter.Column, error)
	FiltersToBackend(model gridfilter.FilterModel) (dto.BackendFilterResponse, error)
	FiltersToUI(filters []models.CrudFilter) (gridfilter.FilterModel, error)
	SortToBackend(items []gridfilter.SortItem) (dto.BackendSortResponse, error)
	SortToUI(sorts []models.CrudSort) []gridfilter.SortItem
}

// GridHandler exposes the data grid translation layer.
type GridHandler struct {
	service gridService
}

// NewGridHandler constructs a GridHandler.
func NewGridHandler(svc gridService) *GridHandler {
	return &GridHandler{service: svc}
}

// Columns returns a handler serving the column descriptors of resource.
//
// @Summary Grid columns
// @Description Column descriptors with the filter operators each column offers.
// @Tags Grid
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /grid/posts/columns [get]
func (h *GridHandler) Columns(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cols, err := h.service.Columns(resource)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, cols, nil)
	}
}

// FiltersToBackend godoc
// @Summary Translate grid filters to backend filters
// @Tags Grid
// @Accept json
// @Produce json
// @Param payload body gridfilter.FilterModel true "Grid filter model"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /grid/posts/filters/to-backend [post]
func (h *GridHandler) FiltersToBackend(c *gin.Context) {
	var model gridfilter.FilterModel
	if err := bindJSON(c, &model, "invalid filter model"); err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.service.FiltersToBackend(model)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// FiltersToUI godoc
// @Summary Translate backend filters to a grid filter model
// @Tags Grid
// @Accept json
// @Produce json
// @Param payload body []models.CrudFilter true "Backend filters"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /grid/posts/filters/to-ui [post]
func (h *GridHandler) FiltersToUI(c *gin.Context) {
	var filters []models.CrudFilter
	if err := bindJSON(c, &filters, "invalid filters"); err != nil {
		response.Error(c, err)
		return
	}
	model, err := h.service.FiltersToUI(filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, model, nil)
}

// SortToBackend godoc
// @Summary Translate grid sort model to backend sorters
// @Tags Grid
// @Accept json
// @Produce json
// @Param payload body []gridfilter.SortItem true "Grid sort model"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /grid/posts/sort/to-backend [post]
func (h *GridHandler) SortToBackend(c *gin.Context) {
	var items []gridfilter.SortItem
	if err := bindJSON(c, &items, "invalid sort model"); err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.service.SortToBackend(items)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// SortToUI godoc
// @Summary Translate backend sorters to a grid sort model
// @Tags Grid
// @Accept json
// @Produce json
// @Param payload body []models.CrudSort true "Backend sorters"
// @Success 200 {object} response.Envelope
// @Router /grid/posts/sort/to-ui [post]
func (h *GridHandler) SortToUI(c *gin.Context) {
	var sorts []models.CrudSort
	if err := bindJSON(c, &sorts, "invalid sorters"); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.service.SortToUI(sorts), nil)
}
