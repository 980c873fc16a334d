package service

import (
	"github.com/noah-isme/refine-admin-api/internal/dto"
	"github.com/noah-isme/refine-admin-api/internal/gridfilter"
	"github.com/noah-isme/refine-admin-api/internal/models"
	"github.com/noah-isme/refine-admin-api/internal/query"
	appErrors "github.com/noah-isme/refine-admin-api/pkg/errors"
)

// Translation directions recorded in metrics.
const (
	DirectionToUI      = "to-ui"
	DirectionToBackend = "to-backend"
)

// GridService serves grid column descriptors and translates grid state.
type GridService struct {
	metrics *MetricsService
}

// NewGridService constructs a GridService.
func NewGridService(metrics *MetricsService) *GridService {
	return &GridService{metrics: metrics}
}

// Columns returns the column descriptors of a resource grid.
func (s *GridService) Columns(resource string) ([]gridfilter.Column, error) {
	switch resource {
	case models.ResourcePosts:
		return gridfilter.PostColumns(), nil
	case models.ResourceCategories:
		return gridfilter.CategoryColumns(), nil
	default:
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no grid for resource "+resource)
	}
}

// FiltersToBackend translates grid filter state into backend filters and
// the equivalent list querystring.
func (s *GridService) FiltersToBackend(model gridfilter.FilterModel) (dto.BackendFilterResponse, error) {
	filters, err := gridfilter.ToBackendFilter(model)
	s.metrics.RecordTranslation(DirectionToBackend, err)
	if err != nil {
		return dto.BackendFilterResponse{}, err
	}
	return dto.BackendFilterResponse{
		Filters: filters,
		Query:   query.Encode(models.ListQuery{Filters: filters}).Encode(),
	}, nil
}

// FiltersToUI translates backend filters into grid filter state.
func (s *GridService) FiltersToUI(filters []models.CrudFilter) (gridfilter.FilterModel, error) {
	model, err := gridfilter.ToUIFilterModel(filters)
	s.metrics.RecordTranslation(DirectionToUI, err)
	return model, err
}

// SortToBackend translates grid sort state into backend sorts.
func (s *GridService) SortToBackend(items []gridfilter.SortItem) (dto.BackendSortResponse, error) {
	sorts := gridfilter.ToBackendSort(items)
	for _, sort := range sorts {
		if sort.Order != models.SortAsc && sort.Order != models.SortDesc {
			err := appErrors.Clone(appErrors.ErrValidation, "sort order must be asc or desc")
			s.metrics.RecordTranslation(DirectionToBackend, err)
			return dto.BackendSortResponse{}, err
		}
	}
	s.metrics.RecordTranslation(DirectionToBackend, nil)
	return dto.BackendSortResponse{
		Sorts: sorts,
		Query: query.Encode(models.ListQuery{Sorts: sorts}).Encode(),
	}, nil
}

// SortToUI translates backend sorts into grid sort state.
func (s *GridService) SortToUI(sorts []models.CrudSort) []gridfilter.SortItem {
	s.metrics.RecordTranslation(DirectionToUI, nil)
	return gridfilter.ToUISortModel(sorts)
}
