package service

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/refine-admin-api/internal/dto"
	"github.com/noah-isme/refine-admin-api/internal/models"
	"github.com/noah-isme/refine-admin-api/internal/query"
	"github.com/noah-isme/refine-admin-api/internal/repository"
	appErrors "github.com/noah-isme/refine-admin-api/pkg/errors"
)

const categoryCachePrefix = "categories"

type categoryRepository interface {
	List(ctx context.Context, q models.ListQuery) ([]models.Category, int, error)
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
}

// CategoryPage is a cached list window.
type CategoryPage struct {
	Items []models.Category `json:"items"`
	Total int               `json:"total"`
}

// CategoryService manages categories. Reads go through the cache, every
// mutation drops all cached category entries.
type CategoryService struct {
	repo      categoryRepository
	cache     *CacheService
	notifier  *ChangeNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(repo categoryRepository, cache *CacheService, notifier *ChangeNotifier, validate *validator.Validate, logger *zap.Logger) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CategoryService{repo: repo, cache: cache, notifier: notifier, validator: validate, logger: logger}
}

// List returns a window of categories. The bool reports a cache hit.
func (s *CategoryService) List(ctx context.Context, q models.ListQuery) (CategoryPage, bool, error) {
	key := CacheKey(categoryCachePrefix, "list", query.Encode(q).Encode())
	return Remember(ctx, s.cache, key, func(ctx context.Context) (CategoryPage, error) {
		items, total, err := s.repo.List(ctx, q)
		if err != nil {
			return CategoryPage{}, internalError(err, "failed to list categories")
		}
		return CategoryPage{Items: items, Total: total}, nil
	})
}

// Get returns a category by id. The bool reports a cache hit.
func (s *CategoryService) Get(ctx context.Context, id int64) (*models.Category, bool, error) {
	key := CacheKey(categoryCachePrefix, "id", strconv.FormatInt(id, 10))
	category, hit, err := Remember(ctx, s.cache, key, func(ctx context.Context) (models.Category, error) {
		category, err := s.repo.FindByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return models.Category{}, appErrors.Clone(appErrors.ErrNotFound, "category not found")
			}
			return models.Category{}, internalError(err, "failed to load category")
		}
		return *category, nil
	})
	if err != nil {
		return nil, false, err
	}
	return &category, hit, nil
}

// Options lists every category as select options for the grid filter input.
func (s *CategoryService) Options(ctx context.Context) ([]models.SelectOption, error) {
	options := []models.SelectOption{}
	for start := 0; ; start += models.MaxPageSize {
		page, _, err := s.List(ctx, models.ListQuery{Start: start, End: start + models.MaxPageSize})
		if err != nil {
			return nil, err
		}
		for _, c := range page.Items {
			options = append(options, models.SelectOption{Label: c.Title, Value: strconv.FormatInt(c.ID, 10)})
		}
		if len(page.Items) < models.MaxPageSize || start+len(page.Items) >= page.Total {
			return options, nil
		}
	}
}

// Create stores a new category.
func (s *CategoryService) Create(ctx context.Context, req dto.CategoryRequest) (*models.Category, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid category payload")
	}
	category := &models.Category{Title: req.Title}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, internalError(err, "failed to create category")
	}
	s.changed(ctx, models.ChangeCreated, category.ID)
	return category, nil
}

// Update renames a category.
func (s *CategoryService) Update(ctx context.Context, id int64, req dto.CategoryRequest) (*models.Category, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid category payload")
	}
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "category not found")
		}
		return nil, internalError(err, "failed to load category")
	}
	category.Title = req.Title
	if err := s.repo.Update(ctx, category); err != nil {
		if repository.IsNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "category not found")
		}
		return nil, internalError(err, "failed to update category")
	}
	s.changed(ctx, models.ChangeUpdated, id)
	return category, nil
}

// Delete removes a category. Categories still referenced by posts are a conflict.
func (s *CategoryService) Delete(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "category not found")
		}
		return nil, internalError(err, "failed to load category")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case repository.IsNotFound(err):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "category not found")
		case isForeignKeyViolation(err):
			return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "category is still used by posts")
		}
		return nil, internalError(err, "failed to delete category")
	}
	s.changed(ctx, models.ChangeDeleted, id)
	return category, nil
}

func (s *CategoryService) changed(ctx context.Context, changeType models.ChangeType, id int64) {
	if err := s.cache.Invalidate(ctx, CacheKey(categoryCachePrefix, "*")); err != nil {
		s.logger.Warn("category cache not invalidated", zap.Int64("id", id), zap.Error(err))
	}
	s.notifier.Notify(ctx, models.ResourceCategories, changeType, models.ChangePayload{IDs: []int64{id}})
}
