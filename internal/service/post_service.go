package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/refine-admin-api/internal/dto"
	"github.com/noah-isme/refine-admin-api/internal/models"
	"github.com/noah-isme/refine-admin-api/internal/repository"
	appErrors "github.com/noah-isme/refine-admin-api/pkg/errors"
)

type postRepository interface {
	List(ctx context.Context, q models.ListQuery) ([]models.Post, int, error)
	ListAll(ctx context.Context, q models.ListQuery, max int) ([]models.Post, error)
	FindByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, ids []int64) ([]int64, error)
}

// PostService handles post management.
type PostService struct {
	repo      postRepository
	notifier  *ChangeNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPostService creates an instance of PostService.
func NewPostService(repo postRepository, notifier *ChangeNotifier, validate *validator.Validate, logger *zap.Logger) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &PostService{repo: repo, notifier: notifier, validator: validate, logger: logger}
}

// List returns the requested window of posts and the total match count.
func (s *PostService) List(ctx context.Context, q models.ListQuery) ([]models.Post, int, error) {
	posts, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, internalError(err, "failed to list posts")
	}
	return posts, total, nil
}

// Get returns a post by id.
func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "post not found")
		}
		return nil, internalError(err, "failed to load post")
	}
	return post, nil
}

// Create validates and stores a new post. Status defaults to draft.
func (s *PostService) Create(ctx context.Context, req dto.CreatePostRequest) (*models.Post, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid post payload")
	}
	if req.Status == "" {
		req.Status = models.PostStatusDraft
	}

	post := &models.Post{
		Title:    req.Title,
		Content:  req.Content,
		Status:   req.Status,
		Category: models.CategoryRef{ID: req.Category.ID},
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, s.writeError(err, "failed to create post")
	}

	created, err := s.Get(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, models.ResourcePosts, models.ChangeCreated, models.ChangePayload{IDs: []int64{created.ID}, Post: created})
	return created, nil
}

// Update applies the non-nil fields of req to the post.
func (s *PostService) Update(ctx context.Context, id int64, req dto.UpdatePostRequest) (*models.Post, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid post payload")
	}
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Status != nil {
		post.Status = *req.Status
	}
	if req.Category != nil {
		post.Category = models.CategoryRef{ID: req.Category.ID}
	}

	if err := s.repo.Update(ctx, post); err != nil {
		if repository.IsNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "post not found")
		}
		return nil, s.writeError(err, "failed to update post")
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, models.ResourcePosts, models.ChangeUpdated, models.ChangePayload{IDs: []int64{id}, Post: updated})
	return updated, nil
}

// Delete removes a post and returns the record as it was.
func (s *PostService) Delete(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "post not found")
		}
		return nil, internalError(err, "failed to delete post")
	}
	s.notifier.Notify(ctx, models.ResourcePosts, models.ChangeDeleted, models.ChangePayload{IDs: []int64{id}, Post: post})
	return post, nil
}

// DeleteMany removes the posts that exist among ids and returns their ids.
func (s *PostService) DeleteMany(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one id is required")
	}
	deleted, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		return nil, internalError(err, "failed to delete posts")
	}
	if len(deleted) > 0 {
		s.notifier.Notify(ctx, models.ResourcePosts, models.ChangeDeleted, models.ChangePayload{IDs: deleted})
	}
	return deleted, nil
}

// ExportRows returns up to max posts matching q, ignoring its window.
func (s *PostService) ExportRows(ctx context.Context, q models.ListQuery, max int) ([]models.Post, error) {
	posts, err := s.repo.ListAll(ctx, q, max)
	if err != nil {
		return nil, internalError(err, "failed to load posts for export")
	}
	return posts, nil
}

func (s *PostService) writeError(err error, message string) error {
	if isForeignKeyViolation(err) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "category does not exist")
	}
	s.logger.Error(message, zap.Error(err))
	return internalError(err, message)
}
