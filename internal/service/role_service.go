package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/refine-admin-api/internal/dto"
	"github.com/noah-isme/refine-admin-api/internal/models"
	"github.com/noah-isme/refine-admin-api/internal/repository"
	appErrors "github.com/noah-isme/refine-admin-api/pkg/errors"
)

type roleRepository interface {
	List(ctx context.Context, q models.ListQuery) ([]models.Role, int, error)
	FindByID(ctx context.Context, id int64) (*models.Role, error)
	Create(ctx context.Context, role *models.Role) error
}

// RoleService lists and creates roles.
type RoleService struct {
	repo      roleRepository
	notifier  *ChangeNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoleService constructs a RoleService.
func NewRoleService(repo roleRepository, notifier *ChangeNotifier, validate *validator.Validate, logger *zap.Logger) *RoleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &RoleService{repo: repo, notifier: notifier, validator: validate, logger: logger}
}

// List returns a window of roles and the total count.
func (s *RoleService) List(ctx context.Context, q models.ListQuery) ([]models.Role, int, error) {
	roles, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, internalError(err, "failed to list roles")
	}
	return roles, total, nil
}

// Get returns a role by id.
func (s *RoleService) Get(ctx context.Context, id int64) (*models.Role, error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "role not found")
		}
		return nil, internalError(err, "failed to load role")
	}
	return role, nil
}

// Create stores a role. Names are unique.
func (s *RoleService) Create(ctx context.Context, req dto.CreateRoleRequest) (*models.Role, error) {
	input := req.Input()
	input.Name = strings.TrimSpace(input.Name)
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role payload")
	}

	role := &models.Role{Name: input.Name, Description: input.Description}
	if err := s.repo.Create(ctx, role); err != nil {
		if isUniqueViolation(err) {
			return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "role already exists")
		}
		return nil, internalError(err, "failed to create role")
	}
	s.notifier.Notify(ctx, models.ResourceRoles, models.ChangeCreated, models.ChangePayload{IDs: []int64{role.ID}})
	return role, nil
}
