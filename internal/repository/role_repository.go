package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/refine-admin-api/internal/models"
	"github.com/noah-isme/refine-admin-api/internal/query"
)

const roleColumns = `id, name, description, created_at`

// RoleFields whitelists the fields roles can be filtered and sorted by.
var RoleFields = query.Columns{
	"id":        "id",
	"name":      "name",
	"createdAt": "created_at",
}

// RoleRepository persists the roles listed on the roles screen.
type RoleRepository struct {
	db   *sqlx.DB
	spec listSpec
}

// NewRoleRepository constructs a RoleRepository.
func NewRoleRepository(db *sqlx.DB) *RoleRepository {
	return &RoleRepository{
		db: db,
		spec: listSpec{
			name:    "roles",
			columns: roleColumns,
			from:    "roles",
			builder: query.NewBuilder(RoleFields, "id ASC", "name").WithTypes(timestampedTypes),
		},
	}
}

// List returns the window of roles matching q and the total match count.
func (r *RoleRepository) List(ctx context.Context, q models.ListQuery) ([]models.Role, int, error) {
	roles := []models.Role{}
	total, err := r.spec.list(ctx, r.db, q, &roles)
	if err != nil {
		return nil, 0, err
	}
	return roles, total, nil
}

// FindByID fetches a role.
func (r *RoleRepository) FindByID(ctx context.Context, id int64) (*models.Role, error) {
	var role models.Role
	if err := r.db.GetContext(ctx, &role, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id); err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &role, nil
}

// Create inserts a role and fills its generated id.
func (r *RoleRepository) Create(ctx context.Context, role *models.Role) error {
	role.CreatedAt = time.Now().UTC()
	const stmt = `INSERT INTO roles (name, description, created_at) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, stmt, role.Name, role.Description, role.CreatedAt).Scan(&role.ID); err != nil {
		return fmt.Errorf("create role: %w", err)
	}
	return nil
}

// EnsureByName inserts a role unless one with the same name exists.
func (r *RoleRepository) EnsureByName(ctx context.Context, name, description string) error {
	const stmt = `INSERT INTO roles (name, description, created_at) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, stmt, name, description, time.Now().UTC()); err != nil {
		return fmt.Errorf("ensure role %s: %w", name, err)
	}
	return nil
}
