package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/refine-admin-api/internal/models"
	"github.com/noah-isme/refine-admin-api/internal/query"
)

const categoryColumns = `id, title, created_at, updated_at`

// CategoryFields whitelists the fields categories can be filtered and sorted by.
var CategoryFields = query.Columns{
	"id":        "id",
	"title":     "title",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// CategoryRepository persists categories.
type CategoryRepository struct {
	db   *sqlx.DB
	spec listSpec
}

// NewCategoryRepository constructs a CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{
		db: db,
		spec: listSpec{
			name:    "categories",
			columns: categoryColumns,
			from:    "categories",
			builder: query.NewBuilder(CategoryFields, "id ASC", "title").WithTypes(timestampedTypes),
		},
	}
}

// List returns the window of categories matching q and the total match count.
func (r *CategoryRepository) List(ctx context.Context, q models.ListQuery) ([]models.Category, int, error) {
	categories := []models.Category{}
	total, err := r.spec.list(ctx, r.db, q, &categories)
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// FindByID fetches a category.
func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := r.db.GetContext(ctx, &category, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id); err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &category, nil
}

// Create inserts a category and fills its generated id.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	now := time.Now().UTC()
	category.CreatedAt, category.UpdatedAt = now, now
	const stmt = `INSERT INTO categories (title, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, stmt, category.Title, category.CreatedAt, category.UpdatedAt).Scan(&category.ID); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// Update renames a category.
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	category.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET title = $2, updated_at = $3 WHERE id = $1`, category.ID, category.Title, category.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireAffected(res, "update category")
}

// Delete removes a category. Posts still referencing it make the delete fail
// with a foreign key violation.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireAffected(res, "delete category")
}
