package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/refine-admin-api/internal/models"
	"github.com/noah-isme/refine-admin-api/internal/query"
)

const postColumns = `p.id, p.title, p.content, p.status, p.category_id AS "category.id", COALESCE(c.title, '') AS "category.title", p.created_at, p.updated_at`

const postFrom = `posts p LEFT JOIN categories c ON c.id = p.category_id`

var postTypes = query.Types{
	"id":          query.TypeInt,
	"category.id": query.TypeInt,
	"createdAt":   query.TypeTime,
	"updatedAt":   query.TypeTime,
}

// PostFields whitelists the fields posts can be filtered and sorted by.
var PostFields = query.Columns{
	"id":             "p.id",
	"title":          "p.title",
	"content":        "p.content",
	"status":         "p.status",
	"category.id":    "p.category_id",
	"category":       "c.title",
	"category.title": "c.title",
	"createdAt":      "p.created_at",
	"updatedAt":      "p.updated_at",
}

// PostRepository persists posts.
type PostRepository struct {
	db   *sqlx.DB
	spec listSpec
}

// NewPostRepository constructs a PostRepository.
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{
		db: db,
		spec: listSpec{
			name:    "posts",
			columns: postColumns,
			from:    postFrom,
			builder: query.NewBuilder(PostFields, "p.id ASC", "p.title", "p.content").WithTypes(postTypes),
		},
	}
}

// List returns the window of posts matching q and the total match count.
func (r *PostRepository) List(ctx context.Context, q models.ListQuery) ([]models.Post, int, error) {
	posts := []models.Post{}
	total, err := r.spec.list(ctx, r.db, q, &posts)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListAll returns up to max posts matching q ignoring its window.
func (r *PostRepository) ListAll(ctx context.Context, q models.ListQuery, max int) ([]models.Post, error) {
	clause, err := r.spec.builder.Build(q)
	if err != nil {
		return nil, err
	}
	stmt := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY %s LIMIT %d", postColumns, postFrom, clause.Where, clause.OrderBy, max)
	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, stmt, clause.Args...); err != nil {
		return nil, fmt.Errorf("list all posts: %w", err)
	}
	return posts, nil
}

// FindByID fetches a post with its category title.
func (r *PostRepository) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE p.id = $1", postColumns, postFrom)
	var post models.Post
	if err := r.db.GetContext(ctx, &post, stmt, id); err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return &post, nil
}

// Create inserts a post and fills its generated id and timestamps.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	now := time.Now().UTC()
	post.CreatedAt, post.UpdatedAt = now, now
	const stmt = `INSERT INTO posts (title, content, status, category_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, stmt, post.Title, post.Content, post.Status, post.Category.ID, post.CreatedAt, post.UpdatedAt).Scan(&post.ID); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of a post.
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now().UTC()
	const stmt = `UPDATE posts SET title = $2, content = $3, status = $4, category_id = $5, updated_at = $6 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, stmt, post.ID, post.Title, post.Content, post.Status, post.Category.ID, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return requireAffected(res, "update post")
}

// Delete removes a post.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return requireAffected(res, "delete post")
}

// DeleteMany removes several posts and returns the ids that existed.
func (r *PostRepository) DeleteMany(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}
	stmt, args, err := sqlx.In(`DELETE FROM posts WHERE id IN (?) RETURNING id`, ids)
	if err != nil {
		return nil, fmt.Errorf("build delete posts: %w", err)
	}
	deleted := []int64{}
	if err := r.db.SelectContext(ctx, &deleted, r.db.Rebind(stmt), args...); err != nil {
		return nil, fmt.Errorf("delete posts: %w", err)
	}
	return deleted, nil
}
