package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/refine-admin-api/internal/models"
	"github.com/noah-isme/refine-admin-api/internal/query"
)

// timestampedTypes types the columns shared by categories and roles.
var timestampedTypes = query.Types{
	"id":        query.TypeInt,
	"createdAt": query.TypeTime,
	"updatedAt": query.TypeTime,
}

// listSpec describes how one resource is listed.
type listSpec struct {
	name    string
	columns string
	from    string
	builder *query.Builder
}

// list runs the windowed select into dest and the matching COUNT(*).
func (s listSpec) list(ctx context.Context, db *sqlx.DB, q models.ListQuery, dest interface{}) (int, error) {
	clause, err := s.builder.Build(q)
	if err != nil {
		return 0, err
	}

	listQuery := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY %s LIMIT %d OFFSET %d", s.columns, s.from, clause.Where, clause.OrderBy, clause.Limit, clause.Offset)
	if err := db.SelectContext(ctx, dest, listQuery, clause.Args...); err != nil {
		return 0, fmt.Errorf("list %s: %w", s.name, err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", s.from, clause.Where)
	var total int
	if err := db.GetContext(ctx, &total, countQuery, clause.Args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", s.name, err)
	}
	return total, nil
}

// requireAffected turns a zero-row write into sql.ErrNoRows.
func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
