// Package department implements the Department repository using PostgreSQL.
package department

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vidahq/suggestions-backend/internal/adapter/postgres"
	"github.com/vidahq/suggestions-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const table = "departments"

// Repo provides department persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new department repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns a department by id.
func (r *Repo) Get(ctx context.Context, id int64) (*domain.Department, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select("id", "name", "date_created", "date_updated").
		From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get department: %w", err)
	}

	row := q.QueryRow(ctx, sql, args...)
	d, err := scanDepartment(row)
	if err != nil {
		return nil, postgres.MapError(err, "department", id)
	}
	return d, nil
}

// GetByName returns a department by its (unique) name.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Department, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select("id", "name", "date_created", "date_updated").
		From(table).Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get department by name: %w", err)
	}

	row := q.QueryRow(ctx, sql, args...)
	d, err := scanDepartment(row)
	if err != nil {
		return nil, postgres.MapError(err, "department", name)
	}
	return d, nil
}

// Insert persists a new department and returns it with the generated id.
func (r *Repo) Insert(ctx context.Context, name string, createdAt time.Time) (*domain.Department, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert(table).
		Columns("name", "date_created").
		Values(name, createdAt).
		Suffix("RETURNING id, name, date_created, date_updated").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert department: %w", err)
	}

	row := q.QueryRow(ctx, sql, args...)
	d, err := scanDepartment(row)
	if err != nil {
		return nil, postgres.MapError(err, "department", name)
	}
	return d, nil
}

// Count returns the number of department rows.
func (r *Repo) Count(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM departments").Scan(&n); err != nil {
		return 0, fmt.Errorf("count departments: %w", err)
	}
	return n, nil
}

func scanDepartment(row pgx.Row) (*domain.Department, error) {
	var d domain.Department
	if err := row.Scan(&d.ID, &d.Name, &d.DateCreated, &d.DateUpdated); err != nil {
		return nil, err
	}
	return &d, nil
}
