// Package admin implements the Admin (back-office user) repository using
// PostgreSQL.
package admin

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vidahq/suggestions-backend/internal/adapter/postgres"
	"github.com/vidahq/suggestions-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const table = "admins"

var columns = []string{
	"id", "email_address", "display_name", "first_name", "last_name",
	"username", "password_hash", "role", "is_active", "date_created", "date_updated",
}

// Repo provides admin persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new admin repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns an admin by id.
func (r *Repo) Get(ctx context.Context, id int64) (*domain.Admin, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get admin: %w", err)
	}

	row := q.QueryRow(ctx, sql, args...)
	a, err := scanAdmin(row)
	if err != nil {
		return nil, postgres.MapError(err, "admin", id)
	}
	return a, nil
}

// GetByUsername returns an admin by its unique username.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From(table).Where(sq.Eq{"username": username}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get admin by username: %w", err)
	}

	row := q.QueryRow(ctx, sql, args...)
	a, err := scanAdmin(row)
	if err != nil {
		return nil, postgres.MapError(err, "admin", username)
	}
	return a, nil
}

// Insert persists a new admin and returns it with the generated id.
func (r *Repo) Insert(ctx context.Context, a *domain.Admin) (*domain.Admin, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert(table).
		Columns("email_address", "display_name", "first_name", "last_name",
			"username", "password_hash", "role", "is_active", "date_created").
		Values(a.EmailAddress, a.DisplayName, a.FirstName, a.LastName,
			a.Username, a.PasswordHash, a.Role, a.IsActive, a.DateCreated).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert admin: %w", err)
	}

	row := q.QueryRow(ctx, sql, args...)
	created, err := scanAdmin(row)
	if err != nil {
		return nil, postgres.MapError(err, "admin", a.Username)
	}
	return created, nil
}

// Count returns the number of admin rows.
func (r *Repo) Count(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM admins").Scan(&n); err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return n, nil
}

func scanAdmin(row pgx.Row) (*domain.Admin, error) {
	var a domain.Admin
	err := row.Scan(
		&a.ID, &a.EmailAddress, &a.DisplayName, &a.FirstName, &a.LastName,
		&a.Username, &a.PasswordHash, &a.Role, &a.IsActive, &a.DateCreated, &a.DateUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
