// Package employee implements the Employee repository using PostgreSQL.
package employee

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vidahq/suggestions-backend/internal/adapter/postgres"
	"github.com/vidahq/suggestions-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const table = "employees"

var columns = []string{"id", "name", "department_id", "risk_level", "date_created", "date_updated"}

// Repo provides employee persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new employee repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns the raw employee row by id.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get employee: %w", err)
	}

	row := q.QueryRow(ctx, sql, args...)
	e, err := scanEmployee(row)
	if err != nil {
		return nil, postgres.MapError(err, "employee", id)
	}
	return e, nil
}

// GetByIDs returns employees keyed by id for a batch of distinct ids.
// Missing ids are absent from the map.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Employee, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]domain.Employee{}, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From(table).Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get employees by ids: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("get employees by ids: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]domain.Employee, len(ids))
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out[e.ID] = *e
	}
	return out, rows.Err()
}

// Exists reports whether an employee row exists.
func (r *Repo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	err := q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("employee exists: %w", err)
	}
	return exists, nil
}

// GetWithDepartment returns the employee joined with its department name.
// Suggestions are loaded separately by the service layer.
func (r *Repo) GetWithDepartment(ctx context.Context, id uuid.UUID) (*domain.EmployeeWithDetails, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := joinedSelect().Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get employee with department: %w", err)
	}

	row := q.QueryRow(ctx, sql, args...)
	e, err := scanEmployeeWithDepartment(row)
	if err != nil {
		return nil, postgres.MapError(err, "employee", id)
	}
	return e, nil
}

// List returns one page of employees matching the filter plus the pre-paging
// total count. Name matches as a case-insensitive substring; Department
// matches the department name exactly.
func (r *Repo) List(ctx context.Context, filter domain.EmployeeFilter, page domain.Page) ([]domain.EmployeeWithDetails, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	conds := conditionsFor(filter)

	countSQL, countArgs, err := psql.Select("COUNT(*)").
		From(table + " e").
		Join("departments d ON d.id = e.department_id").
		Where(conds).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count employees: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	sql, args, err := joinedSelect().
		Where(conds).
		OrderBy("e.name ASC", "e.id ASC").
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list employees: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var items []domain.EmployeeWithDetails
	for rows.Next() {
		e, err := scanEmployeeWithDepartment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan employee: %w", err)
		}
		items = append(items, *e)
	}
	return items, total, rows.Err()
}

// Insert persists a new employee. Used by the seeder.
func (r *Repo) Insert(ctx context.Context, e *domain.Employee) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert(table).
		Columns(columns...).
		Values(e.ID, e.Name, e.DepartmentID, e.RiskLevel, e.DateCreated, e.DateUpdated).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert employee: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "employee", e.ID)
	}
	return nil
}

// Delete removes an employee; its suggestions go with it via ON DELETE
// CASCADE in the schema.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete employee: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "employee", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Count returns the number of employee rows. Used by the seeder to skip
// tables that are already populated.
func (r *Repo) Count(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employees").Scan(&n); err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return n, nil
}

func joinedSelect() sq.SelectBuilder {
	return psql.Select(
		"e.id", "e.name", "e.department_id", "e.risk_level", "e.date_created", "e.date_updated",
		"d.name AS department_name",
	).
		From(table + " e").
		Join("departments d ON d.id = e.department_id")
}

func conditionsFor(f domain.EmployeeFilter) sq.And {
	conds := sq.And{}
	if f.Name != nil {
		conds = append(conds, sq.ILike{"e.name": "%" + *f.Name + "%"})
	}
	if f.Department != nil {
		conds = append(conds, sq.Eq{"d.name": *f.Department})
	}
	if f.EmployeeID != nil {
		conds = append(conds, sq.Eq{"e.id": *f.EmployeeID})
	}
	return conds
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(&e.ID, &e.Name, &e.DepartmentID, &e.RiskLevel, &e.DateCreated, &e.DateUpdated)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanEmployeeWithDepartment(row pgx.Row) (*domain.EmployeeWithDetails, error) {
	var e domain.EmployeeWithDetails
	err := row.Scan(&e.ID, &e.Name, &e.DepartmentID, &e.RiskLevel, &e.DateCreated, &e.DateUpdated, &e.DepartmentName)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
