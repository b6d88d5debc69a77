// Package suggestion implements the Suggestion repository using PostgreSQL.
package suggestion

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

const table = "suggestions"

var columns = []string{
	"id", "description", "source", "type", "status", "priority", "notes",
	"employee_id", "department_id", "created_by_admin_id",
	"date_created", "date_updated", "date_completed",
}

// Repo provides suggestion persistence backed by PostgreSQL. All methods
// join an ambient transaction when one is carried in the context.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new suggestion repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns the raw suggestion row by id (no joins). Used by the mutation
// path, which needs the pre-write snapshot for audit diffing.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get suggestion: %w", err)
	}

	row := q.QueryRow(ctx, sql, args...)
	s, err := scanSuggestion(row)
	if err != nil {
		return nil, postgres.MapError(err, "suggestion", id)
	}
	return s, nil
}

// GetByIDs returns raw suggestion rows keyed by id. Missing ids are simply
// absent from the map; the caller decides whether that is an error.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Suggestion, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]domain.Suggestion{}, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From(table).Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get suggestions by ids: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("get suggestions by ids: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]domain.Suggestion, len(ids))
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		out[s.ID] = *s
	}
	return out, rows.Err()
}

// GetWithEmployee returns the suggestion joined with its employee's name and
// the creating admin's username.
func (r *Repo) GetWithEmployee(ctx context.Context, id uuid.UUID) (*domain.SuggestionWithEmployee, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := joinedSelect().Where(sq.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get suggestion with employee: %w", err)
	}

	row := q.QueryRow(ctx, sql, args...)
	s, err := scanSuggestionWithEmployee(row)
	if err != nil {
		return nil, postgres.MapError(err, "suggestion", id)
	}
	return s, nil
}

// List returns one page of suggestions matching the filter, ordered by
// date_created DESC (id DESC as tie-break), plus the pre-paging total count.
func (r *Repo) List(ctx context.Context, filter domain.SuggestionFilter, page domain.Page) ([]domain.SuggestionWithEmployee, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	conds := conditionsFor(filter)

	countSQL, countArgs, err := psql.Select("COUNT(*)").From(table + " s").Where(conds).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count suggestions: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suggestions: %w", err)
	}

	sql, args, err := joinedSelect().
		Where(conds).
		OrderBy("s.date_created DESC", "s.id DESC").
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list suggestions: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list suggestions: %w", err)
	}
	defer rows.Close()

	var items []domain.SuggestionWithEmployee
	for rows.Next() {
		s, err := scanSuggestionWithEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan suggestion: %w", err)
		}
		items = append(items, *s)
	}
	return items, total, rows.Err()
}

// ListByEmployeeIDs returns all suggestions (with creator usernames) for the
// given employees, newest first. Used to eager-load the employee read model.
func (r *Repo) ListByEmployeeIDs(ctx context.Context, employeeIDs []uuid.UUID) (map[uuid.UUID][]domain.SuggestionWithEmployee, error) {
	out := make(map[uuid.UUID][]domain.SuggestionWithEmployee, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return out, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := joinedSelect().
		Where(sq.Eq{"s.employee_id": employeeIDs}).
		OrderBy("s.date_created DESC", "s.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list suggestions by employees: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list suggestions by employees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanSuggestionWithEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		out[s.EmployeeID] = append(out[s.EmployeeID], *s)
	}
	return out, rows.Err()
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Insert persists a new suggestion.
func (r *Repo) Insert(ctx context.Context, s *domain.Suggestion) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert(table).
		Columns(columns...).
		Values(insertValues(s)...).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert suggestion: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "suggestion", s.ID)
	}
	return nil
}

// InsertBatch stages all inserts on one pgx.Batch and sends it over the
// ambient transaction.
func (r *Repo) InsertBatch(ctx context.Context, suggestions []domain.Suggestion) error {
	if len(suggestions) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for i := range suggestions {
		sql, args, err := psql.Insert(table).
			Columns(columns...).
			Values(insertValues(&suggestions[i])...).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert suggestion: %w", err)
		}
		batch.Queue(sql, args...)
	}
	return sendBatch(ctx, q, batch, suggestions)
}

// Update overwrites the mutable fields of an existing suggestion.
func (r *Repo) Update(ctx context.Context, s *domain.Suggestion) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := updateStatement(s).ToSql()
	if err != nil {
		return fmt.Errorf("build update suggestion: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "suggestion", s.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("suggestion %s: %w", s.ID, domain.ErrNotFound)
	}
	return nil
}

// UpdateBatch stages all updates on one pgx.Batch.
func (r *Repo) UpdateBatch(ctx context.Context, suggestions []domain.Suggestion) error {
	if len(suggestions) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for i := range suggestions {
		sql, args, err := updateStatement(&suggestions[i]).ToSql()
		if err != nil {
			return fmt.Errorf("build update suggestion: %w", err)
		}
		batch.Queue(sql, args...)
	}
	return sendBatch(ctx, q, batch, suggestions)
}

// Delete removes a suggestion by id.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete suggestion: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "suggestion", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("suggestion %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Count returns the number of suggestion rows.
func (r *Repo) Count(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM suggestions").Scan(&n); err != nil {
		return 0, fmt.Errorf("count suggestions: %w", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Statement and scan helpers
// ---------------------------------------------------------------------------

func joinedSelect() sq.SelectBuilder {
	cols := make([]string, 0, len(columns)+2)
	for _, c := range columns {
		cols = append(cols, "s."+c)
	}
	cols = append(cols, "e.name AS employee_name", "a.username AS created_by")

	return psql.Select(cols...).
		From(table + " s").
		Join("employees e ON e.id = s.employee_id").
		LeftJoin("admins a ON a.id = s.created_by_admin_id")
}

func insertValues(s *domain.Suggestion) []any {
	return []any{
		s.ID, s.Description, s.Source, s.Type, s.Status, s.Priority, s.Notes,
		s.EmployeeID, s.DepartmentID, s.CreatedByAdminID,
		s.DateCreated, s.DateUpdated, s.DateCompleted,
	}
}

func updateStatement(s *domain.Suggestion) sq.UpdateBuilder {
	return psql.Update(table).
		Set("description", s.Description).
		Set("source", s.Source).
		Set("type", s.Type).
		Set("status", s.Status).
		Set("priority", s.Priority).
		Set("notes", s.Notes).
		Set("date_updated", s.DateUpdated).
		Set("date_completed", s.DateCompleted).
		Where(sq.Eq{"id": s.ID})
}

func scanSuggestion(row pgx.Row) (*domain.Suggestion, error) {
	var s domain.Suggestion
	err := row.Scan(
		&s.ID, &s.Description, &s.Source, &s.Type, &s.Status, &s.Priority, &s.Notes,
		&s.EmployeeID, &s.DepartmentID, &s.CreatedByAdminID,
		&s.DateCreated, &s.DateUpdated, &s.DateCompleted,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSuggestionWithEmployee(row pgx.Row) (*domain.SuggestionWithEmployee, error) {
	var s domain.SuggestionWithEmployee
	err := row.Scan(
		&s.ID, &s.Description, &s.Source, &s.Type, &s.Status, &s.Priority, &s.Notes,
		&s.EmployeeID, &s.DepartmentID, &s.CreatedByAdminID,
		&s.DateCreated, &s.DateUpdated, &s.DateCompleted,
		&s.EmployeeName, &s.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// sendBatch executes the batch and surfaces the first per-statement error.
func sendBatch(ctx context.Context, q postgres.Querier, batch *pgx.Batch, staged []domain.Suggestion) error {
	res := q.SendBatch(ctx, batch)
	defer res.Close()

	for i := range staged {
		if _, err := res.Exec(); err != nil {
			return postgres.MapError(err, "suggestion", staged[i].ID)
		}
	}
	return nil
}
