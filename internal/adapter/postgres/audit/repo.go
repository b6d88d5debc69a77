// Package audit implements the AuditLog repository using PostgreSQL.
// It provides append-only operations; audit rows are never updated or
// deleted by application code.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vidahq/suggestions-backend/internal/adapter/postgres"
	"github.com/vidahq/suggestions-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const table = "audit_logs"

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Insert appends one audit record. It joins the caller's transaction, so a
// failed insert aborts the business write it describes.
func (r *Repo) Insert(ctx context.Context, record domain.AuditRecord) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	changesJSON, err := json.Marshal(record.Changes)
	if err != nil {
		return fmt.Errorf("audit record marshal changes: %w", err)
	}

	sql, args, err := psql.Insert(table).
		Columns("timestamp", "action_type", "entity_name", "record_id", "changes", "admin_id").
		Values(record.Timestamp, record.ActionType, record.EntityName, record.RecordID, changesJSON, record.AdminID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert audit record: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "audit_record", record.RecordID)
	}
	return nil
}

// InsertBatch appends a set of audit records on one pgx.Batch.
func (r *Repo) InsertBatch(ctx context.Context, records []domain.AuditRecord) error {
	if len(records) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, rec := range records {
		changesJSON, err := json.Marshal(rec.Changes)
		if err != nil {
			return fmt.Errorf("audit record marshal changes: %w", err)
		}
		sql, args, err := psql.Insert(table).
			Columns("timestamp", "action_type", "entity_name", "record_id", "changes", "admin_id").
			Values(rec.Timestamp, rec.ActionType, rec.EntityName, rec.RecordID, changesJSON, rec.AdminID).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert audit record: %w", err)
		}
		batch.Queue(sql, args...)
	}

	res := q.SendBatch(ctx, batch)
	defer res.Close()

	for _, rec := range records {
		if _, err := res.Exec(); err != nil {
			return postgres.MapError(err, "audit_record", rec.RecordID)
		}
	}
	return nil
}

// ListByRecordID returns the change history for one entity, newest first.
func (r *Repo) ListByRecordID(ctx context.Context, recordID uuid.UUID) ([]domain.AuditRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select("id", "timestamp", "action_type", "entity_name", "record_id", "changes", "admin_id").
		From(table).
		Where(sq.Eq{"record_id": recordID}).
		OrderBy("timestamp DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list audit records: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()

	var out []domain.AuditRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func scanRecord(row pgx.Row) (*domain.AuditRecord, error) {
	var rec domain.AuditRecord
	var changesJSON []byte
	err := row.Scan(&rec.ID, &rec.Timestamp, &rec.ActionType, &rec.EntityName, &rec.RecordID, &changesJSON, &rec.AdminID)
	if err != nil {
		return nil, err
	}
	if len(changesJSON) > 0 {
		if err := json.Unmarshal(changesJSON, &rec.Changes); err != nil {
			return nil, fmt.Errorf("audit record %d unmarshal changes: %w", rec.ID, err)
		}
	}
	return &rec, nil
}
