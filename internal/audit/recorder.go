// Package audit implements the audit recorder: an explicit pre-commit step
// that turns pending suggestion writes into append-only audit rows. The
// mutation service calls Record inside the same transaction as the business
// write; if any diff or insert fails, the whole transaction aborts.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vidahq/suggestions-backend/internal/domain"
	"github.com/vidahq/suggestions-backend/pkg/ctxutil"
)

// EntityNameSuggestion is the entity_name stamped on suggestion audit rows.
const EntityNameSuggestion = "Suggestion"

// Change describes one pending entity write. Before is nil for Added,
// After is nil for Deleted; Modified carries both snapshots.
type Change struct {
	Action domain.AuditAction
	Before *domain.Suggestion
	After  *domain.Suggestion
}

type auditRepo interface {
	InsertBatch(ctx context.Context, records []domain.AuditRecord) error
}

// Recorder computes field-level diffs for pending suggestion writes and
// appends one audit row per changed entity.
type Recorder struct {
	repo auditRepo
	now  func() time.Time
	log  *slog.Logger
}

// NewRecorder creates a Recorder.
func NewRecorder(repo auditRepo, log *slog.Logger) *Recorder {
	return &Recorder{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
		log:  log.With("component", "audit_recorder"),
	}
}

// Record stages one audit row per change. Modified changes whose diff is
// empty (a no-op write) produce no row. The acting admin id is taken from
// the request context; unattributed writes carry a NULL admin id.
func (r *Recorder) Record(ctx context.Context, changes []Change) error {
	if len(changes) == 0 {
		return nil
	}

	var adminID *int64
	if id, ok := ctxutil.ActorIDFromCtx(ctx); ok {
		adminID = &id
	}

	timestamp := r.now()
	records := make([]domain.AuditRecord, 0, len(changes))

	for _, ch := range changes {
		changeset, recordID, err := diff(ch)
		if err != nil {
			return err
		}
		if ch.Action == domain.AuditActionModified && len(changeset) == 0 {
			continue
		}

		records = append(records, domain.AuditRecord{
			Timestamp:  timestamp,
			ActionType: ch.Action,
			EntityName: EntityNameSuggestion,
			RecordID:   recordID,
			Changes:    changeset,
			AdminID:    adminID,
		})
	}

	if err := r.repo.InsertBatch(ctx, records); err != nil {
		return fmt.Errorf("append audit records: %w", err)
	}

	r.log.DebugContext(ctx, "audit records staged", slog.Int("count", len(records)))
	return nil
}
