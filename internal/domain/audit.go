package domain

import (
	"time"

	"github.com/google/uuid"
)

// FieldChange holds the before and after values of a single field.
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// ChangeSet maps field names to their before/after values. Only fields whose
// value actually changed appear; serialization is deterministic because
// encoding/json emits map keys in sorted order.
type ChangeSet map[string]FieldChange

// AuditRecord is one immutable row of the change history. Rows are written
// exclusively by the audit recorder, inside the same transaction as the
// business write they describe.
type AuditRecord struct {
	ID         int64
	Timestamp  time.Time
	ActionType AuditAction
	EntityName string
	RecordID   uuid.UUID
	Changes    ChangeSet
	AdminID    *int64
}
