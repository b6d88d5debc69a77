package audit

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vidahq/suggestions-backend/internal/domain"
)

// diff computes the field-level changeset for one pending write.
// Added: every field as {old: null, new: value}.
// Deleted: every field as {old: value, new: null}.
// Modified: only fields whose values differ.
func diff(ch Change) (domain.ChangeSet, uuid.UUID, error) {
	switch ch.Action {
	case domain.AuditActionAdded:
		if ch.After == nil {
			return nil, uuid.Nil, fmt.Errorf("audit: added change without after snapshot: %w", domain.ErrInternal)
		}
		return snapshotChanges(ch.After, false), ch.After.ID, nil

	case domain.AuditActionDeleted:
		if ch.Before == nil {
			return nil, uuid.Nil, fmt.Errorf("audit: deleted change without before snapshot: %w", domain.ErrInternal)
		}
		return snapshotChanges(ch.Before, true), ch.Before.ID, nil

	case domain.AuditActionModified:
		if ch.Before == nil || ch.After == nil {
			return nil, uuid.Nil, fmt.Errorf("audit: modified change requires both snapshots: %w", domain.ErrInternal)
		}
		if ch.Before.ID != ch.After.ID {
			return nil, uuid.Nil, fmt.Errorf("audit: snapshot id mismatch %s vs %s: %w", ch.Before.ID, ch.After.ID, domain.ErrInternal)
		}
		return modifiedChanges(ch.Before, ch.After), ch.After.ID, nil

	default:
		return nil, uuid.Nil, fmt.Errorf("audit: unknown action %q: %w", ch.Action, domain.ErrInternal)
	}
}

// snapshotChanges renders every field of one snapshot against null.
// asOld=false puts the values on the "new" side (Added); asOld=true on the
// "old" side (Deleted).
func snapshotChanges(s *domain.Suggestion, asOld bool) domain.ChangeSet {
	set := domain.ChangeSet{}
	for name, value := range fieldValues(s) {
		if asOld {
			set[name] = domain.FieldChange{Old: value, New: nil}
		} else {
			set[name] = domain.FieldChange{Old: nil, New: value}
		}
	}
	return set
}

// modifiedChanges renders only the fields whose values differ.
func modifiedChanges(before, after *domain.Suggestion) domain.ChangeSet {
	set := domain.ChangeSet{}
	beforeVals := fieldValues(before)
	for name, afterVal := range fieldValues(after) {
		if !equalValue(beforeVals[name], afterVal) {
			set[name] = domain.FieldChange{Old: beforeVals[name], New: afterVal}
		}
	}
	return set
}

// fieldValues flattens a suggestion into wire-named field values. Pointer
// fields become nil or their dereferenced value so diffs compare contents,
// not addresses.
func fieldValues(s *domain.Suggestion) map[string]any {
	return map[string]any{
		"id":               s.ID.String(),
		"description":      s.Description,
		"source":           s.Source.String(),
		"type":             s.Type.String(),
		"status":           s.Status.String(),
		"priority":         s.Priority.String(),
		"notes":            strPtrValue(s.Notes),
		"employeeId":       s.EmployeeID.String(),
		"departmentId":     s.DepartmentID,
		"createdByAdminId": int64PtrValue(s.CreatedByAdminID),
		"dateCreated":      s.DateCreated,
		"dateUpdated":      timePtrValue(s.DateUpdated),
		"dateCompleted":    timePtrValue(s.DateCompleted),
	}
}

func equalValue(a, b any) bool {
	at, aok := a.(time.Time)
	bt, bok := b.(time.Time)
	if aok && bok {
		return at.Equal(bt)
	}
	return a == b
}

func strPtrValue(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func int64PtrValue(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func timePtrValue(p *time.Time) any {
	if p == nil {
		return nil
	}
	return *p
}
