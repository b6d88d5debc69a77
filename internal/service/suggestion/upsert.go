package suggestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vidahq/suggestions-backend/internal/audit"
	"github.com/vidahq/suggestions-backend/internal/domain"
)

// Upsert creates or updates one suggestion and returns its id. A present
// Item.ID selects the update path; otherwise a new suggestion is created
// with a fresh id and the department denormalized from its employee.
// The write and its audit row commit in a single transaction.
func (s *Service) Upsert(ctx context.Context, in Item) (uuid.UUID, error) {
	parsed, errs := parseItem(in, "")

	// Creates need the employee row for department denormalization; updates
	// only verify the reference still resolves.
	var employee *domain.Employee
	if len(errs) == 0 {
		if in.ID == nil {
			found, err := s.employees.GetByIDs(ctx, []uuid.UUID{in.EmployeeID})
			if err != nil {
				return uuid.Nil, fmt.Errorf("resolve employee: %w", err)
			}
			if e, ok := found[in.EmployeeID]; ok {
				employee = &e
			} else {
				errs = append(errs, domain.FieldError{Field: "employeeId", Message: "employee does not exist"})
			}
		} else {
			ok, err := s.employees.Exists(ctx, in.EmployeeID)
			if err != nil {
				return uuid.Nil, fmt.Errorf("resolve employee: %w", err)
			}
			if !ok {
				errs = append(errs, domain.FieldError{Field: "employeeId", Message: "employee does not exist"})
			}
		}
	}
	if len(errs) > 0 {
		return uuid.Nil, domain.NewValidationErrors(errs)
	}

	var id uuid.UUID
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		now := time.Now().UTC()

		if in.ID != nil {
			before, err := s.suggestions.Get(ctx, *in.ID)
			if err != nil {
				return err
			}
			after := applyItem(*before, parsed, now)
			if err := s.suggestions.Update(ctx, &after); err != nil {
				return err
			}
			id = after.ID
			return s.recorder.Record(ctx, []audit.Change{
				{Action: domain.AuditActionModified, Before: before, After: &after},
			})
		}

		created := newSuggestion(parsed, employee.DepartmentID, now)
		if err := s.suggestions.Insert(ctx, &created); err != nil {
			return err
		}
		id = created.ID
		return s.recorder.Record(ctx, []audit.Change{
			{Action: domain.AuditActionAdded, After: &created},
		})
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.log.InfoContext(ctx, "suggestion upserted",
		slog.String("suggestion_id", id.String()),
		slog.Bool("created", in.ID == nil),
	)
	return id, nil
}

// Delete removes a suggestion and records the deletion in the audit log
// within the same transaction.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		before, err := s.suggestions.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := s.suggestions.Delete(ctx, id); err != nil {
			return err
		}
		return s.recorder.Record(ctx, []audit.Change{
			{Action: domain.AuditActionDeleted, Before: before},
		})
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "suggestion deleted", slog.String("suggestion_id", id.String()))
	return nil
}

// applyItem overwrites the mutable field set of an existing suggestion.
// Identity, employee linkage, and creation metadata never change on update.
// DateCompleted is stamped on the transition into Completed and cleared when
// the suggestion is reopened.
func applyItem(before domain.Suggestion, in parsedItem, now time.Time) domain.Suggestion {
	after := before
	after.Description = in.Description
	after.Source = in.source
	after.Type = in.typ
	after.Status = in.status
	after.Priority = in.priority
	after.Notes = in.Notes
	after.DateUpdated = &now
	switch {
	case in.status == domain.StatusCompleted && before.Status != domain.StatusCompleted:
		after.DateCompleted = &now
	case in.status != domain.StatusCompleted:
		after.DateCompleted = nil
	}
	return after
}

// newSuggestion builds a suggestion from a parsed item with a fresh id.
func newSuggestion(in parsedItem, departmentID int64, now time.Time) domain.Suggestion {
	var completed *time.Time
	if in.status == domain.StatusCompleted {
		completed = &now
	}
	return domain.Suggestion{
		ID:               uuid.New(),
		Description:      in.Description,
		Source:           in.source,
		Type:             in.typ,
		Status:           in.status,
		Priority:         in.priority,
		Notes:            in.Notes,
		EmployeeID:       in.EmployeeID,
		DepartmentID:     departmentID,
		CreatedByAdminID: in.CreatedByAdminID,
		DateCreated:      now,
		DateCompleted:    completed,
	}
}
