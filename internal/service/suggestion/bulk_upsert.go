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

// BulkUpsert applies a batch of creates and updates atomically: either every
// item lands and one transaction commits, or the store is unchanged. The
// whole batch is validated before any write; a missing suggestion id or
// employee id aborts everything with NotFound.
func (s *Service) BulkUpsert(ctx context.Context, items []Item) error {
	if len(items) == 0 {
		return domain.NewValidationError("items", "the request must contain at least one item")
	}

	parsed := make([]parsedItem, 0, len(items))
	var errs []domain.FieldError
	for i, item := range items {
		p, itemErrs := parseItem(item, fmt.Sprintf("items[%d].", i))
		errs = append(errs, itemErrs...)
		parsed = append(parsed, p)
	}

	// One batch lookup over the distinct employee ids of the whole input.
	employees, err := s.employees.GetByIDs(ctx, distinctEmployeeIDs(items))
	if err != nil {
		return fmt.Errorf("resolve employees: %w", err)
	}
	for i, item := range items {
		if item.EmployeeID == uuid.Nil {
			continue // already reported as required
		}
		if _, ok := employees[item.EmployeeID]; !ok {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("items[%d].employeeId", i),
				Message: "employee does not exist",
			})
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}

	var toUpdate, toCreate []parsedItem
	for _, p := range parsed {
		if p.ID != nil {
			toUpdate = append(toUpdate, p)
		} else {
			toCreate = append(toCreate, p)
		}
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		now := time.Now().UTC()
		changes := make([]audit.Change, 0, len(parsed))

		updateIDs := make([]uuid.UUID, 0, len(toUpdate))
		for _, p := range toUpdate {
			updateIDs = append(updateIDs, *p.ID)
		}
		existing, err := s.suggestions.GetByIDs(ctx, updateIDs)
		if err != nil {
			return fmt.Errorf("resolve suggestions for update: %w", err)
		}

		updates := make([]domain.Suggestion, 0, len(toUpdate))
		for _, p := range toUpdate {
			before, ok := existing[*p.ID]
			if !ok {
				return fmt.Errorf("suggestion %s for update: %w", *p.ID, domain.ErrNotFound)
			}
			after := applyItem(before, p, now)
			updates = append(updates, after)
			b := before
			a := after
			changes = append(changes, audit.Change{Action: domain.AuditActionModified, Before: &b, After: &a})
		}

		creates := make([]domain.Suggestion, 0, len(toCreate))
		for _, p := range toCreate {
			employee, ok := employees[p.EmployeeID]
			if !ok {
				// Validation already covered this; kept as a safety check.
				return fmt.Errorf("employee %s for creation: %w", p.EmployeeID, domain.ErrNotFound)
			}
			created := newSuggestion(p, employee.DepartmentID, now)
			creates = append(creates, created)
			c := created
			changes = append(changes, audit.Change{Action: domain.AuditActionAdded, After: &c})
		}

		// Updates are staged before creates; both commit together.
		if err := s.suggestions.UpdateBatch(ctx, updates); err != nil {
			return err
		}
		if err := s.suggestions.InsertBatch(ctx, creates); err != nil {
			return err
		}
		return s.recorder.Record(ctx, changes)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "bulk upsert committed",
		slog.Int("updated", len(toUpdate)),
		slog.Int("created", len(toCreate)),
	)
	return nil
}

func distinctEmployeeIDs(items []Item) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	out := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.EmployeeID == uuid.Nil {
			continue
		}
		if _, ok := seen[item.EmployeeID]; ok {
			continue
		}
		seen[item.EmployeeID] = struct{}{}
		out = append(out, item.EmployeeID)
	}
	return out
}
