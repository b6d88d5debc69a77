// Package employee implements the employee read side: paged, filtered
// listings with each employee's suggestions loaded eagerly.
package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vidahq/suggestions-backend/internal/audit"
	"github.com/vidahq/suggestions-backend/internal/domain"
)

type employeeRepo interface {
	GetWithDepartment(ctx context.Context, id uuid.UUID) (*domain.EmployeeWithDetails, error)
	List(ctx context.Context, filter domain.EmployeeFilter, page domain.Page) ([]domain.EmployeeWithDetails, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type suggestionRepo interface {
	ListByEmployeeIDs(ctx context.Context, employeeIDs []uuid.UUID) (map[uuid.UUID][]domain.SuggestionWithEmployee, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type auditRecorder interface {
	Record(ctx context.Context, changes []audit.Change) error
}

// Service answers employee queries. Suggestions are attached with one batch
// query per page rather than one query per employee.
type Service struct {
	employees   employeeRepo
	suggestions suggestionRepo
	tx          txManager
	recorder    auditRecorder
	log         *slog.Logger
}

// NewService creates a new employee service.
func NewService(
	log *slog.Logger,
	employees employeeRepo,
	suggestions suggestionRepo,
	tx txManager,
	recorder auditRecorder,
) *Service {
	return &Service{
		employees:   employees,
		suggestions: suggestions,
		tx:          tx,
		recorder:    recorder,
		log:         log.With("service", "employee"),
	}
}

// ListInput holds filter and paging parameters for employee searches.
type ListInput struct {
	Name       *string
	Department *string
	EmployeeID *uuid.UUID
	Page       domain.Page
}

func (in ListInput) filter() domain.EmployeeFilter {
	return domain.EmployeeFilter{
		Name:       in.Name,
		Department: in.Department,
		EmployeeID: in.EmployeeID,
	}
}

// ListResult is one page of employees plus the pagination envelope numbers.
type ListResult struct {
	Items        []domain.EmployeeWithDetails
	PageNumber   int
	PageSize     int
	TotalPages   int
	TotalRecords int
}

// List returns employees matching the filter, ordered by name, each carrying
// its full set of suggestions.
func (s *Service) List(ctx context.Context, in ListInput) (*ListResult, error) {
	in.Page.Normalize()

	items, total, err := s.employees.List(ctx, in.filter(), in.Page)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	if err := s.attachSuggestions(ctx, items); err != nil {
		return nil, err
	}

	return &ListResult{
		Items:        items,
		PageNumber:   in.Page.Number,
		PageSize:     in.Page.Size,
		TotalPages:   in.Page.TotalPages(total),
		TotalRecords: total,
	}, nil
}

// GetByID returns one employee with its department name and suggestions.
// Absence surfaces as domain.ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.EmployeeWithDetails, error) {
	e, err := s.employees.GetWithDepartment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}

	items := []domain.EmployeeWithDetails{*e}
	if err := s.attachSuggestions(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Delete removes an employee. The schema cascades the removal to the
// employee's suggestions; each cascaded suggestion gets a Deleted audit row,
// committed in the same transaction as the delete itself.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	var cascaded int
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		byEmployee, err := s.suggestions.ListByEmployeeIDs(ctx, []uuid.UUID{id})
		if err != nil {
			return fmt.Errorf("load suggestions for employee: %w", err)
		}

		if err := s.employees.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete employee: %w", err)
		}

		suggestions := byEmployee[id]
		cascaded = len(suggestions)
		changes := make([]audit.Change, 0, len(suggestions))
		for i := range suggestions {
			changes = append(changes, audit.Change{
				Action: domain.AuditActionDeleted,
				Before: &suggestions[i].Suggestion,
			})
		}
		return s.recorder.Record(ctx, changes)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "employee deleted",
		slog.String("employee_id", id.String()),
		slog.Int("cascaded_suggestions", cascaded),
	)
	return nil
}

func (s *Service) attachSuggestions(ctx context.Context, items []domain.EmployeeWithDetails) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, e := range items {
		ids = append(ids, e.ID)
	}

	byEmployee, err := s.suggestions.ListByEmployeeIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load suggestions for employees: %w", err)
	}

	for i := range items {
		suggestions := byEmployee[items[i].ID]
		if suggestions == nil {
			suggestions = []domain.SuggestionWithEmployee{}
		}
		items[i].Suggestions = suggestions
	}
	return nil
}
