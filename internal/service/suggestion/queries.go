package suggestion

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vidahq/suggestions-backend/internal/domain"
)

// ListResult is one page of suggestions plus the pagination envelope numbers.
type ListResult struct {
	Items        []domain.SuggestionWithEmployee
	PageNumber   int
	PageSize     int
	TotalPages   int
	TotalRecords int
}

// List returns suggestions matching the conjunction of the parseable filter
// criteria, newest first. TotalPages is computed from the count before
// paging is applied.
func (s *Service) List(ctx context.Context, in ListInput) (*ListResult, error) {
	in.Page.Normalize()

	items, total, err := s.suggestions.List(ctx, in.filter(), in.Page)
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}

	return &ListResult{
		Items:        items,
		PageNumber:   in.Page.Number,
		PageSize:     in.Page.Size,
		TotalPages:   in.Page.TotalPages(total),
		TotalRecords: total,
	}, nil
}

// GetByID returns one suggestion with its employee name and creator
// username. Absence surfaces as domain.ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.SuggestionWithEmployee, error) {
	out, err := s.suggestions.GetWithEmployee(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get suggestion: %w", err)
	}
	return out, nil
}
