// Package suggestion implements the audited mutation pipeline and the
// filtered, paginated read engine for suggestions.
package suggestion

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vidahq/suggestions-backend/internal/audit"
	"github.com/vidahq/suggestions-backend/internal/domain"
)

type suggestionRepo interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Suggestion, error)
	GetWithEmployee(ctx context.Context, id uuid.UUID) (*domain.SuggestionWithEmployee, error)
	List(ctx context.Context, filter domain.SuggestionFilter, page domain.Page) ([]domain.SuggestionWithEmployee, int, error)
	Insert(ctx context.Context, s *domain.Suggestion) error
	InsertBatch(ctx context.Context, suggestions []domain.Suggestion) error
	Update(ctx context.Context, s *domain.Suggestion) error
	UpdateBatch(ctx context.Context, suggestions []domain.Suggestion) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type employeeRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Employee, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type auditRecorder interface {
	Record(ctx context.Context, changes []audit.Change) error
}

// Service orchestrates suggestion mutations (single and bulk) and queries.
// Every mutation commits in one transaction together with its audit rows.
type Service struct {
	suggestions suggestionRepo
	employees   employeeRepo
	tx          txManager
	recorder    auditRecorder
	log         *slog.Logger
}

// NewService creates a new suggestion service.
func NewService(
	log *slog.Logger,
	suggestions suggestionRepo,
	employees employeeRepo,
	tx txManager,
	recorder auditRecorder,
) *Service {
	return &Service{
		suggestions: suggestions,
		employees:   employees,
		tx:          tx,
		recorder:    recorder,
		log:         log.With("service", "suggestion"),
	}
}
