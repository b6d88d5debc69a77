package suggestion

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vidahq/suggestions-backend/internal/audit"
	"github.com/vidahq/suggestions-backend/internal/domain"
)

var _ suggestionRepo = &suggestionRepoMock{}

type suggestionRepoMock struct {
	GetFunc             func(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error)
	GetByIDsFunc        func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Suggestion, error)
	GetWithEmployeeFunc func(ctx context.Context, id uuid.UUID) (*domain.SuggestionWithEmployee, error)
	ListFunc            func(ctx context.Context, filter domain.SuggestionFilter, page domain.Page) ([]domain.SuggestionWithEmployee, int, error)
	InsertFunc          func(ctx context.Context, s *domain.Suggestion) error
	InsertBatchFunc     func(ctx context.Context, suggestions []domain.Suggestion) error
	UpdateFunc          func(ctx context.Context, s *domain.Suggestion) error
	UpdateBatchFunc     func(ctx context.Context, suggestions []domain.Suggestion) error
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error

	mu    sync.Mutex
	calls struct {
		Insert      []domain.Suggestion
		InsertBatch [][]domain.Suggestion
		Update      []domain.Suggestion
		UpdateBatch [][]domain.Suggestion
		Delete      []uuid.UUID
	}
}

func (m *suggestionRepoMock) Get(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	if m.GetFunc == nil {
		panic("suggestionRepoMock.GetFunc is nil")
	}
	return m.GetFunc(ctx, id)
}

func (m *suggestionRepoMock) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Suggestion, error) {
	if m.GetByIDsFunc == nil {
		panic("suggestionRepoMock.GetByIDsFunc is nil")
	}
	return m.GetByIDsFunc(ctx, ids)
}

func (m *suggestionRepoMock) GetWithEmployee(ctx context.Context, id uuid.UUID) (*domain.SuggestionWithEmployee, error) {
	if m.GetWithEmployeeFunc == nil {
		panic("suggestionRepoMock.GetWithEmployeeFunc is nil")
	}
	return m.GetWithEmployeeFunc(ctx, id)
}

func (m *suggestionRepoMock) List(ctx context.Context, filter domain.SuggestionFilter, page domain.Page) ([]domain.SuggestionWithEmployee, int, error) {
	if m.ListFunc == nil {
		panic("suggestionRepoMock.ListFunc is nil")
	}
	return m.ListFunc(ctx, filter, page)
}

func (m *suggestionRepoMock) Insert(ctx context.Context, s *domain.Suggestion) error {
	if m.InsertFunc == nil {
		panic("suggestionRepoMock.InsertFunc is nil")
	}
	m.mu.Lock()
	m.calls.Insert = append(m.calls.Insert, *s)
	m.mu.Unlock()
	return m.InsertFunc(ctx, s)
}

func (m *suggestionRepoMock) InsertCalls() []domain.Suggestion {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Insert
}

func (m *suggestionRepoMock) InsertBatch(ctx context.Context, suggestions []domain.Suggestion) error {
	if m.InsertBatchFunc == nil {
		panic("suggestionRepoMock.InsertBatchFunc is nil")
	}
	m.mu.Lock()
	m.calls.InsertBatch = append(m.calls.InsertBatch, suggestions)
	m.mu.Unlock()
	return m.InsertBatchFunc(ctx, suggestions)
}

func (m *suggestionRepoMock) InsertBatchCalls() [][]domain.Suggestion {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.InsertBatch
}

func (m *suggestionRepoMock) Update(ctx context.Context, s *domain.Suggestion) error {
	if m.UpdateFunc == nil {
		panic("suggestionRepoMock.UpdateFunc is nil")
	}
	m.mu.Lock()
	m.calls.Update = append(m.calls.Update, *s)
	m.mu.Unlock()
	return m.UpdateFunc(ctx, s)
}

func (m *suggestionRepoMock) UpdateCalls() []domain.Suggestion {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Update
}

func (m *suggestionRepoMock) UpdateBatch(ctx context.Context, suggestions []domain.Suggestion) error {
	if m.UpdateBatchFunc == nil {
		panic("suggestionRepoMock.UpdateBatchFunc is nil")
	}
	m.mu.Lock()
	m.calls.UpdateBatch = append(m.calls.UpdateBatch, suggestions)
	m.mu.Unlock()
	return m.UpdateBatchFunc(ctx, suggestions)
}

func (m *suggestionRepoMock) UpdateBatchCalls() [][]domain.Suggestion {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.UpdateBatch
}

func (m *suggestionRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("suggestionRepoMock.DeleteFunc is nil")
	}
	m.mu.Lock()
	m.calls.Delete = append(m.calls.Delete, id)
	m.mu.Unlock()
	return m.DeleteFunc(ctx, id)
}

func (m *suggestionRepoMock) DeleteCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Delete
}

var _ employeeRepo = &employeeRepoMock{}

type employeeRepoMock struct {
	GetByIDsFunc func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Employee, error)
	ExistsFunc   func(ctx context.Context, id uuid.UUID) (bool, error)

	mu    sync.Mutex
	calls struct {
		GetByIDs [][]uuid.UUID
		Exists   []uuid.UUID
	}
}

func (m *employeeRepoMock) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Employee, error) {
	if m.GetByIDsFunc == nil {
		panic("employeeRepoMock.GetByIDsFunc is nil")
	}
	m.mu.Lock()
	m.calls.GetByIDs = append(m.calls.GetByIDs, ids)
	m.mu.Unlock()
	return m.GetByIDsFunc(ctx, ids)
}

func (m *employeeRepoMock) GetByIDsCalls() [][]uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.GetByIDs
}

func (m *employeeRepoMock) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFunc == nil {
		panic("employeeRepoMock.ExistsFunc is nil")
	}
	m.mu.Lock()
	m.calls.Exists = append(m.calls.Exists, id)
	m.mu.Unlock()
	return m.ExistsFunc(ctx, id)
}

func (m *employeeRepoMock) ExistsCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Exists
}

var _ txManager = &txManagerMock{}

// txManagerMock runs the transaction body directly on the caller's context.
type txManagerMock struct {
	mu    sync.Mutex
	count int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.count++
	m.mu.Unlock()
	return fn(ctx)
}

func (m *txManagerMock) RunInTxCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

var _ auditRecorder = &auditRecorderMock{}

type auditRecorderMock struct {
	RecordFunc func(ctx context.Context, changes []audit.Change) error

	mu    sync.Mutex
	calls struct {
		Record [][]audit.Change
	}
}

func (m *auditRecorderMock) Record(ctx context.Context, changes []audit.Change) error {
	m.mu.Lock()
	m.calls.Record = append(m.calls.Record, changes)
	m.mu.Unlock()
	if m.RecordFunc == nil {
		return nil
	}
	return m.RecordFunc(ctx, changes)
}

func (m *auditRecorderMock) RecordCalls() [][]audit.Change {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Record
}
