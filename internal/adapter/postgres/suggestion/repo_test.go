package suggestion_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidahq/suggestions-backend/internal/adapter/postgres"
	"github.com/vidahq/suggestions-backend/internal/adapter/postgres/suggestion"
	"github.com/vidahq/suggestions-backend/internal/adapter/postgres/testhelper"
	"github.com/vidahq/suggestions-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*suggestion.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return suggestion.New(pool), pool
}

// ---------------------------------------------------------------------------
// Insert + Get
// ---------------------------------------------------------------------------

func TestRepo_Insert_AndGet(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	dept := testhelper.SeedDepartment(t, pool)
	employee := testhelper.SeedEmployee(t, pool, dept.ID)
	admin := testhelper.SeedAdmin(t, pool)

	notes := "Issued on induction"
	s := domain.Suggestion{
		ID:               uuid.New(),
		Description:      "Provide cut-resistant gloves",
		Source:           domain.SourceAdmin,
		Type:             domain.TypeEquipment,
		Status:           domain.StatusPending,
		Priority:         domain.PriorityHigh,
		Notes:            &notes,
		EmployeeID:       employee.ID,
		DepartmentID:     dept.ID,
		CreatedByAdminID: &admin.ID,
		DateCreated:      time.Now().UTC().Truncate(time.Microsecond),
	}

	if err := repo.Insert(ctx, &s); err != nil {
		t.Fatalf("Insert: unexpected error: %v", err)
	}

	got, err := repo.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}
	if got.Description != s.Description {
		t.Errorf("Description mismatch: got %q, want %q", got.Description, s.Description)
	}
	if got.Status != domain.StatusPending || got.Priority != domain.PriorityHigh {
		t.Errorf("enum mismatch: status=%s priority=%s", got.Status, got.Priority)
	}
	if got.Notes == nil || *got.Notes != notes {
		t.Errorf("Notes mismatch: got %v", got.Notes)
	}
	if got.CreatedByAdminID == nil || *got.CreatedByAdminID != admin.ID {
		t.Errorf("CreatedByAdminID mismatch: got %v, want %d", got.CreatedByAdminID, admin.ID)
	}
	if got.DateUpdated != nil {
		t.Errorf("DateUpdated should be nil on a fresh row, got %v", got.DateUpdated)
	}
}

func TestRepo_Get_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.Get(context.Background(), uuid.New())
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_Insert_UnknownEmployee(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	dept := testhelper.SeedDepartment(t, pool)

	s := domain.Suggestion{
		ID:           uuid.New(),
		Description:  "Orphan",
		Source:       domain.SourceVida,
		Type:         domain.TypeExercise,
		Status:       domain.StatusPending,
		Priority:     domain.PriorityLow,
		EmployeeID:   uuid.New(),
		DepartmentID: dept.ID,
		DateCreated:  time.Now().UTC(),
	}

	err := repo.Insert(ctx, &s)
	if err == nil {
		t.Fatal("expected FK violation for unknown employee")
	}
}

// ---------------------------------------------------------------------------
// GetWithEmployee
// ---------------------------------------------------------------------------

func TestRepo_GetWithEmployee(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	dept := testhelper.SeedDepartment(t, pool)
	employee := testhelper.SeedEmployee(t, pool, dept.ID)
	admin := testhelper.SeedAdmin(t, pool)
	seeded := testhelper.SeedSuggestion(t, pool, employee, func(s *domain.Suggestion) {
		s.CreatedByAdminID = &admin.ID
	})

	got, err := repo.GetWithEmployee(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetWithEmployee: unexpected error: %v", err)
	}
	if got.EmployeeName != employee.Name {
		t.Errorf("EmployeeName mismatch: got %q, want %q", got.EmployeeName, employee.Name)
	}
	if got.CreatedBy == nil || *got.CreatedBy != admin.Username {
		t.Errorf("CreatedBy mismatch: got %v, want %q", got.CreatedBy, admin.Username)
	}
}

func TestRepo_GetWithEmployee_NoCreator(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	dept := testhelper.SeedDepartment(t, pool)
	employee := testhelper.SeedEmployee(t, pool, dept.ID)
	seeded := testhelper.SeedSuggestion(t, pool, employee)

	got, err := repo.GetWithEmployee(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetWithEmployee: unexpected error: %v", err)
	}
	if got.CreatedBy != nil {
		t.Errorf("CreatedBy should be nil without a creating admin, got %q", *got.CreatedBy)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestRepo_List_FilterConjunction(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	dept := testhelper.SeedDepartment(t, pool)
	employee := testhelper.SeedEmployee(t, pool, dept.ID)

	match := testhelper.SeedSuggestion(t, pool, employee, func(s *domain.Suggestion) {
		s.Status = domain.StatusInProgress
		s.Priority = domain.PriorityHigh
	})
	// Same status, different priority: must not match.
	testhelper.SeedSuggestion(t, pool, employee, func(s *domain.Suggestion) {
		s.Status = domain.StatusInProgress
		s.Priority = domain.PriorityLow
	})
	// Same priority, different status: must not match.
	testhelper.SeedSuggestion(t, pool, employee, func(s *domain.Suggestion) {
		s.Status = domain.StatusCompleted
		s.Priority = domain.PriorityHigh
	})

	status := domain.StatusInProgress
	priority := domain.PriorityHigh
	filter := domain.SuggestionFilter{
		Status:     &status,
		Priority:   &priority,
		EmployeeID: &employee.ID,
	}

	items, total, err := repo.List(ctx, filter, domain.Page{Number: 1, Size: 10})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
	if len(items) != 1 || items[0].ID != match.ID {
		t.Fatalf("expected only the matching suggestion, got %d items", len(items))
	}
}

func TestRepo_List_PaginationAndOrder(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	dept := testhelper.SeedDepartment(t, pool)
	employee := testhelper.SeedEmployee(t, pool, dept.ID)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ids := make([]uuid.UUID, 5)
	for i := 0; i < 5; i++ {
		created := base.Add(time.Duration(i) * time.Hour)
		s := testhelper.SeedSuggestion(t, pool, employee, func(s *domain.Suggestion) {
			s.DateCreated = created
		})
		ids[i] = s.ID
	}

	filter := domain.SuggestionFilter{EmployeeID: &employee.ID}

	page1, total, err := repo.List(ctx, filter, domain.Page{Number: 1, Size: 2})
	if err != nil {
		t.Fatalf("List page 1: unexpected error: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}
	if len(page1) != 2 {
		t.Fatalf("page 1 size = %d, want 2", len(page1))
	}
	// Newest first.
	if page1[0].ID != ids[4] || page1[1].ID != ids[3] {
		t.Errorf("page 1 order wrong: got [%s %s], want [%s %s]", page1[0].ID, page1[1].ID, ids[4], ids[3])
	}

	page3, _, err := repo.List(ctx, filter, domain.Page{Number: 3, Size: 2})
	if err != nil {
		t.Fatalf("List page 3: unexpected error: %v", err)
	}
	if len(page3) != 1 || page3[0].ID != ids[0] {
		t.Errorf("last page should hold the oldest suggestion, got %d items", len(page3))
	}

	empty, total, err := repo.List(ctx, filter, domain.Page{Number: 9, Size: 2})
	if err != nil {
		t.Fatalf("List past end: unexpected error: %v", err)
	}
	if total != 5 || len(empty) != 0 {
		t.Errorf("page past end: total=%d items=%d, want total=5 items=0", total, len(empty))
	}
}

// ---------------------------------------------------------------------------
// GetByIDs / ListByEmployeeIDs
// ---------------------------------------------------------------------------

func TestRepo_GetByIDs_MissingAreAbsent(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	dept := testhelper.SeedDepartment(t, pool)
	employee := testhelper.SeedEmployee(t, pool, dept.ID)
	seeded := testhelper.SeedSuggestion(t, pool, employee)

	missing := uuid.New()
	got, err := repo.GetByIDs(ctx, []uuid.UUID{seeded.ID, missing})
	if err != nil {
		t.Fatalf("GetByIDs: unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	if _, ok := got[seeded.ID]; !ok {
		t.Error("seeded suggestion missing from result")
	}
	if _, ok := got[missing]; ok {
		t.Error("unknown id should be absent, not present")
	}
}

func TestRepo_ListByEmployeeIDs_GroupsByEmployee(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	dept := testhelper.SeedDepartment(t, pool)
	alice := testhelper.SeedEmployee(t, pool, dept.ID)
	bob := testhelper.SeedEmployee(t, pool, dept.ID)

	testhelper.SeedSuggestion(t, pool, alice)
	testhelper.SeedSuggestion(t, pool, alice)
	testhelper.SeedSuggestion(t, pool, bob)

	got, err := repo.ListByEmployeeIDs(ctx, []uuid.UUID{alice.ID, bob.ID})
	if err != nil {
		t.Fatalf("ListByEmployeeIDs: unexpected error: %v", err)
	}
	if len(got[alice.ID]) != 2 {
		t.Errorf("alice suggestions = %d, want 2", len(got[alice.ID]))
	}
	if len(got[bob.ID]) != 1 {
		t.Errorf("bob suggestions = %d, want 1", len(got[bob.ID]))
	}
}

// ---------------------------------------------------------------------------
// Update / Delete
// ---------------------------------------------------------------------------

func TestRepo_Update(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	dept := testhelper.SeedDepartment(t, pool)
	employee := testhelper.SeedEmployee(t, pool, dept.ID)
	s := testhelper.SeedSuggestion(t, pool, employee)

	updated := time.Now().UTC().Truncate(time.Microsecond)
	s.Status = domain.StatusCompleted
	s.DateUpdated = &updated
	s.DateCompleted = &updated

	if err := repo.Update(ctx, &s); err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	got, err := repo.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if got.Status != domain.StatusCompleted {
		t.Errorf("Status = %s, want Completed", got.Status)
	}
	if got.DateCompleted == nil {
		t.Error("DateCompleted should be set")
	}
}

func TestRepo_Update_NotFound(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	dept := testhelper.SeedDepartment(t, pool)
	employee := testhelper.SeedEmployee(t, pool, dept.ID)
	s := testhelper.SeedSuggestion(t, pool, employee)
	s.ID = uuid.New()

	err := repo.Update(ctx, &s)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	dept := testhelper.SeedDepartment(t, pool)
	employee := testhelper.SeedEmployee(t, pool, dept.ID)
	s := testhelper.SeedSuggestion(t, pool, employee)

	if err := repo.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}

	_, err := repo.Get(ctx, s.ID)
	assertIsDomainError(t, err, domain.ErrNotFound)

	err = repo.Delete(ctx, s.ID)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Batches and transactions
// ---------------------------------------------------------------------------

func TestRepo_InsertBatch_RollsBackWithTx(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	dept := testhelper.SeedDepartment(t, pool)
	employee := testhelper.SeedEmployee(t, pool, dept.ID)

	good := domain.Suggestion{
		ID:           uuid.New(),
		Description:  "Valid",
		Source:       domain.SourceVida,
		Type:         domain.TypeLifestyle,
		Status:       domain.StatusPending,
		Priority:     domain.PriorityMedium,
		EmployeeID:   employee.ID,
		DepartmentID: dept.ID,
		DateCreated:  time.Now().UTC(),
	}
	bad := good
	bad.ID = uuid.New()
	bad.EmployeeID = uuid.New() // FK violation

	tm := postgres.NewTxManager(pool)
	err := tm.RunInTx(ctx, func(txCtx context.Context) error {
		return repo.InsertBatch(txCtx, []domain.Suggestion{good, bad})
	})
	if err == nil {
		t.Fatal("expected batch insert inside tx to fail")
	}

	// The good row must have been rolled back with the bad one.
	_, err = repo.Get(ctx, good.ID)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_UpdateBatch(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	dept := testhelper.SeedDepartment(t, pool)
	employee := testhelper.SeedEmployee(t, pool, dept.ID)
	a := testhelper.SeedSuggestion(t, pool, employee)
	b := testhelper.SeedSuggestion(t, pool, employee)

	a.Status = domain.StatusDismissed
	b.Priority = domain.PriorityHigh

	if err := repo.UpdateBatch(ctx, []domain.Suggestion{a, b}); err != nil {
		t.Fatalf("UpdateBatch: unexpected error: %v", err)
	}

	gotA, err := repo.Get(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotA.Status != domain.StatusDismissed {
		t.Errorf("a.Status = %s, want Dismissed", gotA.Status)
	}
	gotB, err := repo.Get(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotB.Priority != domain.PriorityHigh {
		t.Errorf("b.Priority = %s, want High", gotB.Priority)
	}
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func assertIsDomainError(t *testing.T, err error, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error wrapping %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error wrapping %v, got: %v", target, err)
	}
}
