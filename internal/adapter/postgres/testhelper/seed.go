package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidahq/suggestions-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedDepartment creates a department with a unique name and returns it.
func SeedDepartment(t *testing.T, pool *pgxpool.Pool) domain.Department {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	d := domain.Department{
		Name:        "Department " + uniqueSuffix(),
		DateCreated: now,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO departments (name, date_created) VALUES ($1, $2) RETURNING id`,
		d.Name, d.DateCreated,
	).Scan(&d.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedDepartment insert: %v", err)
	}

	return d
}

// SeedAdmin creates an active admin and returns it.
func SeedAdmin(t *testing.T, pool *pgxpool.Pool) domain.Admin {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	a := domain.Admin{
		EmailAddress: "admin-" + suffix + "@example.com",
		DisplayName:  "Admin " + suffix,
		FirstName:    "Admin",
		LastName:     suffix,
		Username:     "admin-" + suffix,
		Role:         "Admin",
		IsActive:     true,
		DateCreated:  now,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO admins (email_address, display_name, first_name, last_name, username, role, is_active, date_created)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		a.EmailAddress, a.DisplayName, a.FirstName, a.LastName, a.Username, a.Role, a.IsActive, a.DateCreated,
	).Scan(&a.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedAdmin insert: %v", err)
	}

	return a
}

// SeedEmployee creates an employee in the given department and returns it.
func SeedEmployee(t *testing.T, pool *pgxpool.Pool, departmentID int64) domain.Employee {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	e := domain.Employee{
		ID:           uuid.New(),
		Name:         "Employee " + suffix,
		DepartmentID: departmentID,
		RiskLevel:    domain.RiskMedium,
		DateCreated:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO employees (id, name, department_id, risk_level, date_created)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.Name, e.DepartmentID, string(e.RiskLevel), e.DateCreated,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEmployee insert: %v", err)
	}

	return e
}

// SeedSuggestion creates a pending Vida suggestion for the given employee,
// denormalizing its department, and returns it. Use mutate to adjust fields
// before the insert.
func SeedSuggestion(t *testing.T, pool *pgxpool.Pool, employee domain.Employee, mutate ...func(*domain.Suggestion)) domain.Suggestion {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	s := domain.Suggestion{
		ID:           uuid.New(),
		Description:  "Suggestion " + uniqueSuffix(),
		Source:       domain.SourceVida,
		Type:         domain.TypeBehavioural,
		Status:       domain.StatusPending,
		Priority:     domain.PriorityMedium,
		EmployeeID:   employee.ID,
		DepartmentID: employee.DepartmentID,
		DateCreated:  now,
	}
	for _, fn := range mutate {
		fn(&s)
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO suggestions (id, description, source, type, status, priority, notes, employee_id, department_id, created_by_admin_id, date_created, date_updated, date_completed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		s.ID, s.Description, string(s.Source), string(s.Type), string(s.Status), string(s.Priority),
		s.Notes, s.EmployeeID, s.DepartmentID, s.CreatedByAdminID, s.DateCreated, s.DateUpdated, s.DateCompleted,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSuggestion insert: %v", err)
	}

	return s
}
