// Package seed populates an empty database from a JSON document. Each table
// is filled only when it is empty, so re-running the seeder is safe.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/vidahq/suggestions-backend/internal/domain"
)

// Document is the wire shape of the seed file. Employees reference their
// department by name; suggestions reference their creator by username.
type Document struct {
	Employees   []EmployeeRecord   `json:"employees"`
	Suggestions []SuggestionRecord `json:"suggestions"`
}

// EmployeeRecord is one employee entry in the seed file.
type EmployeeRecord struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	RiskLevel  string    `json:"riskLevel"`
}

// SuggestionRecord is one suggestion entry in the seed file.
type SuggestionRecord struct {
	ID          uuid.UUID  `json:"id"`
	Description string     `json:"description"`
	Source      string     `json:"source"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Notes       *string    `json:"notes"`
	EmployeeID  uuid.UUID  `json:"employeeId"`
	CreatedBy   *string    `json:"createdBy"`
	DateCreated time.Time  `json:"dateCreated"`
	DateUpdated *time.Time `json:"dateUpdated"`
}

type departmentRepo interface {
	GetByName(ctx context.Context, name string) (*domain.Department, error)
	Insert(ctx context.Context, name string, createdAt time.Time) (*domain.Department, error)
	Count(ctx context.Context) (int, error)
}

type adminRepo interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	Insert(ctx context.Context, a *domain.Admin) (*domain.Admin, error)
	Count(ctx context.Context) (int, error)
}

type employeeRepo interface {
	Insert(ctx context.Context, e *domain.Employee) error
	Count(ctx context.Context) (int, error)
}

type suggestionRepo interface {
	InsertBatch(ctx context.Context, suggestions []domain.Suggestion) error
	Count(ctx context.Context) (int, error)
}

// Seeder loads a seed document into the database.
type Seeder struct {
	departments departmentRepo
	admins      adminRepo
	employees   employeeRepo
	suggestions suggestionRepo
	log         *slog.Logger
}

// New creates a Seeder.
func New(
	log *slog.Logger,
	departments departmentRepo,
	admins adminRepo,
	employees employeeRepo,
	suggestions suggestionRepo,
) *Seeder {
	return &Seeder{
		departments: departments,
		admins:      admins,
		employees:   employees,
		suggestions: suggestions,
		log:         log.With("component", "seeder"),
	}
}

// LoadFile reads and parses the seed document at path.
func LoadFile(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return &doc, nil
}

// Run seeds departments, admins, employees, and suggestions in that order.
// A table that already holds rows is left untouched.
func (s *Seeder) Run(ctx context.Context, doc *Document) error {
	now := time.Now().UTC()

	departments, err := s.seedDepartments(ctx, doc, now)
	if err != nil {
		return err
	}

	admins, err := s.seedAdmins(ctx, doc, now)
	if err != nil {
		return err
	}

	if err := s.seedEmployees(ctx, doc, departments, now); err != nil {
		return err
	}

	return s.seedSuggestions(ctx, doc, departments, admins)
}

func (s *Seeder) seedDepartments(ctx context.Context, doc *Document, now time.Time) (map[string]int64, error) {
	byName := make(map[string]int64)

	count, err := s.departments.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count departments: %w", err)
	}

	names := distinct(doc.Employees, func(e EmployeeRecord) string { return e.Department })

	if count > 0 {
		s.log.InfoContext(ctx, "departments already seeded", slog.Int("existing", count))
		for _, name := range names {
			d, err := s.departments.GetByName(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("department %q: %w", name, err)
			}
			byName[name] = d.ID
		}
		return byName, nil
	}

	for _, name := range names {
		d, err := s.departments.Insert(ctx, name, now)
		if err != nil {
			return nil, fmt.Errorf("insert department %q: %w", name, err)
		}
		byName[name] = d.ID
	}
	s.log.InfoContext(ctx, "departments seeded", slog.Int("count", len(names)))
	return byName, nil
}

func (s *Seeder) seedAdmins(ctx context.Context, doc *Document, now time.Time) (map[string]int64, error) {
	byUsername := make(map[string]int64)

	count, err := s.admins.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	}

	usernames := distinct(doc.Suggestions, func(r SuggestionRecord) string {
		if r.CreatedBy == nil {
			return ""
		}
		return *r.CreatedBy
	})

	if count > 0 {
		s.log.InfoContext(ctx, "admins already seeded", slog.Int("existing", count))
		for _, username := range usernames {
			a, err := s.admins.GetByUsername(ctx, username)
			if err != nil {
				return nil, fmt.Errorf("admin %q: %w", username, err)
			}
			byUsername[username] = a.ID
		}
		return byUsername, nil
	}

	for _, username := range usernames {
		a, err := s.admins.Insert(ctx, &domain.Admin{
			EmailAddress: username,
			DisplayName:  username,
			FirstName:    username,
			LastName:     username,
			Username:     username,
			Role:         "Admin",
			IsActive:     true,
			DateCreated:  now,
		})
		if err != nil {
			return nil, fmt.Errorf("insert admin %q: %w", username, err)
		}
		byUsername[username] = a.ID
	}
	s.log.InfoContext(ctx, "admins seeded", slog.Int("count", len(usernames)))
	return byUsername, nil
}

func (s *Seeder) seedEmployees(ctx context.Context, doc *Document, departments map[string]int64, now time.Time) error {
	count, err := s.employees.Count(ctx)
	if err != nil {
		return fmt.Errorf("count employees: %w", err)
	}
	if count > 0 {
		s.log.InfoContext(ctx, "employees already seeded", slog.Int("existing", count))
		return nil
	}

	for _, rec := range doc.Employees {
		risk, err := domain.ParseRiskLevel(rec.RiskLevel)
		if err != nil {
			return fmt.Errorf("employee %s: %w", rec.ID, err)
		}
		departmentID, ok := departments[rec.Department]
		if !ok {
			return fmt.Errorf("employee %s: unknown department %q", rec.ID, rec.Department)
		}

		if err := s.employees.Insert(ctx, &domain.Employee{
			ID:           rec.ID,
			Name:         rec.Name,
			DepartmentID: departmentID,
			RiskLevel:    risk,
			DateCreated:  now,
		}); err != nil {
			return fmt.Errorf("insert employee %s: %w", rec.ID, err)
		}
	}
	s.log.InfoContext(ctx, "employees seeded", slog.Int("count", len(doc.Employees)))
	return nil
}

func (s *Seeder) seedSuggestions(ctx context.Context, doc *Document, departments, admins map[string]int64) error {
	count, err := s.suggestions.Count(ctx)
	if err != nil {
		return fmt.Errorf("count suggestions: %w", err)
	}
	if count > 0 {
		s.log.InfoContext(ctx, "suggestions already seeded", slog.Int("existing", count))
		return nil
	}

	employeesByID := make(map[uuid.UUID]EmployeeRecord, len(doc.Employees))
	for _, e := range doc.Employees {
		employeesByID[e.ID] = e
	}

	batch := make([]domain.Suggestion, 0, len(doc.Suggestions))
	skipped := 0
	for _, rec := range doc.Suggestions {
		employee, ok := employeesByID[rec.EmployeeID]
		if !ok {
			s.log.WarnContext(ctx, "skipping suggestion with unknown employee",
				slog.String("suggestion_id", rec.ID.String()),
				slog.String("employee_id", rec.EmployeeID.String()),
			)
			skipped++
			continue
		}

		sg, err := s.buildSuggestion(rec, employee, departments, admins)
		if err != nil {
			return err
		}
		batch = append(batch, sg)
	}

	if err := s.suggestions.InsertBatch(ctx, batch); err != nil {
		return fmt.Errorf("insert suggestions: %w", err)
	}
	s.log.InfoContext(ctx, "suggestions seeded",
		slog.Int("count", len(batch)),
		slog.Int("skipped", skipped),
	)
	return nil
}

func (s *Seeder) buildSuggestion(rec SuggestionRecord, employee EmployeeRecord, departments, admins map[string]int64) (domain.Suggestion, error) {
	source, err := domain.ParseSuggestionSource(rec.Source)
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("suggestion %s: %w", rec.ID, err)
	}
	typ, err := domain.ParseSuggestionType(rec.Type)
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("suggestion %s: %w", rec.ID, err)
	}
	status, err := domain.ParseSuggestionStatus(rec.Status)
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("suggestion %s: %w", rec.ID, err)
	}
	priority, err := domain.ParseSuggestionPriority(rec.Priority)
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("suggestion %s: %w", rec.ID, err)
	}

	var createdBy *int64
	if rec.CreatedBy != nil {
		if id, ok := admins[*rec.CreatedBy]; ok {
			createdBy = &id
		}
	}

	departmentID, ok := departments[employee.Department]
	if !ok {
		return domain.Suggestion{}, fmt.Errorf("suggestion %s: unknown department %q", rec.ID, employee.Department)
	}

	return domain.Suggestion{
		ID:               rec.ID,
		Description:      rec.Description,
		Source:           source,
		Type:             typ,
		Status:           status,
		Priority:         priority,
		Notes:            rec.Notes,
		EmployeeID:       rec.EmployeeID,
		DepartmentID:     departmentID,
		CreatedByAdminID: createdBy,
		DateCreated:      rec.DateCreated,
		DateUpdated:      rec.DateUpdated,
	}, nil
}

func distinct[T any](items []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		k := key(item)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
