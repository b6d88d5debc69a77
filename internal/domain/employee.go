package domain

import (
	"time"

	"github.com/google/uuid"
)

// Department groups employees. Deleting a department is not part of the
// public surface; departments are created by the seeder.
type Department struct {
	ID          int64
	Name        string
	DateCreated time.Time
	DateUpdated *time.Time
}

// Employee belongs to exactly one department. Deleting an employee cascades
// to its suggestions (enforced in DDL).
type Employee struct {
	ID           uuid.UUID
	Name         string
	DepartmentID int64
	RiskLevel    RiskLevel
	DateCreated  time.Time
	DateUpdated  *time.Time
}

// EmployeeWithDetails is the read model for employee queries: the employee
// joined with its department name and its suggestions.
type EmployeeWithDetails struct {
	Employee
	DepartmentName string
	Suggestions    []SuggestionWithEmployee
}
