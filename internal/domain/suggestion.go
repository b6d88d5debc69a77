package domain

import (
	"time"

	"github.com/google/uuid"
)

// Suggestion is a recommended corrective or preventive action tied to an
// employee. DepartmentID is denormalized from the employee at creation time
// and is not re-derived if the employee later changes department.
type Suggestion struct {
	ID               uuid.UUID
	Description      string
	Source           SuggestionSource
	Type             SuggestionType
	Status           SuggestionStatus
	Priority         SuggestionPriority
	Notes            *string
	EmployeeID       uuid.UUID
	DepartmentID     int64
	CreatedByAdminID *int64
	DateCreated      time.Time
	DateUpdated      *time.Time
	DateCompleted    *time.Time
}

// SuggestionWithEmployee is the read model for suggestion queries: the
// suggestion joined with its employee's name and the creating admin's
// username.
type SuggestionWithEmployee struct {
	Suggestion
	EmployeeName string
	CreatedBy    *string
}
