package domain

import "github.com/google/uuid"

// SuggestionFilter contains optional, conjunctively combined criteria for
// suggestion searches. A nil field is not a constraint.
type SuggestionFilter struct {
	Status     *SuggestionStatus
	Type       *SuggestionType
	Priority   *SuggestionPriority
	Source     *SuggestionSource
	EmployeeID *uuid.UUID
}

// EmployeeFilter contains optional criteria for employee searches.
// Name matches as a substring; Department matches the department name exactly.
type EmployeeFilter struct {
	Name       *string
	Department *string
	EmployeeID *uuid.UUID
}

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 200
)

// Page holds 1-based pagination parameters.
type Page struct {
	Number int
	Size   int
}

// Normalize applies defaults and clamps values.
func (p *Page) Normalize() {
	if p.Number < 1 {
		p.Number = DefaultPageNumber
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TotalPages computes ceil(totalRecords / pageSize) for a page size > 0.
func (p Page) TotalPages(totalRecords int) int {
	if totalRecords <= 0 {
		return 0
	}
	return (totalRecords + p.Size - 1) / p.Size
}
