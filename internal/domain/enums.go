package domain

import (
	"fmt"
	"strings"
)

// SuggestionStatus represents the review state of a suggestion.
type SuggestionStatus string

const (
	StatusPending    SuggestionStatus = "Pending"
	StatusInProgress SuggestionStatus = "InProgress"
	StatusOverdue    SuggestionStatus = "Overdue"
	StatusCompleted  SuggestionStatus = "Completed"
	StatusDismissed  SuggestionStatus = "Dismissed"
)

func (s SuggestionStatus) String() string { return string(s) }

func (s SuggestionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusOverdue, StatusCompleted, StatusDismissed:
		return true
	}
	return false
}

// ParseSuggestionStatus parses a status name case-insensitively.
func ParseSuggestionStatus(s string) (SuggestionStatus, error) {
	for _, v := range []SuggestionStatus{StatusPending, StatusInProgress, StatusOverdue, StatusCompleted, StatusDismissed} {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown suggestion status %q: %w", s, ErrValidation)
}

// SuggestionPriority represents the urgency of a suggestion.
type SuggestionPriority string

const (
	PriorityLow    SuggestionPriority = "Low"
	PriorityMedium SuggestionPriority = "Medium"
	PriorityHigh   SuggestionPriority = "High"
)

func (p SuggestionPriority) String() string { return string(p) }

func (p SuggestionPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParseSuggestionPriority parses a priority name case-insensitively.
func ParseSuggestionPriority(s string) (SuggestionPriority, error) {
	for _, v := range []SuggestionPriority{PriorityLow, PriorityMedium, PriorityHigh} {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown suggestion priority %q: %w", s, ErrValidation)
}

// SuggestionType represents the category of corrective action.
type SuggestionType string

const (
	TypeEquipment   SuggestionType = "Equipment"
	TypeExercise    SuggestionType = "Exercise"
	TypeBehavioural SuggestionType = "Behavioural"
	TypeLifestyle   SuggestionType = "Lifestyle"
)

func (t SuggestionType) String() string { return string(t) }

func (t SuggestionType) IsValid() bool {
	switch t {
	case TypeEquipment, TypeExercise, TypeBehavioural, TypeLifestyle:
		return true
	}
	return false
}

// ParseSuggestionType parses a type name case-insensitively.
func ParseSuggestionType(s string) (SuggestionType, error) {
	for _, v := range []SuggestionType{TypeEquipment, TypeExercise, TypeBehavioural, TypeLifestyle} {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown suggestion type %q: %w", s, ErrValidation)
}

// SuggestionSource identifies where a suggestion originated.
type SuggestionSource string

const (
	SourceVida  SuggestionSource = "Vida"
	SourceAdmin SuggestionSource = "Admin"
)

func (s SuggestionSource) String() string { return string(s) }

func (s SuggestionSource) IsValid() bool {
	switch s {
	case SourceVida, SourceAdmin:
		return true
	}
	return false
}

// ParseSuggestionSource parses a source name case-insensitively.
func ParseSuggestionSource(s string) (SuggestionSource, error) {
	for _, v := range []SuggestionSource{SourceVida, SourceAdmin} {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown suggestion source %q: %w", s, ErrValidation)
}

// RiskLevel represents an employee's assessed health-and-safety risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

func (r RiskLevel) String() string { return string(r) }

func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// ParseRiskLevel parses a risk level name case-insensitively.
func ParseRiskLevel(s string) (RiskLevel, error) {
	for _, v := range []RiskLevel{RiskLow, RiskMedium, RiskHigh} {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown risk level %q: %w", s, ErrValidation)
}

// AuditAction represents the kind of entity change recorded in the audit log.
type AuditAction string

const (
	AuditActionAdded    AuditAction = "Added"
	AuditActionModified AuditAction = "Modified"
	AuditActionDeleted  AuditAction = "Deleted"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionAdded, AuditActionModified, AuditActionDeleted:
		return true
	}
	return false
}
