package suggestion

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vidahq/suggestions-backend/internal/domain"
)

// MaxDescriptionLength caps suggestion descriptions.
const MaxDescriptionLength = 500

// Item holds the caller-facing shape of one suggestion write. Enum fields
// arrive as strings and are resolved during validation; an id makes the
// item an update, no id makes it a create.
type Item struct {
	ID               *uuid.UUID
	Description      string
	Source           string
	Type             string
	Status           string
	Priority         string
	Notes            *string
	EmployeeID       uuid.UUID
	CreatedByAdminID *int64
}

// parsedItem is an Item whose enum fields resolved to known values.
type parsedItem struct {
	Item
	source   domain.SuggestionSource
	typ      domain.SuggestionType
	status   domain.SuggestionStatus
	priority domain.SuggestionPriority
}

// parseItem checks every field rule and resolves the enums, collecting one
// FieldError per violated rule. The prefix (e.g. "items[3].") scopes field
// names for bulk commands.
func parseItem(in Item, prefix string) (parsedItem, []domain.FieldError) {
	var errs []domain.FieldError
	out := parsedItem{Item: in}

	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		errs = append(errs, domain.FieldError{Field: prefix + "description", Message: "required"})
	}
	if len(desc) > MaxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: prefix + "description", Message: fmt.Sprintf("max %d characters", MaxDescriptionLength)})
	}
	out.Description = desc

	if strings.TrimSpace(in.Source) == "" {
		errs = append(errs, domain.FieldError{Field: prefix + "source", Message: "required"})
	} else if v, err := domain.ParseSuggestionSource(in.Source); err != nil {
		errs = append(errs, domain.FieldError{Field: prefix + "source", Message: invalidEnum(in.Source)})
	} else {
		out.source = v
	}

	if strings.TrimSpace(in.Type) == "" {
		errs = append(errs, domain.FieldError{Field: prefix + "type", Message: "required"})
	} else if v, err := domain.ParseSuggestionType(in.Type); err != nil {
		errs = append(errs, domain.FieldError{Field: prefix + "type", Message: invalidEnum(in.Type)})
	} else {
		out.typ = v
	}

	if strings.TrimSpace(in.Status) == "" {
		errs = append(errs, domain.FieldError{Field: prefix + "status", Message: "required"})
	} else if v, err := domain.ParseSuggestionStatus(in.Status); err != nil {
		errs = append(errs, domain.FieldError{Field: prefix + "status", Message: invalidEnum(in.Status)})
	} else {
		out.status = v
	}

	if strings.TrimSpace(in.Priority) == "" {
		errs = append(errs, domain.FieldError{Field: prefix + "priority", Message: "required"})
	} else if v, err := domain.ParseSuggestionPriority(in.Priority); err != nil {
		errs = append(errs, domain.FieldError{Field: prefix + "priority", Message: invalidEnum(in.Priority)})
	} else {
		out.priority = v
	}

	if in.EmployeeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: prefix + "employeeId", Message: "required"})
	}

	return out, errs
}

func invalidEnum(value string) string {
	return fmt.Sprintf("InvalidEnum: %q is not a known value", value)
}

// ListInput holds filter and paging parameters for suggestion searches.
// Filter values are strings straight off the query string; values that do
// not parse to a known enum are ignored rather than rejected.
type ListInput struct {
	Status     string
	Type       string
	Priority   string
	Source     string
	EmployeeID *uuid.UUID
	Page       domain.Page
}

// filter resolves the parseable criteria into a SuggestionFilter.
func (in ListInput) filter() domain.SuggestionFilter {
	var f domain.SuggestionFilter
	if v, err := domain.ParseSuggestionStatus(in.Status); in.Status != "" && err == nil {
		f.Status = &v
	}
	if v, err := domain.ParseSuggestionType(in.Type); in.Type != "" && err == nil {
		f.Type = &v
	}
	if v, err := domain.ParseSuggestionPriority(in.Priority); in.Priority != "" && err == nil {
		f.Priority = &v
	}
	if v, err := domain.ParseSuggestionSource(in.Source); in.Source != "" && err == nil {
		f.Source = &v
	}
	f.EmployeeID = in.EmployeeID
	return f
}
