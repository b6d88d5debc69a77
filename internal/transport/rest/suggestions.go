// Package rest exposes the HTTP surface: suggestion and employee endpoints
// wrapped in the {data, errors, message, success} envelope, plus health
// probes.
package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vidahq/suggestions-backend/internal/domain"
	"github.com/vidahq/suggestions-backend/internal/service/suggestion"
	"github.com/vidahq/suggestions-backend/pkg/ctxutil"
)

type suggestionService interface {
	Upsert(ctx context.Context, in suggestion.Item) (uuid.UUID, error)
	BulkUpsert(ctx context.Context, items []suggestion.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, in suggestion.ListInput) (*suggestion.ListResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SuggestionWithEmployee, error)
}

// SuggestionHandler serves the /suggestions endpoints.
type SuggestionHandler struct {
	suggestions suggestionService
	log         *slog.Logger
}

// NewSuggestionHandler creates a SuggestionHandler.
func NewSuggestionHandler(suggestions suggestionService, logger *slog.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		suggestions: suggestions,
		log:         logger.With("handler", "suggestions"),
	}
}

// suggestionPayload is the wire shape of one suggestion write.
type suggestionPayload struct {
	Description string  `json:"description"`
	Source      string  `json:"source"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	Notes       *string `json:"notes"`
	EmployeeID  string  `json:"employeeId"`
}

// suggestionDTO is the wire shape of one suggestion read.
type suggestionDTO struct {
	ID            uuid.UUID  `json:"id"`
	Description   string     `json:"description"`
	Source        string     `json:"source"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	Notes         *string    `json:"notes"`
	EmployeeID    uuid.UUID  `json:"employeeId"`
	EmployeeName  string     `json:"employeeName"`
	DepartmentID  int64      `json:"departmentId"`
	CreatedBy     *string    `json:"createdBy"`
	DateCreated   time.Time  `json:"dateCreated"`
	DateUpdated   *time.Time `json:"dateUpdated"`
	DateCompleted *time.Time `json:"dateCompleted"`
}

func toSuggestionDTO(s domain.SuggestionWithEmployee) suggestionDTO {
	return suggestionDTO{
		ID:            s.ID,
		Description:   s.Description,
		Source:        s.Source.String(),
		Type:          s.Type.String(),
		Status:        s.Status.String(),
		Priority:      s.Priority.String(),
		Notes:         s.Notes,
		EmployeeID:    s.EmployeeID,
		EmployeeName:  s.EmployeeName,
		DepartmentID:  s.DepartmentID,
		CreatedBy:     s.CreatedBy,
		DateCreated:   s.DateCreated,
		DateUpdated:   s.DateUpdated,
		DateCompleted: s.DateCompleted,
	}
}

func toSuggestionDTOs(items []domain.SuggestionWithEmployee) []suggestionDTO {
	out := make([]suggestionDTO, 0, len(items))
	for _, s := range items {
		out = append(out, toSuggestionDTO(s))
	}
	return out
}

// toItem converts a payload into a service item, attributing the write to
// the acting admin from context.
func (p suggestionPayload) toItem(ctx context.Context, id *uuid.UUID) suggestion.Item {
	item := suggestion.Item{
		ID:          id,
		Description: p.Description,
		Source:      p.Source,
		Type:        p.Type,
		Status:      p.Status,
		Priority:    p.Priority,
		Notes:       p.Notes,
	}
	if employeeID, err := uuid.Parse(p.EmployeeID); err == nil {
		item.EmployeeID = employeeID
	}
	if actorID, ok := ctxutil.ActorIDFromCtx(ctx); ok {
		item.CreatedByAdminID = &actorID
	}
	return item
}

// Create handles POST /suggestions.
func (h *SuggestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload suggestionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	id, err := h.suggestions.Upsert(r.Context(), payload.toItem(r.Context(), nil))
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, okResponse(map[string]any{"id": id}))
}

// Update handles POST /suggestions/{id}.
func (h *SuggestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var payload suggestionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	gotID, err := h.suggestions.Upsert(r.Context(), payload.toItem(r.Context(), &id))
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, okResponse(map[string]any{"id": gotID}))
}

// Bulk handles POST /suggestions/bulk. The body is {items: [...]} and may
// mix creates (no id) and updates (with id); the whole batch lands or none
// of it does.
func (h *SuggestionHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Items []struct {
			suggestionPayload
			ID *uuid.UUID `json:"id"`
		} `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	items := make([]suggestion.Item, 0, len(payload.Items))
	for _, p := range payload.Items {
		items = append(items, p.toItem(r.Context(), p.ID))
	}

	if err := h.suggestions.BulkUpsert(r.Context(), items); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /suggestions. Filter values that fail to parse are
// ignored rather than rejected.
func (h *SuggestionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	in := suggestion.ListInput{
		Status:   q.Get("status"),
		Type:     q.Get("type"),
		Priority: q.Get("priority"),
		Source:   q.Get("source"),
		Page:     pageFromQuery(r),
	}
	if employeeID, err := uuid.Parse(q.Get("employeeId")); err == nil {
		in.EmployeeID = &employeeID
	}

	res, err := h.suggestions.List(r.Context(), in)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse(
		toSuggestionDTOs(res.Items),
		res.PageNumber, res.PageSize, res.TotalPages, res.TotalRecords,
	))
}

// Get handles GET /suggestions/{id}.
func (h *SuggestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s, err := h.suggestions.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, okResponse(toSuggestionDTO(*s)))
}

// Delete handles DELETE /suggestions/{id}.
func (h *SuggestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.suggestions.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, okResponse(map[string]any{"id": id}))
}
