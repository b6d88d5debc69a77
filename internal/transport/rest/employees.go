package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vidahq/suggestions-backend/internal/domain"
	"github.com/vidahq/suggestions-backend/internal/service/employee"
)

type employeeService interface {
	List(ctx context.Context, in employee.ListInput) (*employee.ListResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.EmployeeWithDetails, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EmployeeHandler serves the /employees endpoints.
type EmployeeHandler struct {
	employees employeeService
	log       *slog.Logger
}

// NewEmployeeHandler creates an EmployeeHandler.
func NewEmployeeHandler(employees employeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employees: employees,
		log:       logger.With("handler", "employees"),
	}
}

// employeeDTO is the wire shape of one employee with its suggestions.
type employeeDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	DepartmentID int64           `json:"departmentId"`
	Department   string          `json:"department"`
	RiskLevel    string          `json:"riskLevel"`
	DateCreated  time.Time       `json:"dateCreated"`
	DateUpdated  *time.Time      `json:"dateUpdated"`
	Suggestions  []suggestionDTO `json:"suggestions"`
}

func toEmployeeDTO(e domain.EmployeeWithDetails) employeeDTO {
	return employeeDTO{
		ID:           e.ID,
		Name:         e.Name,
		DepartmentID: e.DepartmentID,
		Department:   e.DepartmentName,
		RiskLevel:    e.RiskLevel.String(),
		DateCreated:  e.DateCreated,
		DateUpdated:  e.DateUpdated,
		Suggestions:  toSuggestionDTOs(e.Suggestions),
	}
}

// List handles GET /employees.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	in := employee.ListInput{Page: pageFromQuery(r)}
	if name := q.Get("name"); name != "" {
		in.Name = &name
	}
	if department := q.Get("department"); department != "" {
		in.Department = &department
	}
	if employeeID, err := uuid.Parse(q.Get("employeeId")); err == nil {
		in.EmployeeID = &employeeID
	}

	res, err := h.employees.List(r.Context(), in)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	items := make([]employeeDTO, 0, len(res.Items))
	for _, e := range res.Items {
		items = append(items, toEmployeeDTO(e))
	}

	writeJSON(w, http.StatusOK, pagedResponse(
		items,
		res.PageNumber, res.PageSize, res.TotalPages, res.TotalRecords,
	))
}

// Get handles GET /employees/{id}.
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	e, err := h.employees.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, okResponse(toEmployeeDTO(*e)))
}

// Delete handles DELETE /employees/{id}. The employee's suggestions go with
// it.
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.employees.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, okResponse(map[string]any{"id": id}))
}
