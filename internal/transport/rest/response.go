package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vidahq/suggestions-backend/internal/domain"
)

// BaseResponse is the envelope every endpoint returns.
type BaseResponse struct {
	Data    any            `json:"data"`
	Errors  []ResponseItem `json:"errors"`
	Message string         `json:"message"`
	Success bool           `json:"success"`
}

// ResponseItem groups error messages under the field key they belong to.
type ResponseItem struct {
	Key      string   `json:"key"`
	Messages []string `json:"messages"`
}

// PagedResponse is the envelope for list endpoints.
type PagedResponse struct {
	BaseResponse
	PageNumber   int  `json:"pageNumber"`
	PageSize     int  `json:"pageSize"`
	TotalPages   int  `json:"totalPages"`
	TotalRecords int  `json:"totalRecords"`
	FirstPage    bool `json:"firstPage"`
	LastPage     bool `json:"lastPage"`
}

func okResponse(data any) BaseResponse {
	return BaseResponse{Data: data, Errors: []ResponseItem{}, Success: true}
}

func pagedResponse(data any, pageNumber, pageSize, totalPages, totalRecords int) PagedResponse {
	return PagedResponse{
		BaseResponse: okResponse(data),
		PageNumber:   pageNumber,
		PageSize:     pageSize,
		TotalPages:   totalPages,
		TotalRecords: totalRecords,
		FirstPage:    pageNumber <= 1,
		LastPage:     pageNumber >= totalPages,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeDomainError maps a domain error to the envelope and status code:
// validation errors become 400 with per-field messages, missing rows 404,
// conflicts 409, anything else a generic 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, BaseResponse{
			Errors:  groupFieldErrors(ve.Errors),
			Message: "validation failed",
		})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, BaseResponse{
			Errors:  []ResponseItem{},
			Message: "not found",
		})
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, BaseResponse{
			Errors:  []ResponseItem{},
			Message: "conflict",
		})
	default:
		log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusInternalServerError, BaseResponse{
			Errors:  []ResponseItem{},
			Message: "internal server error",
		})
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, BaseResponse{
		Errors:  []ResponseItem{},
		Message: message,
	})
}

// groupFieldErrors folds field errors into one item per key, preserving the
// order fields first appeared in.
func groupFieldErrors(errs []domain.FieldError) []ResponseItem {
	index := make(map[string]int, len(errs))
	items := make([]ResponseItem, 0, len(errs))
	for _, fe := range errs {
		i, ok := index[fe.Field]
		if !ok {
			i = len(items)
			index[fe.Field] = i
			items = append(items, ResponseItem{Key: fe.Field})
		}
		items[i].Messages = append(items[i].Messages, fe.Message)
	}
	return items
}
