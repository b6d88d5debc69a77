package rest

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/vidahq/suggestions-backend/internal/domain"
)

// pathID parses the {id} path segment; a malformed id answers 400.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// pageFromQuery reads pageNumber/pageSize leniently: unparseable values
// fall back to defaults during normalization.
func pageFromQuery(r *http.Request) domain.Page {
	var page domain.Page
	if n, err := strconv.Atoi(r.URL.Query().Get("pageNumber")); err == nil {
		page.Number = n
	}
	if s, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil {
		page.Size = s
	}
	return page
}
