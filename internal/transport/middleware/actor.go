package middleware

import (
	"net/http"
	"strconv"

	"github.com/vidahq/suggestions-backend/pkg/ctxutil"
)

// ActorHeader names the header carrying the acting admin's id.
const ActorHeader = "X-Admin-Id"

// Actor threads the acting admin's id from the request header into the
// context so mutations can attribute their audit rows. A missing or
// malformed header leaves the request unattributed rather than rejecting it.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(ActorHeader)
		if raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				r = r.WithContext(ctxutil.WithActorID(r.Context(), id))
			}
		}
		next.ServeHTTP(w, r)
	})
}
