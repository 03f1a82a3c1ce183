package interfaces

import (
	"net/http"

	"github.com/google/uuid"
)

// ValidateIDPathParamMiddleware answers 404 for any {id} that is not a UUID.
// Such an id cannot name a stored record, so the store is never queried.
func ValidateIDPathParamMiddleware(respondError func(w http.ResponseWriter, status int, message string), notFoundMessage string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := uuid.Parse(r.PathValue("id")); err != nil {
				respondError(w, http.StatusNotFound, notFoundMessage)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
