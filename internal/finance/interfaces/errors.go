package interfaces

import (
	"net/http"

	financeErrors "github.com/sebuszqo/SeasonLedger/internal/finance/errors"
	"github.com/sebuszqo/SeasonLedger/internal/log"
)

type respondJSONFunc func(w http.ResponseWriter, status int, payload interface{})
type respondErrorFunc func(w http.ResponseWriter, status int, message string)

// respondServiceError maps a service error onto a status code. Causes of 500s
// are logged and never sent to the client.
func respondServiceError(w http.ResponseWriter, r *http.Request, respondError respondErrorFunc, component, operation string, err error, notFoundMessage, failureMessage string) {
	switch {
	case financeErrors.IsValidationError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case financeErrors.IsNotFound(err):
		respondError(w, http.StatusNotFound, notFoundMessage)
	default:
		logger := log.FromContext(r.Context()).WithComponent(component)
		args := []any{
			log.FieldOperation, operation,
			log.FieldError, err,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
		}
		if id := r.PathValue("id"); id != "" {
			args = append(args, log.FieldEntityID, id)
		}
		logger.ErrorContext(r.Context(), failureMessage, args...)
		respondError(w, http.StatusInternalServerError, failureMessage)
	}
}

func mustHaveDependencies(service any, respondJSON respondJSONFunc, respondError respondErrorFunc) {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
}
