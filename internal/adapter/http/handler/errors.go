package handler

import (
	"net/http"

	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
)

// errorResponse writes {"error": message, "request_id": ...}.
func errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	env := envelope{"error": message}
	if id := wrap.GetRequestID(r.Context()); id != "" {
		env["request_id"] = id
	}

	if err := writeJSON(w, status, env, nil); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// failedValidationResponse reports field errors with 422.
func failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	errorResponse(w, r, http.StatusUnprocessableEntity, errors)
}

// serviceErrorResponse maps a service error onto its status code.
func serviceErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, GetCode(err), clientMessage(err))
}
