package middleware

import (
	"encoding/json"
	"net/http"

	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
)

// rejection is the body of a request stopped by a middleware.
type rejection struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// reject stops the request with a JSON error carrying the request id, so a
// client report can be matched with the logs.
func reject(w http.ResponseWriter, r *http.Request, status int, message string) {
	body, err := json.Marshal(rejection{Error: message, RequestID: wrap.GetRequestID(r.Context())})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
