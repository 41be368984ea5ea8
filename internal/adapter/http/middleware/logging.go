package middleware

import (
	"net/http"
	"time"
)

// Logging logs the outcome of every request. Server errors are logged as
// warnings, the rest at debug level.
func (m *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"bytes", rw.written,
			"duration", time.Since(start).String(),
		}
		if rw.statusCode >= http.StatusInternalServerError {
			m.log.Warn(r.Context(), "request failed", args...)
			return
		}
		m.log.Debug(r.Context(), "request completed", args...)
	})
}
