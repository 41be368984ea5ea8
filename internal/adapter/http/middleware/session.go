package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
)

// SessionCookie carries the session token of browser clients.
const SessionCookie = "ride_session"

// RequireSession checks that the request carries a session token issued for
// the {dataset_id} path value and injects the session into the context.
func (m *Middleware) RequireSession(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		datasetID, err := uuid.Parse(r.PathValue("dataset_id"))
		if err != nil {
			reject(w, r, http.StatusBadRequest, "invalid dataset id format")
			return
		}
		ctx = wrap.WithDatasetID(ctx, datasetID.String())

		token, err := TokenFromRequest(r)
		if err != nil {
			reject(w, r, http.StatusUnauthorized, err.Error())
			return
		}

		sess, err := m.sessions.Authorize(ctx, token, datasetID)
		if err != nil {
			m.log.Warn(wrap.ErrorCtx(ctx, err), "session rejected", "error", err.Error())
			if errors.Is(err, types.ErrSessionMismatch) {
				reject(w, r, http.StatusForbidden, types.ErrSessionMismatch.Error())
				return
			}
			reject(w, r, http.StatusUnauthorized, types.ErrInvalidSession.Error())
			return
		}

		ctx = wrap.WithSessionID(ctx, sess.ID)
		next.ServeHTTP(w, r.WithContext(models.WithSession(ctx, sess)))
	})
}

// TokenFromRequest reads the session token from the Authorization header,
// the session cookie or the token query parameter, in that order.
func TokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		return extractBearerToken(header)
	}
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value, nil
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}
	return "", errors.New("session token required")
}

// --- header parser ---
func extractBearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid Authorization header format")
	}
	return parts[1], nil
}
