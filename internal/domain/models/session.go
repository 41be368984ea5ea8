package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session binds a session token to the dataset it was issued for.
type Session struct {
	ID        string    `json:"session_id"`
	DatasetID uuid.UUID `json:"dataset_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionCtxKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// SessionFromContext returns the session stored in ctx, or nil.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionCtxKey{}).(*Session)
	return s
}
