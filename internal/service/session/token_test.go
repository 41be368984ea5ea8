package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	id := uuid.New()

	sess, err := svc.Issue(context.Background(), id)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.NotEmpty(t, sess.ID)

	got, err := svc.Validate(context.Background(), sess.Token)
	require.NoError(t, err)
	assert.Equal(t, id, got.DatasetID)
	assert.Equal(t, sess.ID, got.ID)
}

func TestTokenService_Authorize(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	id := uuid.New()
	sess, err := svc.Issue(context.Background(), id)
	require.NoError(t, err)

	_, err = svc.Authorize(context.Background(), sess.Token, id)
	require.NoError(t, err)

	_, err = svc.Authorize(context.Background(), sess.Token, uuid.New())
	assert.ErrorIs(t, err, types.ErrSessionMismatch)
}

func TestTokenService_RejectsInvalidTokens(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	sess, err := svc.Issue(context.Background(), uuid.New())
	require.NoError(t, err)

	other := NewTokenService("other-secret", time.Hour)

	expired := NewTokenService("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue(context.Background(), uuid.New())
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{DatasetID: uuid.NewString()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		svc   *TokenService
		token string
	}{
		{name: "empty", svc: svc, token: ""},
		{name: "garbage", svc: svc, token: "not-a-token"},
		{name: "wrong secret", svc: other, token: sess.Token},
		{name: "expired", svc: svc, token: old.Token},
		{name: "alg none", svc: svc, token: none},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.Validate(context.Background(), tt.token)
			assert.ErrorIs(t, err, types.ErrInvalidSession)
		})
	}
}

func TestTokenService_IssueRejectsNilID(t *testing.T) {
	_, err := NewTokenService("secret", time.Hour).Issue(context.Background(), uuid.Nil)
	assert.Error(t, err)
}
