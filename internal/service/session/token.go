package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
)

const issuer = "ride-analytics"

// Claims binds a session token to one dataset.
type Claims struct {
	DatasetID string `json:"dataset_id"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a session for datasetID.
func (s *TokenService) Issue(ctx context.Context, datasetID uuid.UUID) (*models.Session, error) {
	ctx = wrap.WithAction(ctx, "issue_session")
	if datasetID == uuid.Nil {
		return nil, wrap.Error(ctx, errors.New("dataset id is empty"))
	}

	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.ttl)
	sessionID := uuid.New()

	claims := Claims{
		DatasetID: datasetID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("sign session token: %w", err))
	}

	return &models.Session{
		ID:        sessionID.String(),
		DatasetID: datasetID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate parses token and returns the session it describes.
func (s *TokenService) Validate(ctx context.Context, token string) (*models.Session, error) {
	ctx = wrap.WithAction(ctx, "validate_session")
	if token == "" {
		return nil, wrap.Error(ctx, types.ErrInvalidSession)
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, wrap.Error(ctx, types.ErrInvalidSession)
	}

	datasetID, err := uuid.Parse(claims.DatasetID)
	if err != nil {
		return nil, wrap.Error(ctx, types.ErrInvalidSession)
	}

	return &models.Session{
		ID:        claims.ID,
		DatasetID: datasetID,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Authorize validates token and checks that it was issued for datasetID.
func (s *TokenService) Authorize(ctx context.Context, token string, datasetID uuid.UUID) (*models.Session, error) {
	sess, err := s.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess.DatasetID != datasetID {
		return nil, wrap.Error(wrap.WithAction(ctx, "authorize_session"), types.ErrSessionMismatch)
	}
	return sess, nil
}
