package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

const issuer = "taskease"

// JWTTokens issues HS256 session tokens whose subject is the user's email.
type JWTTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTTokens(secret string, ttl time.Duration) (*JWTTokens, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt ttl must be positive, got %s", ttl)
	}
	return &JWTTokens{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (t *JWTTokens) WithClock(now func() time.Time) *JWTTokens {
	t.now = now
	return t
}

func (t *JWTTokens) Issue(email string) (string, time.Time, error) {
	issuedAt := t.now()
	expiresAt := issuedAt.Add(t.ttl)

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   domain.NormalizeEmail(email),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (t *JWTTokens) Parse(token string) (string, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidSessionToken, err)
	}

	email := domain.NormalizeEmail(claims.Subject)
	if email == "" {
		return "", domain.ErrInvalidSessionToken
	}
	return email, nil
}

var _ ports.SessionTokens = (*JWTTokens)(nil)
