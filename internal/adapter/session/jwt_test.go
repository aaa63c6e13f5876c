package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskease/internal/core/domain"
)

func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestJWTTokens_IssueAndParse(t *testing.T) {
	issuedAt := time.Date(2024, 6, 4, 10, 0, 0, 0, time.UTC)
	tokens, err := NewJWTTokens("secret", time.Hour)
	require.NoError(t, err)
	tokens.WithClock(fixedTime(issuedAt))

	token, expiresAt, err := tokens.Issue(" Dev@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(time.Hour), expiresAt)

	email, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", email)
}

func TestJWTTokens_ParseRejects(t *testing.T) {
	issuedAt := time.Date(2024, 6, 4, 10, 0, 0, 0, time.UTC)
	tokens, err := NewJWTTokens("secret", time.Hour)
	require.NoError(t, err)
	tokens.WithClock(fixedTime(issuedAt))

	valid, _, err := tokens.Issue("dev@example.com")
	require.NoError(t, err)

	other, err := NewJWTTokens("another-secret", time.Hour)
	require.NoError(t, err)
	forged, _, err := other.WithClock(fixedTime(issuedAt)).Issue("dev@example.com")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   "dev@example.com",
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		now   time.Time
	}{
		{name: "expired", token: valid, now: issuedAt.Add(2 * time.Hour)},
		{name: "wrong secret", token: forged, now: issuedAt},
		{name: "unsigned", token: none, now: issuedAt},
		{name: "garbage", token: "not-a-token", now: issuedAt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens.WithClock(fixedTime(tt.now))

			_, err := tokens.Parse(tt.token)
			require.ErrorIs(t, err, domain.ErrInvalidSessionToken)
		})
	}
}

func TestNewJWTTokens_Validation(t *testing.T) {
	_, err := NewJWTTokens("", time.Hour)
	require.Error(t, err)

	_, err = NewJWTTokens("secret", 0)
	require.Error(t, err)
}
