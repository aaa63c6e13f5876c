package ports

import (
	"context"
	"time"

	"taskease/internal/core/domain"
)

type Identity struct {
	Email string
	Name  string
}

// IdentityVerifier checks a token issued by the external identity provider.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (Identity, error)
}

type SessionTokens interface {
	Issue(email string) (token string, expiresAt time.Time, err error)
	Parse(token string) (email string, err error)
}

type Session struct {
	User      domain.User
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Signup(ctx context.Context, idToken, username string) (Session, error)
	Login(ctx context.Context, idToken string) (Session, error)
}
