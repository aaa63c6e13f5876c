package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

type AuthService struct {
	verifier       ports.IdentityVerifier
	tokens         ports.SessionTokens
	userRepository ports.UserRepository
	now            Clock
}

func NewAuthService(verifier ports.IdentityVerifier, tokens ports.SessionTokens, userRepository ports.UserRepository) *AuthService {
	return &AuthService{
		verifier:       verifier,
		tokens:         tokens,
		userRepository: userRepository,
		now:            time.Now,
	}
}

func (s *AuthService) WithClock(now Clock) *AuthService {
	s.now = now
	return s
}

func (s *AuthService) Signup(ctx context.Context, idToken, username string) (ports.Session, error) {
	identity, err := s.verify(ctx, idToken)
	if err != nil {
		return ports.Session{}, err
	}

	username = strings.TrimSpace(username)
	if username == "" {
		username = identity.Name
	}
	if username == "" {
		username, _, _ = strings.Cut(identity.Email, "@")
	}

	user, err := s.userRepository.Create(ctx, domain.User{
		Email:     identity.Email,
		Username:  username,
		CreatedAt: s.now(),
	})
	if err != nil {
		return ports.Session{}, err
	}

	return s.session(user)
}

func (s *AuthService) Login(ctx context.Context, idToken string) (ports.Session, error) {
	identity, err := s.verify(ctx, idToken)
	if err != nil {
		return ports.Session{}, err
	}

	user, err := s.userRepository.GetByEmail(ctx, identity.Email)
	if err != nil {
		return ports.Session{}, err
	}

	return s.session(user)
}

func (s *AuthService) verify(ctx context.Context, idToken string) (ports.Identity, error) {
	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidIdentityToken) {
			return ports.Identity{}, err
		}
		return ports.Identity{}, fmt.Errorf("%w: %v", domain.ErrInvalidIdentityToken, err)
	}

	identity.Email = domain.NormalizeEmail(identity.Email)
	if identity.Email == "" {
		return ports.Identity{}, domain.ErrInvalidIdentityToken
	}
	return identity, nil
}

func (s *AuthService) session(user domain.User) (ports.Session, error) {
	token, expiresAt, err := s.tokens.Issue(user.Email)
	if err != nil {
		return ports.Session{}, fmt.Errorf("issue session token: %w", err)
	}
	return ports.Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

var _ ports.AuthService = (*AuthService)(nil)
