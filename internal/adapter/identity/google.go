package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/idtoken"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

// PayloadValidator checks a Google ID token for an audience.
type PayloadValidator interface {
	Validate(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

type validatorFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

func (f validatorFunc) Validate(ctx context.Context, idToken, audience string) (*idtoken.Payload, error) {
	return f(ctx, idToken, audience)
}

// GoogleVerifier accepts Google ID tokens issued for clientID whose email is verified.
type GoogleVerifier struct {
	clientID  string
	validator PayloadValidator
}

func NewGoogleVerifier(clientID string) (*GoogleVerifier, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, errors.New("google client id is empty")
	}
	return &GoogleVerifier{clientID: clientID, validator: validatorFunc(idtoken.Validate)}, nil
}

func (v *GoogleVerifier) WithValidator(validator PayloadValidator) *GoogleVerifier {
	v.validator = validator
	return v
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (ports.Identity, error) {
	if strings.TrimSpace(token) == "" {
		return ports.Identity{}, domain.ErrInvalidIdentityToken
	}

	payload, err := v.validator.Validate(ctx, token, v.clientID)
	if err != nil {
		return ports.Identity{}, fmt.Errorf("%w: %v", domain.ErrInvalidIdentityToken, err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return ports.Identity{}, fmt.Errorf("%w: missing email claim", domain.ErrInvalidIdentityToken)
	}
	if !emailVerified(payload.Claims["email_verified"]) {
		return ports.Identity{}, fmt.Errorf("%w: email %s is not verified", domain.ErrInvalidIdentityToken, email)
	}

	name, _ := payload.Claims["name"].(string)
	return ports.Identity{Email: domain.NormalizeEmail(email), Name: strings.TrimSpace(name)}, nil
}

// Google sends email_verified as a bool, older tokens as a string.
func emailVerified(claim any) bool {
	switch v := claim.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}

var _ ports.IdentityVerifier = (*GoogleVerifier)(nil)
