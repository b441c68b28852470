// Package google verifies Google Sign-In ID tokens.
package google

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/idtoken"
)

var ErrInvalidToken = errors.New("invalid google token")

// Identity is the subset of ID token claims used to find or create an
// account.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// DisplayName returns the token's name, falling back to the local part of
// the email address.
func (i Identity) DisplayName() string {
	if name := strings.TrimSpace(i.Name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(i.Email, "@")
	return local
}

type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// IDTokenVerifier checks tokens against Google's published keys for the
// configured OAuth client id.
type IDTokenVerifier struct {
	clientID string
	validate validateFunc
}

func NewIDTokenVerifier(clientID string) *IDTokenVerifier {
	return &IDTokenVerifier{clientID: clientID, validate: idtoken.Validate}
}

func (v *IDTokenVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	payload, err := v.validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: token has no email claim", ErrInvalidToken)
	}
	if !emailVerified(payload.Claims["email_verified"]) {
		return nil, fmt.Errorf("%w: email not verified", ErrInvalidToken)
	}
	name, _ := payload.Claims["name"].(string)

	return &Identity{
		Subject: payload.Subject,
		Email:   strings.ToLower(email),
		Name:    name,
	}, nil
}

func emailVerified(claim any) bool {
	switch v := claim.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}
