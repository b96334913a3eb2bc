// Package auth resolves bearer tokens to user identities. Tokens are issued
// elsewhere; this package only validates them.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrUnauthenticated means the token is missing, unknown, expired or malformed.
var ErrUnauthenticated = errors.New("unauthenticated")

// Authenticator maps a bearer token to the user it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// SessionValidator is implemented by services.SessionStore.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (uuid.UUID, bool, error)
}

type sessionAuthenticator struct {
	sessions SessionValidator
}

// NewSessionAuthenticator validates opaque tokens against the session store.
func NewSessionAuthenticator(sessions SessionValidator) Authenticator {
	return &sessionAuthenticator{sessions: sessions}
}

func (a *sessionAuthenticator) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	userID, ok, err := a.sessions.ValidateSession(ctx, token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("validate session: %w", err)
	}
	if !ok {
		return uuid.Nil, ErrUnauthenticated
	}
	return userID, nil
}

type jwtAuthenticator struct {
	jwt *JWTManager
}

// NewJWTAuthenticator validates signed access tokens.
func NewJWTAuthenticator(m *JWTManager) Authenticator {
	return &jwtAuthenticator{jwt: m}
}

func (a *jwtAuthenticator) Authenticate(_ context.Context, token string) (uuid.UUID, error) {
	userID, err := a.jwt.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return userID, nil
}
