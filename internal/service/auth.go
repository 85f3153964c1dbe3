// Package service contains application services for authentication, signals and devices.
package service

import (
	"context"

	"github.com/signalhub/signalhub/internal/errs"
	"github.com/signalhub/signalhub/internal/model"
	"github.com/signalhub/signalhub/internal/repository"
)

// AuthService resolves access tokens to clients. It is the only layer that
// ever sees tokens; everything below works with the resolved client.
type AuthService interface {
	// Authenticate returns the client owning the token, or ErrUnauthorized.
	Authenticate(ctx context.Context, token string) (*model.Client, error)
}

type AuthServiceImpl struct {
	clients repository.ClientRepository
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(clients repository.ClientRepository) *AuthServiceImpl {
	return &AuthServiceImpl{clients: clients}
}

// Authenticate looks up the client by its exact token. An empty or unknown
// token maps to ErrUnauthorized; lookup errors are masked the same way so the
// boundary never reveals store detail to unauthenticated callers.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, token string) (*model.Client, error) {
	if token == "" {
		return nil, errs.ErrUnauthorized
	}
	c, err := s.clients.GetByToken(ctx, token)
	if err != nil {
		return nil, errs.ErrUnauthorized
	}
	return c, nil
}
