// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/signalhub/signalhub/internal/model"
)

// ClientRepository provides access to registered API clients.
type ClientRepository interface {
	// GetByToken loads the client owning the given access token.
	GetByToken(ctx context.Context, token string) (*model.Client, error)
	// Create inserts a new client (provisioning path).
	Create(ctx context.Context, c *model.Client) error
}
