package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/signalhub/signalhub/internal/model"
)

// DeviceRepository provides access to registered devices.
type DeviceRepository interface {
	// GetByExternalID loads a device by its external routing key.
	GetByExternalID(ctx context.Context, externalID string) (*model.Device, error)
	// GetByID loads a device by primary key.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Device, error)
	// ListByClient returns all devices owned by a client.
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Device, error)
	// Create inserts a new device (provisioning path).
	Create(ctx context.Context, d *model.Device) error
}
