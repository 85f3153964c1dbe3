package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/signalhub/signalhub/internal/model"
	"github.com/signalhub/signalhub/internal/repository"
)

// DeviceService lists devices for query endpoints.
type DeviceService interface {
	// ListForClient returns every device owned by the client.
	ListForClient(ctx context.Context, clientID uuid.UUID) ([]model.Device, error)
}

type DeviceServiceImpl struct {
	devices repository.DeviceRepository
}

// NewDeviceService constructs DeviceService.
func NewDeviceService(devices repository.DeviceRepository) *DeviceServiceImpl {
	return &DeviceServiceImpl{devices: devices}
}

// ListForClient delegates to the repository after basic validation.
func (s *DeviceServiceImpl) ListForClient(ctx context.Context, clientID uuid.UUID) ([]model.Device, error) {
	if clientID == uuid.Nil {
		return nil, errors.New("validation: empty clientID")
	}
	return s.devices.ListByClient(ctx, clientID)
}
