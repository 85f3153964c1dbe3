package repository

import (
	"context"

	"github.com/signalhub/signalhub/internal/model"
)

// SignalRepository records and looks up detection events.
type SignalRepository interface {
	// Insert stores a signal. It must be safe under duplicate deliveries:
	// a second insert with the same (device, external UUID) pair stores
	// nothing and reports created=false.
	Insert(ctx context.Context, s *model.Signal) (created bool, err error)
	// GetByExternalUUID loads a signal by its external event identifier.
	GetByExternalUUID(ctx context.Context, externalUUID string) (*model.Signal, error)
}
