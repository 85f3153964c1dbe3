package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/signalhub/signalhub/internal/errs"
	"github.com/signalhub/signalhub/internal/model"
	"github.com/signalhub/signalhub/internal/repository"
)

// SignalService answers signal presence and comparison queries for an
// authenticated client.
type SignalService interface {
	// CheckReceived returns nil when the signal exists and belongs to the
	// client, ErrNotFound when absent and ErrForbidden when foreign.
	CheckReceived(ctx context.Context, clientID uuid.UUID, externalUUID string) error
	// Compare resolves two signals and returns their similarity percentage.
	Compare(ctx context.Context, clientID uuid.UUID, uuidA, uuidB string) (float64, error)
}

type SignalServiceImpl struct {
	signals repository.SignalRepository
	devices repository.DeviceRepository
}

// NewSignalService constructs SignalService with required repositories.
func NewSignalService(signals repository.SignalRepository, devices repository.DeviceRepository) *SignalServiceImpl {
	return &SignalServiceImpl{signals: signals, devices: devices}
}

// CheckReceived reports whether the signal arrived, gated on ownership.
func (s *SignalServiceImpl) CheckReceived(ctx context.Context, clientID uuid.UUID, externalUUID string) error {
	if externalUUID == "" {
		return errs.ErrNotFound
	}
	sig, err := s.signals.GetByExternalUUID(ctx, externalUUID)
	if err != nil {
		return err
	}
	return s.authorize(ctx, clientID, sig)
}

// Compare resolves both signals, checks ownership of each, and scores them.
// Missing signals surface before ownership failures, matching the read path
// of the presence check.
func (s *SignalServiceImpl) Compare(ctx context.Context, clientID uuid.UUID, uuidA, uuidB string) (float64, error) {
	a, err := s.signals.GetByExternalUUID(ctx, uuidA)
	if err != nil {
		return 0, err
	}
	b, err := s.signals.GetByExternalUUID(ctx, uuidB)
	if err != nil {
		return 0, err
	}
	if err := s.authorize(ctx, clientID, a); err != nil {
		return 0, err
	}
	if err := s.authorize(ctx, clientID, b); err != nil {
		return 0, err
	}
	return similarity(a.Payload, b.Payload), nil
}

// authorize walks Signal -> Device -> Client and rejects foreign signals.
func (s *SignalServiceImpl) authorize(ctx context.Context, clientID uuid.UUID, sig *model.Signal) error {
	dev, err := s.devices.GetByID(ctx, sig.DeviceID)
	if err != nil {
		return err
	}
	if dev.ClientID != clientID {
		return errs.ErrForbidden
	}
	return nil
}

// similarity scores two stored payloads: identical payloads score 100,
// everything else 0.
// TODO: calculate a real difference between the payloads.
func similarity(a, b string) float64 {
	if a == b {
		return 100
	}
	return 0
}
