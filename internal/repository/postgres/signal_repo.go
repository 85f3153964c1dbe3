package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/signalhub/signalhub/internal/errs"
	"github.com/signalhub/signalhub/internal/model"
)

// SignalRepo implements SignalRepository using PostgreSQL.
type SignalRepo struct{ db *DB }

// NewSignalRepo constructs a signal repository.
func NewSignalRepo(db *DB) *SignalRepo { return &SignalRepo{db: db} }

// Insert stores a detection event. The upstream channel delivers at least
// once, so a redelivered event hits the (device_id, external_uuid) unique
// index and stores nothing; that case reports created=false with no error.
func (r *SignalRepo) Insert(ctx context.Context, s *model.Signal) (bool, error) {
	const q = `
INSERT INTO signals (id, device_id, external_uuid, payload)
VALUES ($1, $2, $3, $4)
ON CONFLICT (device_id, external_uuid) DO NOTHING`
	tag, err := r.db.Pool.Exec(ctx, q, s.ID, s.DeviceID, s.ExternalUUID, s.Payload)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// GetByExternalUUID selects a signal by its external event identifier.
func (r *SignalRepo) GetByExternalUUID(ctx context.Context, externalUUID string) (*model.Signal, error) {
	const q = `
SELECT id, device_id, external_uuid, payload, created_at
FROM signals WHERE external_uuid=$1`
	row := r.db.Pool.QueryRow(ctx, q, externalUUID)
	var s model.Signal
	if err := row.Scan(&s.ID, &s.DeviceID, &s.ExternalUUID, &s.Payload, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
