package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/signalhub/signalhub/internal/errs"
	"github.com/signalhub/signalhub/internal/model"
)

// DeviceRepo implements DeviceRepository using PostgreSQL.
type DeviceRepo struct{ db *DB }

// NewDeviceRepo constructs a device repository.
func NewDeviceRepo(db *DB) *DeviceRepo { return &DeviceRepo{db: db} }

// GetByExternalID selects a device by its external routing key.
func (r *DeviceRepo) GetByExternalID(ctx context.Context, externalID string) (*model.Device, error) {
	const q = `
SELECT id, client_id, external_id, ip_address, created_at
FROM devices WHERE external_id=$1`
	return r.scanOne(r.db.Pool.QueryRow(ctx, q, externalID))
}

// GetByID selects a device by primary key.
func (r *DeviceRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Device, error) {
	const q = `
SELECT id, client_id, external_id, ip_address, created_at
FROM devices WHERE id=$1`
	return r.scanOne(r.db.Pool.QueryRow(ctx, q, id))
}

// ListByClient returns all devices owned by the client, ordered by external id.
func (r *DeviceRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Device, error) {
	const q = `
SELECT id, client_id, external_id, ip_address, created_at
FROM devices
WHERE client_id=$1
ORDER BY external_id ASC`
	rows, err := r.db.Pool.Query(ctx, q, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Device
	for rows.Next() {
		var d model.Device
		if err = rows.Scan(&d.ID, &d.ClientID, &d.ExternalID, &d.IPAddress, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Create inserts a new device row.
func (r *DeviceRepo) Create(ctx context.Context, d *model.Device) error {
	const q = `
INSERT INTO devices (id, client_id, external_id, ip_address)
VALUES ($1, $2, $3, $4)`
	_, err := r.db.Pool.Exec(ctx, q, d.ID, d.ClientID, d.ExternalID, d.IPAddress)
	if isUniqueViolation(err) {
		return errs.ErrDuplicate
	}
	return err
}

func (r *DeviceRepo) scanOne(row pgx.Row) (*model.Device, error) {
	var d model.Device
	if err := row.Scan(&d.ID, &d.ClientID, &d.ExternalID, &d.IPAddress, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}
