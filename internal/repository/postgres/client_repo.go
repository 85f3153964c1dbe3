package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/signalhub/signalhub/internal/errs"
	"github.com/signalhub/signalhub/internal/model"
)

// ClientRepo implements ClientRepository using PostgreSQL.
type ClientRepo struct{ db *DB }

// NewClientRepo constructs a client repository.
func NewClientRepo(db *DB) *ClientRepo { return &ClientRepo{db: db} }

// GetByToken selects the client owning the given access token.
func (r *ClientRepo) GetByToken(ctx context.Context, token string) (*model.Client, error) {
	const q = `
SELECT id, name, access_token, created_at
FROM clients WHERE access_token=$1`
	row := r.db.Pool.QueryRow(ctx, q, token)
	var c model.Client
	if err := row.Scan(&c.ID, &c.Name, &c.AccessToken, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a new client row.
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
	const q = `
INSERT INTO clients (id, name, access_token)
VALUES ($1, $2, $3)`
	_, err := r.db.Pool.Exec(ctx, q, c.ID, c.Name, c.AccessToken)
	if isUniqueViolation(err) {
		return errs.ErrDuplicate
	}
	return err
}
