// Package model defines domain entities used by services, repositories and the ingestion loop.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Client is a tenant consuming the API, identified by its bearer access token.
type Client struct {
	ID          uuid.UUID
	Name        string // unique
	AccessToken string // opaque token, unique, matched by exact lookup
	CreatedAt   time.Time
}

// Device is a signal source owned by exactly one client. ExternalID is the
// routing key devices publish under and is unique across the whole system.
type Device struct {
	ID         uuid.UUID
	ClientID   uuid.UUID // FK -> clients.id
	ExternalID string    // unique
	IPAddress  string
	CreatedAt  time.Time
}

// Signal is one recorded detection event. ExternalUUID identifies the logical
// event per device; the payload is kept as serialized text and never parsed
// by the server.
type Signal struct {
	ID           uuid.UUID
	DeviceID     uuid.UUID // FK -> devices.id
	ExternalUUID string
	Payload      string
	CreatedAt    time.Time
}
