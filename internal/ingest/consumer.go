// Package ingest implements the signal ingestion loop: a long-running
// consumer that turns messages from the subscription channel into stored
// signals, with explicit per-message acknowledgment.
package ingest

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/signalhub/signalhub/internal/errs"
	"github.com/signalhub/signalhub/internal/model"
	"github.com/signalhub/signalhub/internal/repository"
)

// AttrDeviceID is the message attribute carrying the device routing key.
const AttrDeviceID = "deviceId"

// Message is a single delivery from the subscription channel.
type Message interface {
	// Attribute returns a metadata value, or "" when absent.
	Attribute(key string) string
	// Body returns the raw message payload.
	Body() []byte
	// Ack marks the message consumed. It must be called exactly once per
	// terminal outcome; a message that is never acked is redelivered.
	Ack()
}

// Source is a subscription channel delivering messages until ctx is done.
// Handlers may be invoked concurrently.
type Source interface {
	Subscribe(ctx context.Context, handler func(Message)) error
}

// envelope is the expected structure of a message body.
type envelope struct {
	UUID   string          `json:"uuid"`
	Signal json.RawMessage `json:"signal"`
}

// Consumer resolves messages to devices and records signals. It talks to the
// store through the same repositories the request handlers use; the store's
// uniqueness constraint, not in-process locking, dedups parallel redelivery.
type Consumer struct {
	devices repository.DeviceRepository
	signals repository.SignalRepository
	log     *zap.Logger
}

// NewConsumer constructs a Consumer.
func NewConsumer(devices repository.DeviceRepository, signals repository.SignalRepository, log *zap.Logger) *Consumer {
	return &Consumer{devices: devices, signals: signals, log: log}
}

// Run drains the source until ctx is cancelled. It only returns early when
// the subscription itself cannot be established.
func (c *Consumer) Run(ctx context.Context, src Source) error {
	return src.Subscribe(ctx, func(m Message) { c.handle(ctx, m) })
}

// handle processes one message to a terminal outcome.
//
// Malformed and unroutable messages are acked and dropped: redelivering them
// can never succeed. Any other store failure leaves the message unacked so
// the channel redelivers it once the transient condition clears. The loop
// survives every per-message failure.
func (c *Consumer) handle(ctx context.Context, msg Message) {
	deviceID := msg.Attribute(AttrDeviceID)

	var env envelope
	if err := json.Unmarshal(msg.Body(), &env); err != nil {
		c.log.Warn("dropping malformed message",
			zap.Error(err),
			zap.String("deviceId", deviceID),
		)
		msg.Ack()
		return
	}
	if deviceID == "" || env.UUID == "" || len(env.Signal) == 0 {
		c.log.Warn("dropping message with missing fields",
			zap.String("deviceId", deviceID),
			zap.String("uuid", env.UUID),
		)
		msg.Ack()
		return
	}

	dev, err := c.devices.GetByExternalID(ctx, deviceID)
	if errors.Is(err, errs.ErrNotFound) {
		c.log.Warn("dropping signal for unknown device",
			zap.String("deviceId", deviceID),
			zap.String("uuid", env.UUID),
		)
		msg.Ack()
		return
	}
	if err != nil {
		c.log.Error("device lookup failed, leaving message for redelivery",
			zap.Error(err),
			zap.String("deviceId", deviceID),
		)
		return
	}

	id, err := uuid.NewV4()
	if err != nil {
		c.log.Error("uuid generation failed, leaving message for redelivery", zap.Error(err))
		return
	}
	created, err := c.signals.Insert(ctx, &model.Signal{
		ID:           id,
		DeviceID:     dev.ID,
		ExternalUUID: env.UUID,
		Payload:      string(env.Signal),
	})
	if err != nil {
		c.log.Error("signal insert failed, leaving message for redelivery",
			zap.Error(err),
			zap.String("deviceId", deviceID),
			zap.String("uuid", env.UUID),
		)
		return
	}

	if created {
		c.log.Info("signal recorded",
			zap.String("deviceId", deviceID),
			zap.String("uuid", env.UUID),
		)
	} else {
		c.log.Info("duplicate delivery ignored",
			zap.String("deviceId", deviceID),
			zap.String("uuid", env.UUID),
		)
	}
	msg.Ack()
}
