// Package routing turns one inbound send-message event into a persisted
// record and up to two live deliveries (sender echo, recipient copy).
package routing

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"chat-server/internal/domain/message"
	"chat-server/internal/domain/presence"
	"chat-server/internal/infrastructure/metrics"
	"chat-server/internal/utils/platformerrors"
)

// Command is one inbound send-message event.
type Command struct {
	SenderID   string `validate:"required"`
	ReceiverID string `validate:"required"`
	Content    string `validate:"required"`
	Timestamp  time.Time
}

// Router accepts inbound message events, persists them and routes the stored
// record to the live connections involved.
type Router struct {
	store    message.Store
	registry *presence.Registry
	validate *validator.Validate
	log      zerolog.Logger
}

// NewRouter creates a message router over the given store and registry.
func NewRouter(store message.Store, registry *presence.Registry, log zerolog.Logger) *Router {
	return &Router{
		store:    store,
		registry: registry,
		validate: validator.New(),
		log:      log.With().Str("component", "message-router").Logger(),
	}
}

// Route validates and persists cmd, then delivers the stored record: first an
// echo to the originating connection, then a copy to the receiver's
// connection when one is registered. Nothing is delivered before persistence
// succeeds, and an offline receiver is not an error; the message is only
// retrievable through history until their next connection.
func (r *Router) Route(ctx context.Context, origin presence.Conn, cmd Command) (*message.Message, error) {
	if err := r.validate.Struct(cmd); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "sender, receiver and content are required", err)
	}

	timestamp := cmd.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	msg, err := r.store.Create(ctx, cmd.SenderID, cmd.ReceiverID, cmd.Content, timestamp)
	if err != nil {
		metrics.RecordPersistFailure()
		return nil, err
	}
	metrics.RecordMessageRouted()

	if origin != nil {
		origin.Deliver(msg)
		metrics.RecordDelivery("echo")
	}

	if conn, ok := r.registry.Lookup(cmd.ReceiverID); ok {
		conn.Deliver(msg)
		metrics.RecordDelivery("recipient")
	} else {
		r.log.Debug().Str("receiver_id", cmd.ReceiverID).Msg("receiver offline, skipping live delivery")
		metrics.RecordDeliveryMiss()
	}

	return msg, nil
}
