package message

import (
	"context"
	"time"
)

// Store is the durable message store. Conversations are always keyed by the
// unordered (sender, receiver) pair.
type Store interface {
	// Create persists a new message, assigning its identifier and
	// persistence timestamp, and returns the stored record.
	Create(ctx context.Context, senderID, receiverID, content string, timestamp time.Time) (*Message, error)

	// FindConversation returns every message between the two users, in
	// either direction, ordered by timestamp ascending.
	FindConversation(ctx context.Context, userA, userB string) ([]*Message, error)

	// FindLastMessage returns the most recent message between the two users,
	// or nil when no message exists. Absence is not an error.
	FindLastMessage(ctx context.Context, userA, userB string) (*Message, error)

	// MarkRead flips every unread message from otherUserID to selfUserID to
	// read. Idempotent: repeated calls touch zero additional rows.
	MarkRead(ctx context.Context, otherUserID, selfUserID string) error
}
