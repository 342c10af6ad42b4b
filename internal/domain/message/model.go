// Package message holds the message domain model and the query surface built
// on top of the durable store: conversation history, chat list aggregation
// and read marking.
package message

import (
	"time"

	"chat-server/internal/domain/user"
)

// Message is a single direct message between two users. Sender, receiver,
// content and timestamp are immutable once persisted; only Read mutates.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender"`
	ReceiverID string    `json:"receiver"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	Timestamp  time.Time `json:"timestamp"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ConversationSummary pairs another user with the most recent message
// exchanged with the requesting user, or nil when none exists. It is derived
// per request and never stored.
type ConversationSummary struct {
	User        user.PublicProfile `json:"user"`
	LastMessage *Message           `json:"lastMessage"`
}
