package handlers

import (
	"context"

	"chat-server/internal/domain/message"
)

// MessageHandler handles message-related HTTP requests.
type MessageHandler struct {
	service message.Service
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(service message.Service) *MessageHandler {
	return &MessageHandler{service: service}
}

// GetHistory fetches the full conversation between the caller and another
// user, oldest first.
func (h *MessageHandler) GetHistory(ctx context.Context, selfID, otherID string) ([]*message.Message, error) {
	return h.service.GetHistory(ctx, selfID, otherID)
}

// GetChatList builds the caller's conversation overview.
func (h *MessageHandler) GetChatList(ctx context.Context, selfID string) ([]*message.ConversationSummary, error) {
	return h.service.BuildChatList(ctx, selfID)
}

// MarkRead marks every unread message from otherID to the caller as read.
func (h *MessageHandler) MarkRead(ctx context.Context, otherID, selfID string) error {
	return h.service.MarkConversationRead(ctx, otherID, selfID)
}
