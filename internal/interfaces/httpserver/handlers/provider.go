package handlers

import (
	"github.com/google/wire"

	"chat-server/internal/domain/message"
	"chat-server/internal/domain/user"
)

// Provider holds all HTTP handlers.
type Provider struct {
	Message *MessageHandler
	Auth    *AuthHandler
}

// NewProvider creates a new handler provider.
func NewProvider(messageService message.Service, userService user.Service) *Provider {
	return &Provider{
		Message: NewMessageHandler(messageService),
		Auth:    NewAuthHandler(userService),
	}
}

// HandlerProvider provides all handlers for wire.
var HandlerProvider = wire.NewSet(
	NewMessageHandler,
	NewAuthHandler,
	NewProvider,
)
