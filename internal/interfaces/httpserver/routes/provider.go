// Package routes registers the REST surface of the chat service.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chat-server/internal/infrastructure/auth"
	"chat-server/internal/interfaces/httpserver/handlers"
)

// Provider holds all route registrations.
type Provider struct {
	handlers  *handlers.Provider
	validator *auth.Validator
	log       zerolog.Logger
}

// NewProvider creates a new route provider.
func NewProvider(handlerProvider *handlers.Provider, validator *auth.Validator, log zerolog.Logger) *Provider {
	return &Provider{
		handlers:  handlerProvider,
		validator: validator,
		log:       log,
	}
}

// Register registers all API routes on the engine. Registration and login are
// public; everything else requires an authenticated caller.
func (p *Provider) Register(engine *gin.Engine) {
	api := engine.Group("/api")

	RegisterAuthRoutes(api, p.handlers.Auth, p.validator, p.log)

	messages := api.Group("/messages")
	messages.Use(p.validator.Middleware())
	RegisterMessageRoutes(messages, p.handlers.Message, p.log)
}
