package handlers

import (
	"context"

	"chat-server/internal/domain/user"
)

// AuthHandler handles account-related HTTP requests.
type AuthHandler struct {
	service user.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service user.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register creates an account and returns an identity token.
func (h *AuthHandler) Register(ctx context.Context, cmd user.RegisterCommand) (*user.AuthResult, error) {
	return h.service.Register(ctx, cmd)
}

// Login verifies credentials and returns an identity token.
func (h *AuthHandler) Login(ctx context.Context, cmd user.LoginCommand) (*user.AuthResult, error) {
	return h.service.Login(ctx, cmd)
}

// Profile returns the caller's public profile.
func (h *AuthHandler) Profile(ctx context.Context, userID string) (*user.PublicProfile, error) {
	return h.service.Profile(ctx, userID)
}
