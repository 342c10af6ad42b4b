package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"chat-server/internal/utils/platformerrors"
)

// TokenMinter issues an identity token for a user.
type TokenMinter interface {
	Mint(userID string) (token string, expiresAt time.Time, err error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(password, hash string) bool
}

// RegisterCommand carries a registration request.
type RegisterCommand struct {
	Username string
	Email    string
	Password string
}

// LoginCommand carries a login request.
type LoginCommand struct {
	Email    string
	Password string
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token string
	User  PublicProfile
}

// Service is the account and authentication service.
type Service interface {
	Register(ctx context.Context, cmd RegisterCommand) (*AuthResult, error)
	Login(ctx context.Context, cmd LoginCommand) (*AuthResult, error)
	Profile(ctx context.Context, userID string) (*PublicProfile, error)
}

type service struct {
	store    Store
	tokens   TokenMinter
	password PasswordHasher
	log      zerolog.Logger
}

// NewService creates the account service.
func NewService(store Store, tokens TokenMinter, password PasswordHasher, log zerolog.Logger) Service {
	return &service{
		store:    store,
		tokens:   tokens,
		password: password,
		log:      log.With().Str("component", "user-service").Logger(),
	}
}

func (s *service) Register(ctx context.Context, cmd RegisterCommand) (*AuthResult, error) {
	hash, err := s.password.Hash(cmd.Password)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal, "failed to hash password", err)
	}

	now := time.Now().UTC()
	u := &User{
		ID:           uuid.NewString(),
		Username:     cmd.Username,
		Email:        cmd.Email,
		PasswordHash: hash,
		Status:       "offline",
		CreatedAt:    now,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}

	token, _, err := s.tokens.Mint(u.ID)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal, "failed to mint token", err)
	}

	s.log.Info().Str("user_id", u.ID).Str("username", u.Username).Msg("user registered")
	return &AuthResult{Token: token, User: u.Public()}, nil
}

func (s *service) Login(ctx context.Context, cmd LoginCommand) (*AuthResult, error) {
	u, err := s.store.FindByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, err
	}

	if !s.password.Compare(cmd.Password, u.PasswordHash) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized, "invalid password", nil)
	}

	token, _, err := s.tokens.Mint(u.ID)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal, "failed to mint token", err)
	}

	return &AuthResult{Token: token, User: u.Public()}, nil
}

func (s *service) Profile(ctx context.Context, userID string) (*PublicProfile, error) {
	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := u.Public()
	return &profile, nil
}
