package user

import "context"

// Store is the durable user store.
type Store interface {
	// Create persists a new user. Duplicate username or email yields a
	// conflict error.
	Create(ctx context.Context, u *User) error

	// FindByEmail fetches a user by email. Absence is a not-found error.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID fetches a user by public identifier.
	FindByID(ctx context.Context, id string) (*User, error)

	// ListOthers returns every user except selfID, in stable enumeration
	// order.
	ListOthers(ctx context.Context, selfID string) ([]*User, error)
}
