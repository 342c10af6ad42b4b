// Package user holds the user account model and the authentication service
// (registration, login, profile). The messaging core only ever references
// users by their public identifier.
package user

import "time"

// User is a registered account.
type User struct {
	ID             string
	Username       string
	Email          string
	PasswordHash   string
	ProfilePicture *string
	Status         string
	LastSeen       *time.Time
	CreatedAt      time.Time
}

// PublicProfile is the externally visible subset of a user.
type PublicProfile struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// Public returns the externally visible view of the user.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
	}
}
