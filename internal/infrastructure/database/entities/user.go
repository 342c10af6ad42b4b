package entities

import (
	"time"

	"chat-server/internal/domain/user"
)

// User represents the database schema for user accounts.
type User struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PublicID       string     `gorm:"type:varchar(36);uniqueIndex;not null"`
	Username       string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash   string     `gorm:"type:varchar(255);not null"`
	ProfilePicture *string    `gorm:"type:varchar(512)"`
	Status         string     `gorm:"type:varchar(20);not null;default:'offline'"`
	LastSeen       *time.Time `gorm:"type:timestamptz"`
}

// TableName specifies the table name for User.
func (User) TableName() string {
	return "users"
}

// NewSchemaUser converts a domain user into its database entity.
func NewSchemaUser(u *user.User) *User {
	return &User{
		PublicID:       u.ID,
		Username:       u.Username,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		ProfilePicture: u.ProfilePicture,
		Status:         u.Status,
		LastSeen:       u.LastSeen,
	}
}

// EtoD converts the database entity to the domain model.
func (u *User) EtoD() *user.User {
	return &user.User{
		ID:             u.PublicID,
		Username:       u.Username,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		ProfilePicture: u.ProfilePicture,
		Status:         u.Status,
		LastSeen:       u.LastSeen,
		CreatedAt:      u.CreatedAt,
	}
}
