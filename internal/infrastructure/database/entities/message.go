package entities

import (
	"time"

	"chat-server/internal/domain/message"
)

// Message represents the database schema for direct messages. Conversation
// queries are always keyed by the unordered (sender, receiver) pair, hence
// the composite pair index plus the descending timestamp index.
type Message struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PublicID   string    `gorm:"type:varchar(36);uniqueIndex;not null"`
	SenderID   string    `gorm:"type:varchar(36);index:idx_message_pair;not null"`
	ReceiverID string    `gorm:"type:varchar(36);index:idx_message_pair;not null"`
	Content    string    `gorm:"type:text;not null"`
	Read       bool      `gorm:"not null;default:false"`
	Timestamp  time.Time `gorm:"index:idx_message_timestamp,sort:desc;not null"`
}

// TableName specifies the table name for Message.
func (Message) TableName() string {
	return "messages"
}

// EtoD converts the database entity to the domain model.
func (m *Message) EtoD() *message.Message {
	return &message.Message{
		ID:         m.PublicID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Read:       m.Read,
		Timestamp:  m.Timestamp,
		CreatedAt:  m.CreatedAt,
	}
}
