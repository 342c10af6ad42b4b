// Package responses contains HTTP response DTOs and error helpers.
package responses

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chat-server/internal/domain/message"
	"chat-server/internal/domain/user"
	"chat-server/internal/utils/platformerrors"
)

// MessageResponse is the wire form of a persisted message.
type MessageResponse struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewMessageResponse converts a domain message.
func NewMessageResponse(m *message.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Sender:    m.SenderID,
		Receiver:  m.ReceiverID,
		Content:   m.Content,
		Read:      m.Read,
		Timestamp: m.Timestamp,
		CreatedAt: m.CreatedAt,
	}
}

// NewMessageListResponse converts an ordered sequence of domain messages.
func NewMessageListResponse(msgs []*message.Message) []MessageResponse {
	result := make([]MessageResponse, len(msgs))
	for i, m := range msgs {
		result[i] = NewMessageResponse(m)
	}
	return result
}

// LastMessageResponse is the abbreviated message shown in the chat list.
type LastMessageResponse struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// ChatListEntry pairs a user with the newest message of that conversation.
type ChatListEntry struct {
	User        user.PublicProfile   `json:"user"`
	LastMessage *LastMessageResponse `json:"lastMessage"`
}

// NewChatListResponse converts the aggregated conversation summaries.
func NewChatListResponse(summaries []*message.ConversationSummary) []ChatListEntry {
	result := make([]ChatListEntry, len(summaries))
	for i, s := range summaries {
		entry := ChatListEntry{User: s.User}
		if s.LastMessage != nil {
			entry.LastMessage = &LastMessageResponse{
				Content:   s.LastMessage.Content,
				Timestamp: s.LastMessage.Timestamp,
				Read:      s.LastMessage.Read,
			}
		}
		result[i] = entry
	}
	return result
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	Token string             `json:"token"`
	User  user.PublicProfile `json:"user"`
}

// AckResponse is a bare acknowledgement body.
type AckResponse struct {
	Message string `json:"message"`
}

// HandleError writes err as an HTTP error response.
func HandleError(c *gin.Context, err error, log zerolog.Logger) {
	platformerrors.WriteError(c, err, log)
}
