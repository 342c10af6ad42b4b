package wsgateway

import (
	"encoding/json"
	"time"

	"chat-server/internal/domain/message"
)

// Event names of the live-connection protocol.
const (
	// EventJoin announces a user identifier for presence registration.
	EventJoin = "join"
	// EventPrivateMessage carries one direct message, in both directions.
	EventPrivateMessage = "private message"
	// EventOnlineUsers carries the presence snapshot after any change.
	EventOnlineUsers = "online users"
	// EventError reports a rejected client event to its originator.
	EventError = "error"
)

// Envelope frames every event on the wire.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// PrivateMessagePayload is the inbound send-message event body.
type PrivateMessagePayload struct {
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// MessagePayload is the outbound form of a persisted message.
type MessagePayload struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrorPayload is the body of an error event.
type ErrorPayload struct {
	Message string `json:"message"`
}

func newMessagePayload(m *message.Message) MessagePayload {
	return MessagePayload{
		ID:        m.ID,
		Sender:    m.SenderID,
		Receiver:  m.ReceiverID,
		Content:   m.Content,
		Read:      m.Read,
		Timestamp: m.Timestamp,
		CreatedAt: m.CreatedAt,
	}
}

func encodeEvent(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}
