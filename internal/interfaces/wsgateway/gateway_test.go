package wsgateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"chat-server/internal/config"
	"chat-server/internal/domain/message"
	"chat-server/internal/domain/presence"
	"chat-server/internal/domain/routing"
	"chat-server/internal/infrastructure/auth"
	"chat-server/internal/interfaces/wsgateway"
)

type MockStore struct {
	CreateFunc func(ctx context.Context, senderID, receiverID, content string, timestamp time.Time) (*message.Message, error)
}

func (m *MockStore) Create(ctx context.Context, senderID, receiverID, content string, timestamp time.Time) (*message.Message, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, senderID, receiverID, content, timestamp)
	}
	return &message.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  timestamp,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func (m *MockStore) FindConversation(ctx context.Context, userA, userB string) ([]*message.Message, error) {
	return nil, nil
}

func (m *MockStore) FindLastMessage(ctx context.Context, userA, userB string) (*message.Message, error) {
	return nil, nil
}

func (m *MockStore) MarkRead(ctx context.Context, otherUserID, selfUserID string) error {
	return nil
}

type testEnv struct {
	server *httptest.Server
	issuer *auth.TokenIssuer
}

func newTestEnv(t *testing.T, store message.Store) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ServiceName:     "chat-api",
		JWTSecret:       "test-secret",
		TokenTTL:        time.Hour,
		WSSendBuffer:    16,
		WSWriteTimeout:  2 * time.Second,
		WSPongTimeout:   30 * time.Second,
		WSMaxMessageLen: 4096,
	}

	issuer := auth.NewTokenIssuer(cfg)
	validator := auth.NewValidator(issuer, zerolog.Nop())
	registry := presence.NewRegistry(zerolog.Nop())
	router := routing.NewRouter(store, registry, zerolog.Nop())
	gateway := wsgateway.New(cfg, registry, router, validator, zerolog.Nop())

	engine := gin.New()
	engine.GET("/ws", gateway.Handler())

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)
	return &testEnv{server: server, issuer: issuer}
}

func (e *testEnv) dial(t *testing.T, userID string) *websocket.Conn {
	t.Helper()
	token, _, err := e.issuer.Mint(userID)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	url := "ws" + strings.TrimPrefix(e.server.URL, "http") + "/ws"
	header := http.Header{"Authorization": []string{"Bearer " + token}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readEvent reads frames until one with the wanted event name arrives,
// skipping unrelated frames such as presence updates.
func readEvent(t *testing.T, conn *websocket.Conn, want string) json.RawMessage {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		conn.SetReadDeadline(deadline)
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %q event: %v", want, err)
		}
		var env wsgateway.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("malformed frame: %v", err)
		}
		if env.Event == want {
			return env.Data
		}
	}
}

func sendEvent(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	env := wsgateway.Envelope{Event: event, Data: raw}
	if err := conn.WriteJSON(env); err != nil {
		t.Fatalf("write %q event: %v", event, err)
	}
}

func TestHandshakeRejectsMissingToken(t *testing.T) {
	env := newTestEnv(t, &MockStore{})

	url := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected handshake to fail without a token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 response, got %v", resp)
	}
}

func TestConnectBroadcastsPresence(t *testing.T) {
	env := newTestEnv(t, &MockStore{})

	alice := env.dial(t, "alice")
	data := readEvent(t, alice, wsgateway.EventOnlineUsers)

	var online []string
	if err := json.Unmarshal(data, &online); err != nil {
		t.Fatalf("decode online users: %v", err)
	}
	if len(online) != 1 || online[0] != "alice" {
		t.Fatalf("expected [alice], got %v", online)
	}

	env.dial(t, "bob")
	for {
		data = readEvent(t, alice, wsgateway.EventOnlineUsers)
		if err := json.Unmarshal(data, &online); err != nil {
			t.Fatalf("decode online users: %v", err)
		}
		if len(online) == 2 {
			break
		}
	}
	if online[0] != "alice" || online[1] != "bob" {
		t.Fatalf("expected [alice bob], got %v", online)
	}
}

func TestPrivateMessageEchoAndDelivery(t *testing.T) {
	env := newTestEnv(t, &MockStore{})

	alice := env.dial(t, "alice")
	bob := env.dial(t, "bob")
	readEvent(t, alice, wsgateway.EventOnlineUsers)
	readEvent(t, bob, wsgateway.EventOnlineUsers)

	sendEvent(t, alice, wsgateway.EventPrivateMessage, wsgateway.PrivateMessagePayload{
		Sender:   "alice",
		Receiver: "bob",
		Content:  "hello bob",
	})

	var echo wsgateway.MessagePayload
	if err := json.Unmarshal(readEvent(t, alice, wsgateway.EventPrivateMessage), &echo); err != nil {
		t.Fatalf("decode echo: %v", err)
	}
	if echo.ID == "" {
		t.Fatal("expected echoed message to carry its stored identifier")
	}
	if echo.Sender != "alice" || echo.Receiver != "bob" || echo.Content != "hello bob" {
		t.Fatalf("unexpected echo: %+v", echo)
	}

	var delivered wsgateway.MessagePayload
	if err := json.Unmarshal(readEvent(t, bob, wsgateway.EventPrivateMessage), &delivered); err != nil {
		t.Fatalf("decode delivery: %v", err)
	}
	if delivered.ID != echo.ID {
		t.Fatalf("expected identical stored record on both ends, got %q and %q", echo.ID, delivered.ID)
	}
}

func TestValidationFailureYieldsErrorEvent(t *testing.T) {
	env := newTestEnv(t, &MockStore{})

	alice := env.dial(t, "alice")
	readEvent(t, alice, wsgateway.EventOnlineUsers)

	sendEvent(t, alice, wsgateway.EventPrivateMessage, wsgateway.PrivateMessagePayload{
		Sender:  "alice",
		Content: "no receiver",
	})

	var payload wsgateway.ErrorPayload
	if err := json.Unmarshal(readEvent(t, alice, wsgateway.EventError), &payload); err != nil {
		t.Fatalf("decode error event: %v", err)
	}
	if payload.Message == "" {
		t.Fatal("expected an error message")
	}
}

func TestStoreFailureStaysSilent(t *testing.T) {
	store := &MockStore{
		CreateFunc: func(ctx context.Context, senderID, receiverID, content string, timestamp time.Time) (*message.Message, error) {
			return nil, context.DeadlineExceeded
		},
	}
	env := newTestEnv(t, store)

	alice := env.dial(t, "alice")
	readEvent(t, alice, wsgateway.EventOnlineUsers)

	sendEvent(t, alice, wsgateway.EventPrivateMessage, wsgateway.PrivateMessagePayload{
		Sender:   "alice",
		Receiver: "bob",
		Content:  "lost to the void",
	})

	// No echo and no error event may arrive; the connection must survive.
	alice.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, raw, err := alice.ReadMessage(); err == nil {
		var env wsgateway.Envelope
		if json.Unmarshal(raw, &env) == nil && env.Event != wsgateway.EventOnlineUsers {
			t.Fatalf("expected silence after store failure, got %q event", env.Event)
		}
	}

	// Connection still usable.
	sendEvent(t, alice, wsgateway.EventJoin, "alice")
}

func TestJoinRegistersNewIdentity(t *testing.T) {
	env := newTestEnv(t, &MockStore{})

	conn := env.dial(t, "alice")
	readEvent(t, conn, wsgateway.EventOnlineUsers)

	sendEvent(t, conn, wsgateway.EventJoin, "alice-phone")

	for {
		var online []string
		if err := json.Unmarshal(readEvent(t, conn, wsgateway.EventOnlineUsers), &online); err != nil {
			t.Fatalf("decode online users: %v", err)
		}
		if len(online) == 1 && online[0] == "alice-phone" {
			return
		}
	}
}
