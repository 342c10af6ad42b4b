package wsgateway

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"chat-server/internal/config"
	"chat-server/internal/domain/presence"
	"chat-server/internal/domain/routing"
	"chat-server/internal/infrastructure/auth"
	"chat-server/internal/infrastructure/metrics"
	"chat-server/internal/utils/platformerrors"
)

// Gateway upgrades authenticated HTTP requests to websocket connections
// and bridges their events onto the presence registry and the router.
type Gateway struct {
	registry  *presence.Registry
	router    *routing.Router
	validator *auth.Validator
	upgrader  websocket.Upgrader
	log       zerolog.Logger

	sendBuffer      int
	writeTimeout    time.Duration
	pongTimeout     time.Duration
	maxMessageBytes int64

	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func New(cfg *config.Config, registry *presence.Registry, router *routing.Router, validator *auth.Validator, log zerolog.Logger) *Gateway {
	g := &Gateway{
		registry:  registry,
		router:    router,
		validator: validator,
		log:       log.With().Str("component", "wsgateway").Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.FrontendURL),
		},
		sendBuffer:      cfg.WSSendBuffer,
		writeTimeout:    cfg.WSWriteTimeout,
		pongTimeout:     cfg.WSPongTimeout,
		maxMessageBytes: cfg.WSMaxMessageLen,
		clients:         make(map[*Client]struct{}),
	}
	registry.SetOnChange(g.broadcastOnline)
	return g
}

// Handler authenticates the handshake, upgrades the connection and runs
// the read pump until the peer goes away.
func (g *Gateway) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := g.validator.Authenticate(c.Request)
		if err != nil {
			platformerrors.WriteUnauthorized(c, err.Error())
			return
		}

		conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			g.log.Warn().Err(err).Msg("Websocket upgrade failed")
			return
		}

		client := newClient(g, conn, userID, c.Request.Context(), g.log)
		g.addClient(client)
		metrics.RecordConnectionOpened()
		g.registry.Register(userID, client)

		go client.writePump()
		client.readPump()
	}
}

func (g *Gateway) addClient(c *Client) {
	g.mu.Lock()
	g.clients[c] = struct{}{}
	g.mu.Unlock()
}

func (g *Gateway) disconnect(c *Client) {
	g.mu.Lock()
	_, known := g.clients[c]
	delete(g.clients, c)
	g.mu.Unlock()
	if !known {
		return
	}

	g.registry.Unregister(c)
	c.close()
	metrics.RecordConnectionClosed()
	g.log.Debug().Str("user_id", c.UserID()).Msg("Connection closed")
}

// dispatch handles one inbound event from a connection.
func (g *Gateway) dispatch(origin *Client, env Envelope) {
	switch env.Event {
	case EventJoin:
		g.handleJoin(origin, env.Data)
	case EventPrivateMessage:
		g.handlePrivateMessage(origin, env.Data)
	default:
		origin.sendError("unknown event: " + env.Event)
	}
}

func (g *Gateway) handleJoin(origin *Client, data json.RawMessage) {
	var userID string
	if err := json.Unmarshal(data, &userID); err != nil || userID == "" {
		origin.sendError("join requires a user id")
		return
	}
	origin.setUserID(userID)
	g.registry.Register(userID, origin)
}

func (g *Gateway) handlePrivateMessage(origin *Client, data json.RawMessage) {
	var payload PrivateMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		origin.sendError("malformed message payload")
		return
	}

	cmd := routing.Command{
		SenderID:   payload.Sender,
		ReceiverID: payload.Receiver,
		Content:    payload.Content,
		Timestamp:  payload.Timestamp,
	}

	// The route must outlive the connection: a message accepted before a
	// disconnect still gets persisted.
	ctx := context.WithoutCancel(origin.ctx)
	if _, err := g.router.Route(ctx, origin, cmd); err != nil {
		if platformerrors.IsType(err, platformerrors.ErrorTypeValidation) {
			origin.sendError(err.Error())
			return
		}
		// Storage failures stay server-side; the sender already saw the echo
		// path skipped and the log carries the cause.
		g.log.Error().Err(err).Str("sender", payload.Sender).Msg("Failed to route message")
	}
}

// broadcastOnline pushes the presence snapshot to every live connection.
func (g *Gateway) broadcastOnline(online []string) {
	metrics.SetOnlineUsers(len(online))

	payload, err := encodeEvent(EventOnlineUsers, online)
	if err != nil {
		g.log.Error().Err(err).Msg("Failed to encode presence snapshot")
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	for client := range g.clients {
		client.enqueue(payload)
	}
}

func (g *Gateway) pingPeriod() time.Duration {
	return g.pongTimeout * 9 / 10
}

func originChecker(frontendURL string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || origin == frontendURL
	}
}
