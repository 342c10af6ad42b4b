package wsgateway

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"chat-server/internal/domain/message"
)

// Client is one live connection. It implements presence.Conn so the
// router can deliver messages to it directly.
type Client struct {
	gateway *Gateway
	conn    *websocket.Conn
	ctx     context.Context
	log     zerolog.Logger

	send chan []byte
	done chan struct{}
	once sync.Once

	mu     sync.RWMutex
	userID string
}

func newClient(g *Gateway, conn *websocket.Conn, userID string, ctx context.Context, log zerolog.Logger) *Client {
	return &Client{
		gateway: g,
		conn:    conn,
		ctx:     ctx,
		log:     log.With().Str("user_id", userID).Logger(),
		send:    make(chan []byte, g.sendBuffer),
		done:    make(chan struct{}),
		userID:  userID,
	}
}

// UserID returns the identity most recently registered on this connection.
func (c *Client) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *Client) setUserID(id string) {
	c.mu.Lock()
	c.userID = id
	c.mu.Unlock()
}

// Deliver enqueues a message for the write pump. It never blocks: a
// connection with a full send buffer drops the frame and relies on the
// store for eventual consistency.
func (c *Client) Deliver(m *message.Message) {
	payload, err := encodeEvent(EventPrivateMessage, newMessagePayload(m))
	if err != nil {
		c.log.Error().Err(err).Msg("Failed to encode message event")
		return
	}
	c.enqueue(payload)
}

func (c *Client) enqueue(payload []byte) {
	select {
	case <-c.done:
	case c.send <- payload:
	default:
		c.log.Warn().Msg("Send buffer full, dropping frame")
	}
}

func (c *Client) sendError(msg string) {
	payload, err := encodeEvent(EventError, ErrorPayload{Message: msg})
	if err != nil {
		return
	}
	c.enqueue(payload)
}

// close stops the write pump and tears down the underlying connection.
// Safe to call more than once.
func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// readPump runs on the handler goroutine so inbound events from one
// connection are processed in arrival order.
func (c *Client) readPump() {
	defer c.gateway.disconnect(c)

	c.conn.SetReadLimit(c.gateway.maxMessageBytes)
	c.conn.SetReadDeadline(time.Now().Add(c.gateway.pongTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.gateway.pongTimeout))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn().Err(err).Msg("Connection closed unexpectedly")
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.sendError("malformed event")
			continue
		}
		c.gateway.dispatch(c, env)
	}
}

// writePump owns all writes to the connection, including keepalive pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.gateway.pingPeriod())
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(c.gateway.writeTimeout))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.gateway.writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.gateway.writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
