// Package presence tracks which users currently own a live connection. The
// registry is the only mutable shared in-memory structure in the core; all
// mutation goes through Register and Unregister, which are safe to call
// concurrently. Entries are volatile and lost on process restart.
package presence

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"chat-server/internal/domain/message"
)

// Conn is a live client connection able to receive routed messages. Deliver
// must be best-effort and must not block.
type Conn interface {
	Deliver(msg *message.Message)
}

// Registry maps user identifiers to their single live connection.
// Registering a new connection for an already-present user overwrites the
// old entry: last registration wins, there is no multi-device fan-out.
type Registry struct {
	mu       sync.RWMutex
	byUser   map[string]Conn
	byConn   map[Conn]string
	onChange func(online []string)
	log      zerolog.Logger
}

// NewRegistry creates an empty presence registry.
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		byUser: make(map[string]Conn),
		byConn: make(map[Conn]string),
		log:    log.With().Str("component", "presence-registry").Logger(),
	}
}

// SetOnChange installs the callback invoked with a fresh snapshot after every
// effective mutation. The callback runs outside the registry lock.
func (r *Registry) SetOnChange(fn func(online []string)) {
	r.mu.Lock()
	r.onChange = fn
	r.mu.Unlock()
}

// Register binds userID to conn, unconditionally replacing any existing entry
// for that user. A connection owns at most one entry: re-registering a
// connection under a new user identifier moves it.
func (r *Registry) Register(userID string, conn Conn) {
	r.mu.Lock()
	if old, ok := r.byUser[userID]; ok && old != conn {
		delete(r.byConn, old)
	}
	if prev, ok := r.byConn[conn]; ok && prev != userID {
		delete(r.byUser, prev)
	}
	r.byUser[userID] = conn
	r.byConn[conn] = userID
	online, fn := r.snapshotLocked(), r.onChange
	r.mu.Unlock()

	r.log.Debug().Str("user_id", userID).Int("online", len(online)).Msg("connection registered")
	if fn != nil {
		fn(online)
	}
}

// Unregister removes the entry owned by conn. A disconnect for a connection
// that has already been replaced by a newer registration is a no-op, so a
// stale disconnect never evicts the newer connection.
func (r *Registry) Unregister(conn Conn) bool {
	r.mu.Lock()
	userID, ok := r.byConn[conn]
	if !ok || r.byUser[userID] != conn {
		r.mu.Unlock()
		return false
	}
	delete(r.byUser, userID)
	delete(r.byConn, conn)
	online, fn := r.snapshotLocked(), r.onChange
	r.mu.Unlock()

	r.log.Debug().Str("user_id", userID).Int("online", len(online)).Msg("connection unregistered")
	if fn != nil {
		fn(online)
	}
	return true
}

// Lookup returns the live connection for userID, if any.
func (r *Registry) Lookup(userID string) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.byUser[userID]
	return conn, ok
}

// Snapshot returns the identifiers of all currently registered users.
func (r *Registry) Snapshot() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *Registry) snapshotLocked() []string {
	online := make([]string, 0, len(r.byUser))
	for userID := range r.byUser {
		online = append(online, userID)
	}
	sort.Strings(online)
	return online
}
