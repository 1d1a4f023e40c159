// Package session binds a client token to that client's cart, wishlist and
// auth stores.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/shoplungu/storage"
	"github.com/raushankrgupta/shoplungu/store"
	"github.com/raushankrgupta/shoplungu/utils"
	"go.uber.org/zap"
)

// ErrInvalidToken is returned by Resolve for tokens that are malformed, expired
// or signed with another secret
var ErrInvalidToken = errors.New("session: invalid token")

// Session is one client's state. Each store serialises its own updates.
type Session struct {
	ID       string
	Cart     *store.Persisted[*store.Cart]
	Wishlist *store.Persisted[*store.Wishlist]
	Auth     *store.Persisted[*store.Auth]

	storage storage.Storage
}

// Storage returns the session's namespace of the backend, for records that live
// outside the three stores
func (s *Session) Storage() storage.Storage {
	return s.storage
}

// maxSweepInterval bounds how long expired sessions can linger in memory
const maxSweepInterval = time.Minute

type cachedSession struct {
	sess    *Session
	expires time.Time
}

// Manager issues session tokens and keeps opened sessions in memory. A cached
// session is dropped once it has gone unused for the token TTL; its snapshots
// stay in the backend and are restored on the next Open.
type Manager struct {
	backend    storage.Storage
	secret     []byte
	ttl        time.Duration
	credential store.Credential
	logger     *zap.Logger
	now        func() time.Time

	mu        sync.Mutex
	sessions  map[string]cachedSession
	lastSweep time.Time
}

func NewManager(backend storage.Storage, secret []byte, ttl time.Duration, credential store.Credential, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		backend:    backend,
		secret:     secret,
		ttl:        ttl,
		credential: credential,
		logger:     logger,
		now:        time.Now,
		sessions:   make(map[string]cachedSession),
	}
}

// Issue starts a new empty session and returns it with its signed token
func (m *Manager) Issue(ctx context.Context) (*Session, string, error) {
	id := uuid.NewString()
	token, err := utils.GenerateToken(m.secret, id, m.ttl)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}
	sess, err := m.Open(ctx, id)
	if err != nil {
		return nil, "", err
	}
	m.logger.Debug("Session issued", zap.String("session_id", id))
	return sess, token, nil
}

// Resolve validates token and opens the session it names
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	id, err := utils.ValidateToken(m.secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return m.Open(ctx, id)
}

// Open returns the session with the given id, restoring its stores from the
// backend when it is not cached
func (m *Manager) Open(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: malformed session id %q", ErrInvalidToken, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)

	if cached, ok := m.sessions[id]; ok && now.Before(cached.expires) {
		cached.expires = now.Add(m.ttl)
		m.sessions[id] = cached
		return cached.sess, nil
	}

	ns := storage.Namespace(m.backend, "session/"+id)
	logger := m.logger.With(zap.String("session_id", id))
	sess := &Session{
		ID:       id,
		Cart:     store.Load(ctx, ns, store.CartKey, store.NewCart(), logger),
		Wishlist: store.Load(ctx, ns, store.WishlistKey, store.NewWishlist(), logger),
		Auth:     store.Load(ctx, ns, store.AuthKey, store.NewAuth(m.credential), logger),
		storage:  ns,
	}
	m.sessions[id] = cachedSession{sess: sess, expires: now.Add(m.ttl)}
	return sess, nil
}

// sweep drops expired sessions, at most once per sweep interval. Callers hold mu.
func (m *Manager) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < min(m.ttl, maxSweepInterval) {
		return
	}
	m.lastSweep = now
	for id, cached := range m.sessions {
		if !now.Before(cached.expires) {
			delete(m.sessions, id)
		}
	}
}

// Len reports how many sessions are held in memory
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Forget drops a session from memory. Its snapshots stay in the backend.
func (m *Manager) Forget(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
