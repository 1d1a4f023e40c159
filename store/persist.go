package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/raushankrgupta/shoplungu/storage"
	"go.uber.org/zap"
)

// Fixed snapshot keys, one per store
const (
	CartKey     = "cart-storage"
	WishlistKey = "wishlist-storage"
	AuthKey     = "auth-storage"
)

// Snapshotter is implemented by every store whose state is persisted
type Snapshotter interface {
	MarshalSnapshot() ([]byte, error)
	UnmarshalSnapshot(data []byte) error
}

// Persisted wraps a store so that every Update is followed by a full snapshot
// write under a fixed key. It also serialises access to the store.
type Persisted[S Snapshotter] struct {
	mu      sync.Mutex
	state   S
	backend storage.Storage
	key     string
	logger  *zap.Logger
}

// Load restores state from key. A missing or unreadable snapshot leaves the
// empty state in place.
func Load[S Snapshotter](ctx context.Context, backend storage.Storage, key string, empty S, logger *zap.Logger) *Persisted[S] {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Persisted[S]{state: empty, backend: backend, key: key, logger: logger}

	data, err := backend.Get(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		logger.Warn("Failed to read snapshot, starting empty", zap.String("key", key), zap.Error(err))
	default:
		if err := empty.UnmarshalSnapshot(data); err != nil {
			logger.Warn("Unreadable snapshot, starting empty", zap.String("key", key), zap.Error(err))
		}
	}
	return p
}

// View runs fn with read access to the store
func (p *Persisted[S]) View(fn func(S)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p.state)
}

// Update runs fn, then writes the snapshot. The in-memory change stands even if
// the write fails.
func (p *Persisted[S]) Update(ctx context.Context, fn func(S)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	fn(p.state)
	return p.save(ctx)
}

func (p *Persisted[S]) save(ctx context.Context) error {
	data, err := p.state.MarshalSnapshot()
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", p.key, err)
	}
	if err := p.backend.Put(ctx, p.key, data); err != nil {
		p.logger.Error("Failed to persist snapshot", zap.String("key", p.key), zap.Error(err))
		return fmt.Errorf("failed to persist %s: %w", p.key, err)
	}
	return nil
}
