package session

import (
	"context"
	"testing"
	"time"

	"github.com/raushankrgupta/shoplungu/models"
	"github.com/raushankrgupta/shoplungu/storage"
	"github.com/raushankrgupta/shoplungu/store"
	"github.com/raushankrgupta/shoplungu/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func newManager(backend storage.Storage) *Manager {
	return NewManager(backend, secret, time.Hour, store.DemoCredential("", nil), nil)
}

func TestIssueAndResolve(t *testing.T) {
	ctx := context.Background()
	m := newManager(storage.NewMemory())

	sess, token, err := m.Issue(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Same(t, sess, resolved)
}

func TestResolveRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	m := newManager(storage.NewMemory())

	_, err := m.Resolve(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, err := utils.GenerateToken([]byte("other-secret"), "5d0c3f9e-8e43-4a53-a7f2-0d1f5b1d7f55", time.Hour)
	require.NoError(t, err)
	_, err = m.Resolve(ctx, foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	escaping, err := utils.GenerateToken(secret, "../other", time.Hour)
	require.NoError(t, err)
	_, err = m.Resolve(ctx, escaping)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := newManager(storage.NewMemory())

	a, _, err := m.Issue(ctx)
	require.NoError(t, err)
	b, _, err := m.Issue(ctx)
	require.NoError(t, err)

	require.NoError(t, a.Cart.Update(ctx, func(c *store.Cart) {
		c.AddItem(models.CartItem{ProductID: "1", Price: 10, Quantity: 2})
	}))

	b.Cart.View(func(c *store.Cart) {
		assert.Zero(t, c.TotalItems())
	})
}

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()

	first := newManager(backend)
	sess, token, err := first.Issue(ctx)
	require.NoError(t, err)

	require.NoError(t, sess.Cart.Update(ctx, func(c *store.Cart) {
		c.AddItem(models.CartItem{ProductID: "1", Size: "M", Color: "Red", Price: 20, Quantity: 2})
	}))
	require.NoError(t, sess.Wishlist.Update(ctx, func(w *store.Wishlist) {
		w.AddItem(models.WishlistItem{ProductID: "7"})
	}))
	require.NoError(t, sess.Auth.Update(ctx, func(a *store.Auth) {
		require.True(t, a.Login("admin@shoplungu.com", "admin123"))
	}))

	_, err = backend.Get(ctx, "session/"+sess.ID+"/cart-storage")
	require.NoError(t, err, "snapshots live under the session namespace")

	second := newManager(backend)
	restored, err := second.Resolve(ctx, token)
	require.NoError(t, err)
	assert.NotSame(t, sess, restored)

	restored.Cart.View(func(c *store.Cart) {
		assert.Equal(t, 2, c.TotalItems())
		assert.InDelta(t, 40.0, c.TotalPrice(), 1e-9)
	})
	restored.Wishlist.View(func(w *store.Wishlist) {
		assert.True(t, w.IsInWishlist("7"))
	})
	restored.Auth.View(func(a *store.Auth) {
		assert.True(t, a.IsAuthenticated())
		user, ok := a.CurrentUser()
		require.True(t, ok)
		assert.Equal(t, "Admin", user.FirstName)
	})
}

func TestForget(t *testing.T) {
	ctx := context.Background()
	m := newManager(storage.NewMemory())

	sess, _, err := m.Issue(ctx)
	require.NoError(t, err)
	m.Forget(sess.ID)

	reopened, err := m.Open(ctx, sess.ID)
	require.NoError(t, err)
	assert.NotSame(t, sess, reopened)
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestExpiredSessionsAreDropped(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)}
	m := NewManager(storage.NewMemory(), secret, time.Millisecond, store.DemoCredential("", nil), nil)
	m.now = clock.Now

	for range 5000 {
		_, _, err := m.Issue(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 5000, m.Len())

	clock.t = clock.t.Add(10 * time.Millisecond)
	_, _, err := m.Issue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
}

func TestActiveSessionStaysCached(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)}
	m := NewManager(storage.NewMemory(), secret, time.Hour, store.DemoCredential("", nil), nil)
	m.now = clock.Now

	sess, _, err := m.Issue(ctx)
	require.NoError(t, err)

	clock.t = clock.t.Add(50 * time.Minute)
	again, err := m.Open(ctx, sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, again)

	clock.t = clock.t.Add(50 * time.Minute)
	again, err = m.Open(ctx, sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, again, "each use extends the session")

	clock.t = clock.t.Add(2 * time.Hour)
	reopened, err := m.Open(ctx, sess.ID)
	require.NoError(t, err)
	assert.NotSame(t, sess, reopened)
}

func TestExpiredSessionIsRestoredFromBackend(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)}
	m := NewManager(storage.NewMemory(), secret, time.Minute, store.DemoCredential("", nil), nil)
	m.now = clock.Now

	sess, _, err := m.Issue(ctx)
	require.NoError(t, err)
	require.NoError(t, sess.Cart.Update(ctx, func(c *store.Cart) {
		c.AddItem(models.CartItem{ProductID: "1", Price: 10, Quantity: 3})
	}))

	clock.t = clock.t.Add(time.Hour)
	restored, err := m.Open(ctx, sess.ID)
	require.NoError(t, err)
	assert.NotSame(t, sess, restored)
	restored.Cart.View(func(c *store.Cart) {
		assert.Equal(t, 3, c.TotalItems())
	})
}
