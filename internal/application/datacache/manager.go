package datacache

import (
	"context"
	"sync"

	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/rml/bookkeeper/internal/infrastructure/persistence/localcache"
	"go.uber.org/zap"
)

// Manager owns one live cache per signed-in user. The first request for a
// user starts the subscriptions; logout releases them.
type Manager struct {
	store ledger.Store
	local *localcache.Cache
	log   *zap.Logger

	mu     sync.Mutex
	caches map[string]*Cache
}

// NewManager creates the manager. local may be nil when offline fallback is
// disabled.
func NewManager(store ledger.Store, local *localcache.Cache, log *zap.Logger) *Manager {
	return &Manager{
		store:  store,
		local:  local,
		log:    log,
		caches: make(map[string]*Cache),
	}
}

// Acquire returns the user's cache, starting it on first use
func (m *Manager) Acquire(ctx context.Context, userID string) *Cache {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cache, ok := m.caches[userID]; ok {
		return cache
	}
	cache := New(userID, m.store, m.local, m.log)
	cache.Start(ctx)
	m.caches[userID] = cache
	return cache
}

// Release stops and removes the user's cache
func (m *Manager) Release(userID string) {
	m.mu.Lock()
	cache, ok := m.caches[userID]
	delete(m.caches, userID)
	m.mu.Unlock()
	if ok {
		cache.Stop()
	}
}

// Shutdown stops every live cache
func (m *Manager) Shutdown() {
	m.mu.Lock()
	caches := make([]*Cache, 0, len(m.caches))
	for _, c := range m.caches {
		caches = append(caches, c)
	}
	m.caches = make(map[string]*Cache)
	m.mu.Unlock()

	for _, c := range caches {
		c.Stop()
	}
}
