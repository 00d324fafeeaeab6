package datacache

import (
	"context"
	"sync"
	"time"

	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/rml/bookkeeper/internal/domain/shared"
	"github.com/rml/bookkeeper/internal/infrastructure/persistence/localcache"
	"go.uber.org/zap"
)

// Cache mirrors one user's collections in memory, fed by live store
// subscriptions. Every write goes to the store; the subscription pushes the
// fresh snapshot back, so readers always see what the store holds. When the
// store is unreachable at startup a collection falls back to the last locally
// persisted snapshot and is marked stale.
type Cache struct {
	userID string
	store  ledger.Store
	local  *localcache.Cache
	log    *zap.Logger

	mu     sync.RWMutex
	data   map[string][]ledger.Document
	loaded map[string]bool
	stale  map[string]time.Time

	subs    []ledger.Subscription
	wg      sync.WaitGroup
	stopped bool
}

// New creates an unstarted cache for one user. local may be nil when offline
// fallback is disabled.
func New(userID string, store ledger.Store, local *localcache.Cache, log *zap.Logger) *Cache {
	return &Cache{
		userID: userID,
		store:  store,
		local:  local,
		log:    log.Named("datacache").With(zap.String("user_id", userID)),
		data:   make(map[string][]ledger.Document),
		loaded: make(map[string]bool),
		stale:  make(map[string]time.Time),
	}
}

// Start subscribes to every collection. Collections whose subscription cannot
// be established are served from the local snapshot cache when one exists;
// otherwise they stay unloaded and reads return ErrOfflineNoCache.
func (c *Cache) Start(ctx context.Context) {
	for _, collection := range ledger.Collections() {
		sub, err := c.store.Watch(ctx, c.userID, collection)
		if err != nil {
			c.log.Warn("subscription failed, trying local snapshot",
				zap.String("collection", collection),
				zap.Error(err))
			c.loadFromLocal(ctx, collection)
			continue
		}
		c.mu.Lock()
		c.subs = append(c.subs, sub)
		c.mu.Unlock()

		c.wg.Add(1)
		go c.consume(collection, sub)
	}
}

func (c *Cache) consume(collection string, sub ledger.Subscription) {
	defer c.wg.Done()
	for docs := range sub.Updates() {
		c.mu.Lock()
		c.data[collection] = docs
		c.loaded[collection] = true
		delete(c.stale, collection)
		c.mu.Unlock()

		if c.local != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := c.local.Save(ctx, c.userID, collection, docs); err != nil {
				c.log.Warn("local snapshot save failed",
					zap.String("collection", collection),
					zap.Error(err))
			}
			cancel()
		}
	}
}

func (c *Cache) loadFromLocal(ctx context.Context, collection string) {
	if c.local == nil {
		return
	}
	docs, at, err := c.local.Load(ctx, c.userID, collection)
	if err != nil {
		if err != shared.ErrOfflineNoCache {
			c.log.Error("local snapshot load failed",
				zap.String("collection", collection),
				zap.Error(err))
		}
		return
	}
	c.mu.Lock()
	c.data[collection] = docs
	c.loaded[collection] = true
	c.stale[collection] = at
	c.mu.Unlock()
}

// Stop ends every subscription and waits for the feeds to drain
func (c *Cache) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, sub := range subs {
		sub.Stop()
	}
	c.wg.Wait()
}

// Snapshot returns the current documents of a collection. The second return
// reports whether the data came from the stale offline snapshot (zero time
// means live). Returns ErrOfflineNoCache when nothing has loaded yet.
func (c *Cache) Snapshot(collection string) ([]ledger.Document, time.Time, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded[collection] {
		return nil, time.Time{}, shared.ErrOfflineNoCache
	}
	return c.data[collection], c.stale[collection], nil
}

// Loaded reports whether every collection has produced a snapshot
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, collection := range ledger.Collections() {
		if !c.loaded[collection] {
			return false
		}
	}
	return true
}

// Typed accessors decode the raw snapshots into entities.

func (c *Cache) Sales() ([]ledger.Sale, error) {
	docs, _, err := c.Snapshot(ledger.CollectionSales)
	if err != nil {
		return nil, err
	}
	return ledger.DecodeAll(docs, ledger.SaleFromDocument), nil
}

func (c *Cache) Debts() ([]ledger.Debt, error) {
	docs, _, err := c.Snapshot(ledger.CollectionDebts)
	if err != nil {
		return nil, err
	}
	return ledger.DecodeAll(docs, ledger.DebtFromDocument), nil
}

func (c *Cache) Expenses() ([]ledger.Expense, error) {
	docs, _, err := c.Snapshot(ledger.CollectionExpenses)
	if err != nil {
		return nil, err
	}
	return ledger.DecodeAll(docs, ledger.ExpenseFromDocument), nil
}

func (c *Cache) Supplies() ([]ledger.Supply, error) {
	docs, _, err := c.Snapshot(ledger.CollectionSupplies)
	if err != nil {
		return nil, err
	}
	return ledger.DecodeAll(docs, ledger.SupplyFromDocument), nil
}

func (c *Cache) Clients() ([]ledger.Client, error) {
	docs, _, err := c.Snapshot(ledger.CollectionClients)
	if err != nil {
		return nil, err
	}
	return ledger.DecodeAll(docs, ledger.ClientFromDocument), nil
}

func (c *Cache) Products() ([]ledger.Product, error) {
	docs, _, err := c.Snapshot(ledger.CollectionProducts)
	if err != nil {
		return nil, err
	}
	return ledger.DecodeAll(docs, ledger.ProductFromDocument), nil
}

func (c *Cache) Categories() ([]ledger.Category, error) {
	docs, _, err := c.Snapshot(ledger.CollectionCategories)
	if err != nil {
		return nil, err
	}
	return ledger.DecodeAll(docs, ledger.CategoryFromDocument), nil
}

func (c *Cache) BankDeposits() ([]ledger.BankDeposit, error) {
	docs, _, err := c.Snapshot(ledger.CollectionBankDeposits)
	if err != nil {
		return nil, err
	}
	return ledger.DecodeAll(docs, ledger.BankDepositFromDocument), nil
}
