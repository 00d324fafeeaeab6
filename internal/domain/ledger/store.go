package ledger

import "context"

// Collection names. All data lives under a per-user partition following the
// path convention users/{userID}/{collection}.
const (
	CollectionSales        = "sales"
	CollectionClients      = "clients"
	CollectionProducts     = "products"
	CollectionSupplies     = "supplies"
	CollectionDebts        = "debts"
	CollectionExpenses     = "expenses"
	CollectionCategories   = "categories"
	CollectionBankDeposits = "bankDeposits"
)

// Collections returns every user-scoped collection name
func Collections() []string {
	return []string{
		CollectionSales,
		CollectionClients,
		CollectionProducts,
		CollectionSupplies,
		CollectionDebts,
		CollectionExpenses,
		CollectionCategories,
		CollectionBankDeposits,
	}
}

// Subscription is a live feed of full collection snapshots. The first snapshot
// arrives shortly after subscribing, then one per change. Stop ends the feed
// and closes the channel; no callbacks run afterwards.
type Subscription interface {
	Updates() <-chan []Document
	Stop()
}

// Store is the document database the books are kept in. Implementations push a
// fresh snapshot of a collection on every change.
type Store interface {
	// Snapshot returns the current contents of a collection
	Snapshot(ctx context.Context, userID, collection string) ([]Document, error)

	// Watch subscribes to live snapshots of a collection
	Watch(ctx context.Context, userID, collection string) (Subscription, error)

	// Get returns a single record by id
	Get(ctx context.Context, userID, collection, id string) (Document, error)

	// Find returns the records whose field equals value
	Find(ctx context.Context, userID, collection, field string, value any) ([]Document, error)

	// Insert stores a new record; the record carries its own id
	Insert(ctx context.Context, userID, collection string, record any) error

	// Update replaces an existing record
	Update(ctx context.Context, userID, collection, id string, record any) error

	// Delete removes a record by id
	Delete(ctx context.Context, userID, collection, id string) error
}
