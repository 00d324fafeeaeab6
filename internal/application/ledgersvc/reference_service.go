package ledgersvc

import (
	"context"

	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReferenceService maintains the lookup collections: clients, products and
// expense categories
type ReferenceService struct {
	store ledger.Store
	log   *zap.Logger
}

// NewReferenceService creates the service
func NewReferenceService(store ledger.Store, log *zap.Logger) *ReferenceService {
	return &ReferenceService{store: store, log: log.Named("references")}
}

// CreateClient adds a client to the lookup
func (s *ReferenceService) CreateClient(ctx context.Context, userID, name, phone string) (*ledger.Client, error) {
	client, err := ledger.NewClient(name, phone)
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, userID, ledger.CollectionClients, client); err != nil {
		return nil, err
	}
	return client, nil
}

// CreateProduct adds a product to the lookup
func (s *ReferenceService) CreateProduct(ctx context.Context, userID, name string, price decimal.Decimal) (*ledger.Product, error) {
	product, err := ledger.NewProduct(name, price)
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, userID, ledger.CollectionProducts, product); err != nil {
		return nil, err
	}
	return product, nil
}

// CreateCategory adds an expense category to the lookup
func (s *ReferenceService) CreateCategory(ctx context.Context, userID, name string) (*ledger.Category, error) {
	category, err := ledger.NewCategory(name)
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, userID, ledger.CollectionCategories, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteClient removes a client. Sales and debts referencing it keep their
// stored client name.
func (s *ReferenceService) DeleteClient(ctx context.Context, userID, clientID string) error {
	return s.store.Delete(ctx, userID, ledger.CollectionClients, clientID)
}

// DeleteProduct removes a product. Records referencing its id become
// unresolved and drop out of the per-product report sections.
func (s *ReferenceService) DeleteProduct(ctx context.Context, userID, productID string) error {
	return s.store.Delete(ctx, userID, ledger.CollectionProducts, productID)
}

// DeleteCategory removes an expense category. Expenses holding its id show
// the raw value until recategorized.
func (s *ReferenceService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	return s.store.Delete(ctx, userID, ledger.CollectionCategories, categoryID)
}
