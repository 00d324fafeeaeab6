package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/rml/bookkeeper/internal/domain/identity"
	"github.com/rml/bookkeeper/internal/domain/shared"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const accountsCollection = "accounts"

// AccountRepository stores login identities. Accounts live outside the
// per-user partition since they define it.
type AccountRepository struct {
	col *mongo.Collection
	log *zap.Logger
}

// NewAccountRepository creates the repository
func NewAccountRepository(db *mongo.Database, log *zap.Logger) *AccountRepository {
	return &AccountRepository{
		col: db.Collection(accountsCollection),
		log: log.Named("accounts"),
	}
}

// FindByEmail looks up an account by its login email
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*identity.Account, error) {
	var account identity.Account
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &account, nil
}

// FindByID looks up an account by id
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*identity.Account, error) {
	var account identity.Account
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &account, nil
}

// Insert stores a new account, rejecting duplicate emails
func (r *AccountRepository) Insert(ctx context.Context, account *identity.Account) error {
	if _, err := r.FindByEmail(ctx, account.Email); err == nil {
		return shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if _, err := r.col.InsertOne(ctx, account); err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}
