package identity

import (
	"github.com/rml/bookkeeper/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Account is a login identity. Every account owns an isolated partition of the
// bookkeeping collections.
type Account struct {
	shared.BaseEntity `bson:",inline"`
	Email             string `bson:"email" json:"email"`
	Name              string `bson:"name" json:"name"`
	PasswordHash      string `bson:"password_hash" json:"-"`
}

// NewAccount creates an account with a bcrypt-hashed password
func NewAccount(email, name, password string) (*Account, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Account{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}, nil
}

// CheckPassword verifies a candidate password against the stored hash
func (a *Account) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}
