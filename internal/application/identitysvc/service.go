package identitysvc

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rml/bookkeeper/internal/domain/identity"
	"github.com/rml/bookkeeper/internal/domain/shared"
	"github.com/rml/bookkeeper/internal/infrastructure/config"
	"go.uber.org/zap"
)

// AccountRepository is the persistence the service needs
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*identity.Account, error)
	FindByID(ctx context.Context, id string) (*identity.Account, error)
	Insert(ctx context.Context, account *identity.Account) error
}

// Claims is the JWT payload issued at login
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Service handles registration, login and token verification
type Service struct {
	accounts AccountRepository
	cfg      config.JWTConfig
	log      *zap.Logger
}

// NewService creates the identity service
func NewService(accounts AccountRepository, cfg config.JWTConfig, log *zap.Logger) *Service {
	return &Service{accounts: accounts, cfg: cfg, log: log.Named("identity")}
}

// Register creates a new account
func (s *Service) Register(ctx context.Context, email, name, password string) (*identity.Account, error) {
	account, err := identity.NewAccount(email, name, password)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.Insert(ctx, account); err != nil {
		return nil, err
	}
	s.log.Info("account registered", zap.String("account_id", account.ID))
	return account, nil
}

// Login verifies the credentials and issues a signed token. Bad email and bad
// password produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (string, *identity.Account, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, shared.ErrNotFound) {
		return "", nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	if err != nil {
		return "", nil, err
	}
	if !account.CheckPassword(password) {
		return "", nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiration)),
		},
		Email: account.Email,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", nil, err
	}

	s.log.Info("login", zap.String("account_id", account.ID))
	return token, account, nil
}

// VerifyToken parses a token and returns the account id it was issued to
func (s *Service) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, shared.ErrUnauthorized
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithIssuer(s.cfg.Issuer))
	if err != nil || !token.Valid {
		return "", shared.ErrUnauthorized
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return "", shared.ErrUnauthorized
	}
	return claims.Subject, nil
}
