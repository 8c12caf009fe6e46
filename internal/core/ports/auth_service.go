package ports

import (
	"context"
	"time"

	"github.com/planventa/planning-system/internal/core/domain"
)

// AuthService implements the email/password login surface. Login returns a
// signed session JWT whose subject is the user id.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// APIKeyService mints and revokes opaque API keys. The clear secret is
// returned exactly once, at mint time.
type APIKeyService interface {
	Mint(ctx context.Context, userID int64, name string, ttl time.Duration) (string, *domain.APIKey, error)
	Revoke(ctx context.Context, keyID string) error
}
