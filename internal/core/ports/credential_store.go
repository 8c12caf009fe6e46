package ports

import (
	"context"

	"github.com/planventa/planning-system/internal/core/domain"
)

// CredentialStore persists API keys and answers secret lookups. A lookup
// must treat an expired key exactly like an absent one: both return
// domain.ErrInvalidCredential, so callers cannot tell the cases apart.
type CredentialStore interface {
	// LookupSecretHash returns the key whose stored hash matches, if it is
	// currently valid.
	LookupSecretHash(ctx context.Context, secretHash string) (*domain.APIKey, error)
	Insert(ctx context.Context, key *domain.APIKey) error
	Revoke(ctx context.Context, keyID string) error
}
