package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/planventa/planning-system/internal/core/domain"
	"github.com/planventa/planning-system/internal/core/ports"
)

const secretBytes = 32

// APIKeyService mints and revokes opaque API keys. Secrets are 32 random
// bytes, base64url-encoded behind the pv_ prefix; only the SHA-256 hash is
// stored, so a minted secret can never be read back.
type APIKeyService struct {
	store ports.CredentialStore
	audit ports.AuditSink
	now   func() time.Time
}

func NewAPIKeyService(store ports.CredentialStore, audit ports.AuditSink) *APIKeyService {
	return &APIKeyService{store: store, audit: audit, now: time.Now}
}

// Mint creates a key for the user and returns the clear secret exactly once.
// A ttl of zero means the key never expires.
func (s *APIKeyService) Mint(ctx context.Context, userID int64, name string, ttl time.Duration) (string, *domain.APIKey, error) {
	raw := make([]byte, secretBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", nil, fmt.Errorf("generate secret: %w", err)
	}
	secret := domain.APIKeyPrefix + base64.RawURLEncoding.EncodeToString(raw)

	now := s.now().UTC()
	key := &domain.APIKey{
		UserID:     userID,
		SecretHash: hashSecret(secret),
		Name:       name,
		CreatedAt:  now,
	}
	if ttl > 0 {
		exp := now.Add(ttl)
		key.ExpiresAt = &exp
	}

	if err := s.store.Insert(ctx, key); err != nil {
		return "", nil, fmt.Errorf("store api key: %w", err)
	}

	s.audit.Record(domain.AuditEvent{
		Action: domain.AuditKeyMinted,
		UserID: userID,
		Detail: name,
		At:     now,
	})
	return secret, key, nil
}

// Revoke deletes the key; in-flight requests already resolved with it are
// unaffected.
func (s *APIKeyService) Revoke(ctx context.Context, keyID string) error {
	if err := s.store.Revoke(ctx, keyID); err != nil {
		return err
	}
	s.audit.Record(domain.AuditEvent{
		Action: domain.AuditKeyRevoked,
		Detail: keyID,
		At:     s.now().UTC(),
	})
	return nil
}

// hashSecret is the storage and lookup form of an API-key secret.
func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
