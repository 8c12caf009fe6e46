package domain

import "time"

// APIKeyPrefix marks opaque API-key secrets issued by this service. The
// request guard uses it to tell API keys apart from session JWTs.
const APIKeyPrefix = "pv_"

// APIKey is an opaque credential bound to exactly one user. Only the SHA-256
// hash of the secret is stored; the clear secret is returned once at mint
// time and never again. Keys are created administratively and looked up
// read-only on every request.
type APIKey struct {
	ID         string
	UserID     int64
	SecretHash string
	Name       string
	ExpiresAt  *time.Time
	CreatedAt  time.Time
}

// Expired reports whether the key is past its expiry at the given instant.
// Keys without an expiry never expire.
func (k *APIKey) Expired(now time.Time) bool {
	return k.ExpiresAt != nil && now.After(*k.ExpiresAt)
}
