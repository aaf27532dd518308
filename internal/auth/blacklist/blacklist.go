// Package blacklist tracks revoked refresh tokens by their JWT ID so a
// logged-out token cannot be replayed before it expires.
package blacklist

import (
	"context"
	"time"
)

// Blacklist is a shared revocation list for refresh tokens.
type Blacklist interface {
	// Revoke marks a token ID as revoked for the given TTL. The TTL
	// should cover the token's remaining lifetime; after that the
	// token is expired anyway and the entry can lapse.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	// IsRevoked reports whether a token ID has been revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
