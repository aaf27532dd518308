package blacklist

import (
	"context"
	"sync"
	"time"
)

var _ Blacklist = (*MemoryBlacklist)(nil)

// MemoryBlacklist is an in-process Blacklist for tests and single
// instance development setups.
type MemoryBlacklist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time

	// Err, when set, is returned by every operation.
	Err error
}

// NewMemoryBlacklist creates an empty in-memory blacklist.
func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{revoked: make(map[string]time.Time)}
}

func (b *MemoryBlacklist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if b.Err != nil {
		return b.Err
	}
	if jti == "" || ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (b *MemoryBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	if b.Err != nil {
		return false, b.Err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	expiry, ok := b.revoked[jti]
	if !ok {
		return false, nil
	}
	return time.Now().Before(expiry), nil
}
