package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "ticketboard:revoked:"

// RevocationList records tokens that were logged out before they expired.
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisRevocations keeps revoked token ids as expiring Redis keys so that every
// instance sharing the Redis sees the logout.
type RedisRevocations struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisRevocations wraps a connected client.
func NewRedisRevocations(client *redis.Client) *RedisRevocations {
	return &RedisRevocations{client: client, now: time.Now}
}

func (r *RedisRevocations) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
}

func (r *RedisRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryRevocations is the single-process fallback used without Redis.
type MemoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocations creates an empty list.
func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{revoked: map[string]time.Time{}, now: time.Now}
}

func (m *MemoryRevocations) Revoke(_ context.Context, tokenID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, exp := range m.revoked {
		if !exp.After(now) {
			delete(m.revoked, id)
		}
	}
	if until.After(now) {
		m.revoked[tokenID] = until
	}
	return nil
}

func (m *MemoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.revoked[tokenID]
	return ok && exp.After(m.now()), nil
}
