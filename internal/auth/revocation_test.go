package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRevocations_Revoke(t *testing.T) {
	client, mock := redismock.NewClientMock()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRedisRevocations(client)
	r.now = func() time.Time { return base }

	mock.ExpectSet("ticketboard:revoked:tok-1", "1", 30*time.Minute).SetVal("OK")

	require.NoError(t, r.Revoke(context.Background(), "tok-1", base.Add(30*time.Minute)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRevocations_RevokeExpiredIsNoop(t *testing.T) {
	client, mock := redismock.NewClientMock()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRedisRevocations(client)
	r.now = func() time.Time { return base }

	require.NoError(t, r.Revoke(context.Background(), "tok-1", base.Add(-time.Second)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRevocations_IsRevoked(t *testing.T) {
	client, mock := redismock.NewClientMock()
	r := NewRedisRevocations(client)

	mock.ExpectExists("ticketboard:revoked:tok-1").SetVal(1)
	mock.ExpectExists("ticketboard:revoked:tok-2").SetVal(0)
	mock.ExpectExists("ticketboard:revoked:tok-3").SetErr(errors.New("connection refused"))

	revoked, err := r.IsRevoked(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = r.IsRevoked(context.Background(), "tok-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	_, err = r.IsRevoked(context.Background(), "tok-3")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryRevocations(t *testing.T) {
	m := NewMemoryRevocations()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Revoke(ctx, "tok-1", now.Add(time.Minute)))
	revoked, _ := m.IsRevoked(ctx, "tok-1")
	assert.True(t, revoked)

	revoked, _ = m.IsRevoked(ctx, "tok-2")
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, _ = m.IsRevoked(ctx, "tok-1")
	assert.False(t, revoked)

	require.NoError(t, m.Revoke(ctx, "tok-3", now.Add(time.Minute)))
	assert.NotContains(t, m.revoked, "tok-1", "expired entries are pruned on revoke")
}
