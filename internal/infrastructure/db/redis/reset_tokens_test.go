package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeclock/timeclock-api/internal/core/domain"
)

func newTestStore(t *testing.T, ttl time.Duration) (*ResetTokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewResetTokenStore(client, ttl), mr
}

func TestResetTokenStore_SaveAndConsume(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "u1", "tok-1"))
	assert.True(t, mr.Exists("reset:tok-1"))
	assert.Equal(t, time.Hour, mr.TTL("reset:tok-1"))

	userID, err := store.Consume(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	_, err = store.Consume(ctx, "tok-1")
	assert.ErrorIs(t, err, domain.ErrInvalidResetToken)
}

func TestResetTokenStore_UnknownToken(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	_, err := store.Consume(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidResetToken)
}

func TestResetTokenStore_Expires(t *testing.T) {
	store, mr := newTestStore(t, 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "u1", "tok-1"))
	mr.FastForward(11 * time.Minute)

	_, err := store.Consume(ctx, "tok-1")
	assert.ErrorIs(t, err, domain.ErrInvalidResetToken)
}

func TestResetTokenStore_NewTokenRevokesPrevious(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "u1", "tok-1"))
	require.NoError(t, store.Save(ctx, "u1", "tok-2"))
	require.NoError(t, store.Save(ctx, "u2", "tok-3"))

	_, err := store.Consume(ctx, "tok-1")
	assert.ErrorIs(t, err, domain.ErrInvalidResetToken)

	userID, err := store.Consume(ctx, "tok-2")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	userID, err = store.Consume(ctx, "tok-3")
	require.NoError(t, err)
	assert.Equal(t, "u2", userID)
}

func TestNewResetTokenStore_DefaultTTL(t *testing.T) {
	store := NewResetTokenStore(nil, 0)
	assert.Equal(t, defaultResetTTL, store.ttl)
}
