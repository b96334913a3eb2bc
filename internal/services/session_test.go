package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestSessionStore_RoundTrip(t *testing.T) {
	_, rdb := newTestRedis(t)
	store := NewSessionStore(rdb, time.Hour)
	ctx := context.Background()
	userID := uuid.New()

	token, err := store.CreateSession(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, ok, err := store.ValidateSession(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, userID, got)
}

func TestSessionStore_NewSessionReplacesOld(t *testing.T) {
	_, rdb := newTestRedis(t)
	store := NewSessionStore(rdb, time.Hour)
	ctx := context.Background()
	userID := uuid.New()

	first, err := store.CreateSession(ctx, userID)
	require.NoError(t, err)
	second, err := store.CreateSession(ctx, userID)
	require.NoError(t, err)

	_, ok, err := store.ValidateSession(ctx, first)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.ValidateSession(ctx, second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSessionStore_Expiry(t *testing.T) {
	mr, rdb := newTestRedis(t)
	store := NewSessionStore(rdb, time.Minute)
	ctx := context.Background()

	token, err := store.CreateSession(ctx, uuid.New())
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, ok, err := store.ValidateSession(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStore_UnknownAndEmptyToken(t *testing.T) {
	_, rdb := newTestRedis(t)
	store := NewSessionStore(rdb, time.Hour)

	_, ok, err := store.ValidateSession(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.ValidateSession(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStore_CorruptValue(t *testing.T) {
	mr, rdb := newTestRedis(t)
	require.NoError(t, mr.Set(SessionKeyPrefix+"tok", "not-a-uuid"))

	_, ok, err := NewSessionStore(rdb, time.Hour).ValidateSession(context.Background(), "tok")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestSessionStore_RedisDown(t *testing.T) {
	mr, rdb := newTestRedis(t)
	mr.Close()

	_, ok, err := NewSessionStore(rdb, time.Hour).ValidateSession(context.Background(), "tok")
	assert.Error(t, err)
	assert.False(t, ok)
}

type failingDel struct {
	*redis.Client
}

func (f failingDel) Del(ctx context.Context, _ ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	cmd.SetErr(errors.New("READONLY You can't write against a read only replica"))
	return cmd
}

func TestSessionStore_RevokeFailureIsReturned(t *testing.T) {
	_, rdb := newTestRedis(t)
	ctx := context.Background()
	userID := uuid.New()

	first, err := NewSessionStore(rdb, time.Hour).CreateSession(ctx, userID)
	require.NoError(t, err)

	_, err = NewSessionStore(failingDel{rdb}, time.Hour).CreateSession(ctx, userID)
	require.Error(t, err)

	// The old token stays the user's only session; no second token was stored.
	got, ok, err := NewSessionStore(rdb, time.Hour).ValidateSession(ctx, first)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, userID, got)
}
