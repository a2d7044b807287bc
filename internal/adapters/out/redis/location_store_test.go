package redis

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*LocationStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	store, err := NewLocationStore("redis://"+mr.Addr(), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store, mr
}

func TestLocationStore_SaveGet(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	ctx := context.Background()
	courierID := kernel.NewUUID()
	loc, err := kernel.NewLocation(-23.5613, -46.6565)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, courierID, loc))

	got, err := store.Get(ctx, courierID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, loc, *got)
}

func TestLocationStore_GetMiss(t *testing.T) {
	store, _ := newTestStore(t, 0)

	got, err := store.Get(context.Background(), kernel.NewUUID())

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestLocationStore_Expires(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()
	courierID := kernel.NewUUID()

	require.NoError(t, store.Save(ctx, courierID, kernel.DefaultLocation()))
	assert.Equal(t, time.Minute, mr.TTL(key(courierID)))

	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, courierID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLocationStore_DefaultTTL(t *testing.T) {
	store, mr := newTestStore(t, 0)
	courierID := kernel.NewUUID()

	require.NoError(t, store.Save(context.Background(), courierID, kernel.DefaultLocation()))

	assert.Equal(t, DefaultTTL, mr.TTL(key(courierID)))
}

func TestLocationStore_CorruptValue(t *testing.T) {
	store, mr := newTestStore(t, 0)
	courierID := kernel.NewUUID()
	require.NoError(t, mr.Set(key(courierID), "not json"))

	_, err := store.Get(context.Background(), courierID)

	assert.ErrorContains(t, err, "corrupt cached location")
}

func TestLocationStore_ConnectionError(t *testing.T) {
	store, mr := newTestStore(t, 0)
	mr.Close()

	_, err := store.Get(context.Background(), kernel.NewUUID())
	assert.Error(t, err)
	assert.Error(t, store.Ping(context.Background()))
}

func TestNewLocationStore_InvalidURL(t *testing.T) {
	_, err := NewLocationStore("http://nope", 0)

	assert.ErrorContains(t, err, "failed to parse Redis URL")
}
