package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *Redis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, New(client, time.Minute)
}

func TestRedis_SetGet(t *testing.T) {
	mr, r := setupRedis(t)
	ctx := context.Background()

	type payload struct {
		Title string `json:"title"`
		Price float64
	}
	require.NoError(t, r.Set(ctx, "product:1", payload{Title: "Corolla", Price: 4500}))

	var got payload
	require.NoError(t, r.Get(ctx, "product:1", &got))
	assert.Equal(t, payload{Title: "Corolla", Price: 4500}, got)
	assert.Equal(t, time.Minute, mr.TTL("product:1"))

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, r.Get(ctx, "product:1", &got), ErrMiss)
}

func TestRedis_Miss(t *testing.T) {
	_, r := setupRedis(t)
	var v map[string]any
	assert.ErrorIs(t, r.Get(context.Background(), "nope", &v), ErrMiss)
}

func TestRedis_DeleteByPattern(t *testing.T) {
	mr, r := setupRedis(t)
	ctx := context.Background()

	id := uuid.New()
	for i := 0; i < 150; i++ {
		require.NoError(t, mr.Set(ProductListKey(uuid.NewString()), "x"))
	}
	require.NoError(t, r.Set(ctx, ProductKey(id), "detail"))

	require.NoError(t, r.DeleteByPattern(ctx, ProductListPattern))
	assert.Len(t, mr.Keys(), 1)
	assert.True(t, mr.Exists(ProductKey(id)))

	require.NoError(t, r.Delete(ctx, ProductKey(id)))
	assert.Empty(t, mr.Keys())
}

func TestNoop(t *testing.T) {
	var c Noop
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", 1))
	var v int
	assert.ErrorIs(t, c.Get(ctx, "k", &v), ErrMiss)
	assert.NoError(t, c.DeleteByPattern(ctx, ProductListPattern))
}
