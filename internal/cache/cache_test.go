package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Total int64  `json:"total"`
}

func TestRoundTrip(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := New(client, time.Minute)
	ctx := context.Background()

	found, err := c.GetJSON(ctx, "k", &payload{})
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, c.SetJSON(ctx, "k", payload{Name: "a", Total: 42}))

	var got payload
	found, err = c.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, payload{Name: "a", Total: 42}, got)

	require.NoError(t, c.Invalidate(ctx, "k"))
	found, err = c.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	require.False(t, found)
}

func TestNilClientDisablesCaching(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	found, err := c.GetJSON(ctx, "k", &payload{})
	require.NoError(t, err)
	require.False(t, found)
	require.NoError(t, c.SetJSON(ctx, "k", payload{}))
	require.NoError(t, c.Invalidate(ctx, "k"))
}
