package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryKVRoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, kv.Set(ctx, "resources", `[]`))
	val, ok, err := kv.Get(ctx, "resources")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[]`, val)

	require.NoError(t, kv.Delete(ctx, "resources"))
	_, ok, err = kv.Get(ctx, "resources")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryKVKeysByPrefix(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "responses_b", "[]"))
	require.NoError(t, kv.Set(ctx, "responses_a", "[]"))
	require.NoError(t, kv.Set(ctx, "resources", "[]"))

	keys, err := kv.Keys(ctx, "responses_")
	require.NoError(t, err)
	require.Equal(t, []string{"responses_a", "responses_b"}, keys)
}
