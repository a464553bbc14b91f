package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", "v1"))
	require.NoError(t, m.Set(ctx, "k", "v2"))

	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
	assert.Equal(t, 1, m.Len())

	require.NoError(t, m.Delete(ctx, "k"))
	require.NoError(t, m.Delete(ctx, "k"))
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
	assert.NoError(t, m.Ping(ctx))
}

func TestPrefixed_NamespacesKeys(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	alice := ForClient(m, "alice")
	bob := ForClient(m, "bob")

	require.NoError(t, alice.Set(ctx, "cart", "[1]"))

	raw, ok, _ := m.Get(ctx, "client:alice:cart")
	require.True(t, ok)
	assert.Equal(t, "[1]", raw)

	_, ok, _ = bob.Get(ctx, "cart")
	assert.False(t, ok, "bob must not see alice's slot")

	v, ok, _ := alice.Get(ctx, "cart")
	assert.True(t, ok)
	assert.Equal(t, "[1]", v)

	require.NoError(t, alice.Delete(ctx, "cart"))
	assert.Equal(t, 0, m.Len())
	assert.NoError(t, bob.Ping(ctx))
}
