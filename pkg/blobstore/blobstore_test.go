package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_ReadYourWrites(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "orders")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "orders", []byte(`{"v":1}`)))
	data, ok, err := store.Get(ctx, "orders")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"v":1}`, string(data))

	// Overwrite replaces the whole value.
	require.NoError(t, store.Put(ctx, "orders", []byte(`{"v":2}`)))
	data, _, err = store.Get(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(data))
}

func TestFileStore_Delete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "cart.u1", []byte(`[]`)))
	require.NoError(t, store.Delete(ctx, "cart.u1"))

	_, ok, err := store.Get(ctx, "cart.u1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing key is a no-op.
	require.NoError(t, store.Delete(ctx, "cart.u1"))
}

func TestFileStore_SanitizesKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := "cart.user/with:odd chars"
	require.NoError(t, store.Put(ctx, key, []byte(`[]`)))
	data, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(data))
}

func TestMemStore(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "k", []byte("v")))
	data, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", string(data))

	// The store holds its own copy.
	data[0] = 'x'
	data, _, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(data))

	require.NoError(t, store.Delete(ctx, "k"))
	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
