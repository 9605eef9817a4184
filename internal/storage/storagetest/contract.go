// Package storagetest holds the behavior every storage driver must share.
// Driver tests call Run with a constructor for a fresh, empty store.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Store mirrors storage.Store minus Close.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

type updater interface {
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error
}

const collectionKey = "@fromHook:cadastro"

// Run exercises newStore against the shared key-value contract. When the
// store also implements Update, the atomic update contract is checked too.
func Run(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()

	t.Run("get absent key", func(t *testing.T) {
		s := newStore(t)
		v, err := s.Get(context.Background(), "missing")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		payload := []byte(`[{"id":"1","nome":"Ana"}]`)

		require.NoError(t, s.Set(ctx, collectionKey, payload))

		v, err := s.Get(ctx, collectionKey)
		require.NoError(t, err)
		assert.Equal(t, payload, v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "k", []byte("v1")))
		require.NoError(t, s.Set(ctx, "k", []byte("v2")))

		v, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), v)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "k", []byte("v")))
		require.NoError(t, s.Delete(ctx, "k"))
		require.NoError(t, s.Delete(ctx, "k"))

		v, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("list and clear", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		require.NoError(t, s.Set(ctx, collectionKey, []byte("[]")))
		require.NoError(t, s.Set(ctx, "other", []byte("x")))

		all, err = s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string][]byte{collectionKey: []byte("[]"), "other": []byte("x")}, all)

		require.NoError(t, s.Clear(ctx))

		all, err = s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("update", func(t *testing.T) {
		s := newStore(t)
		u, ok := s.(updater)
		if !ok {
			t.Skip("store has no atomic update")
		}
		ctx := context.Background()

		require.NoError(t, u.Update(ctx, "k", func(cur []byte) ([]byte, error) {
			assert.Nil(t, cur)
			return []byte("a"), nil
		}))
		require.NoError(t, u.Update(ctx, "k", func(cur []byte) ([]byte, error) {
			return append(cur, 'b'), nil
		}))

		v, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("ab"), v)

		boom := errors.New("boom")
		err = u.Update(ctx, "k", func(cur []byte) ([]byte, error) {
			return []byte("lost"), boom
		})
		require.ErrorIs(t, err, boom)

		v, err = s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("ab"), v, "failed update must not write")
	})
}
