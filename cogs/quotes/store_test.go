package quotes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(":memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

func TestStoreAddAndGet(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Add(t.Context(), -100123, "be excellent to each other", "Jane Doe")
	require.NoError(t, err)
	require.NotZero(t, id)

	quote, err := store.Get(t.Context(), -100123, id)
	require.NoError(t, err)
	assert.Equal(t, "be excellent to each other", quote.Text)
	assert.Equal(t, "Jane Doe", quote.AddedBy)
	assert.Equal(t, int64(-100123), quote.ChatID)
}

func TestStoreGetScopedToChat(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Add(t.Context(), -100123, "only here", "Jane Doe")
	require.NoError(t, err)

	_, err = store.Get(t.Context(), -100456, id)
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestStoreGetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(t.Context(), -100123, 999)
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestStoreRandom(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Random(t.Context(), -100123)
	require.ErrorIs(t, err, ErrQuoteNotFound)

	_, err = store.Add(t.Context(), -100123, "first", "Jane")
	require.NoError(t, err)
	_, err = store.Add(t.Context(), -100123, "second", "Jane")
	require.NoError(t, err)

	quote, err := store.Random(t.Context(), -100123)
	require.NoError(t, err)
	assert.Contains(t, []string{"first", "second"}, quote.Text)
}
