package storage

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(0, zerolog.Nop())

	doc := []byte(`{"name":"Tee","price":999}`)
	require.NoError(t, kv.Set(ctx, KeyProducts, doc))

	got, err := kv.Get(ctx, KeyProducts)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestMemoryGetAbsentKey(t *testing.T) {
	kv := NewMemory(0, zerolog.Nop())

	_, err := kv.Get(context.Background(), KeyCartItems)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryQuota(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(10, zerolog.Nop())

	err := kv.Set(ctx, "k", []byte("0123456789ab"))
	require.ErrorIs(t, err, ErrQuotaExceeded)

	// The rejected write must not mutate the store.
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	// Replacing a document frees its previous bytes.
	require.NoError(t, kv.Set(ctx, "k", []byte("0123456789")))
	require.NoError(t, kv.Set(ctx, "k", []byte("abcdefghij")))
}

func TestMemoryRemove(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(0, zerolog.Nop())

	require.NoError(t, kv.Set(ctx, "k", []byte(`1`)))
	require.NoError(t, kv.Remove(ctx, "k"))

	_, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing an absent key is not an error.
	assert.NoError(t, kv.Remove(ctx, "k"))
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(0, zerolog.Nop())

	require.NoError(t, kv.Set(ctx, "k", []byte(`"aa"`)))

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	got[1] = 'z'

	again, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"aa"`), again)
}

func TestGetSetJSON(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(0, zerolog.Nop())

	type doc struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}

	in := doc{Name: "Tee", Price: 999}
	require.NoError(t, SetJSON(ctx, kv, "d", in))

	var out doc
	require.NoError(t, GetJSON(ctx, kv, "d", &out))
	assert.Equal(t, in, out)
}

func TestGetJSONCorruptDocument(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(0, zerolog.Nop())

	require.NoError(t, kv.Set(ctx, "d", []byte(`{not json`)))

	var out map[string]any
	err := GetJSON(ctx, kv, "d", &out)
	assert.ErrorIs(t, err, ErrStorageFailure)
}

func TestMemoryKeys(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(0, zerolog.Nop())

	require.NoError(t, kv.Set(ctx, KeyProducts, []byte(`[]`)))
	require.NoError(t, kv.Set(ctx, KeyCoupons, []byte(`[]`)))

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{KeyProducts, KeyCoupons}, keys)
}
