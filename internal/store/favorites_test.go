package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kvmem "mobimart-storefront/internal/infrastructure/kv"
)

func TestFavoritesDuplicateAddIsNoop(t *testing.T) {
	favs := NewFavoritesStore(kvmem.NewMemoryStore(), "favorites:t")

	favs.Add(snap("p1", 100))
	favs.Add(snap("p1", 100))

	assert.Len(t, favs.Entries(), 1)
	assert.True(t, favs.Contains("p1"))
}

func TestFavoritesToggleSymmetry(t *testing.T) {
	favs := NewFavoritesStore(kvmem.NewMemoryStore(), "favorites:t")

	assert.False(t, favs.Contains("p1"))
	assert.True(t, favs.Toggle(snap("p1", 100)))
	assert.True(t, favs.Contains("p1"))
	assert.False(t, favs.Toggle(snap("p1", 100)))
	assert.False(t, favs.Contains("p1"), "two toggles return to the original state")
}

func TestFavoritesRemoveAbsentIsNoop(t *testing.T) {
	favs := NewFavoritesStore(kvmem.NewMemoryStore(), "favorites:t")
	favs.Add(snap("p1", 100))

	favs.Remove("missing")
	assert.Len(t, favs.Entries(), 1)
}

func TestFavoritesRoundTripPersistence(t *testing.T) {
	kv := kvmem.NewMemoryStore()

	favs := NewFavoritesStore(kv, "favorites:t")
	favs.Add(snap("p1", 100))
	favs.Add(snap("p2", 50))

	reloaded := NewFavoritesStore(kv, "favorites:t")
	entries := reloaded.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "p1", entries[0].ProductID)
	assert.Equal(t, "p2", entries[1].ProductID)
}

func TestFavoritesCorruptStateRecoversEmpty(t *testing.T) {
	kv := kvmem.NewMemoryStore()
	require.NoError(t, kv.Set("favorites:t", `[{"productId":`))

	var favs *FavoritesStore
	require.NotPanics(t, func() {
		favs = NewFavoritesStore(kv, "favorites:t")
	})
	assert.Empty(t, favs.Entries())
}

func TestFavoritesClear(t *testing.T) {
	favs := NewFavoritesStore(kvmem.NewMemoryStore(), "favorites:t")
	favs.Add(snap("p1", 100))
	favs.Add(snap("p2", 50))

	favs.Clear()
	assert.Empty(t, favs.Entries())
}
