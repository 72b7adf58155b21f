package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobimart-storefront/internal/domain"
	kvmem "mobimart-storefront/internal/infrastructure/kv"
)

func snap(id string, price float64) domain.ProductSnapshot {
	return domain.ProductSnapshot{
		ProductID: id,
		Name:      "Product " + id,
		Slug:      "product-" + id,
		Image:     "https://cdn.example.com/" + id + ".jpg",
		UnitPrice: price,
	}
}

func TestCartAddMergesDuplicates(t *testing.T) {
	cart := NewCartStore(kvmem.NewMemoryStore(), "cart:t", 0)

	cart.Add(snap("p1", 100), 1, nil)
	cart.Add(snap("p1", 100), 1, nil)

	lines := cart.Lines()
	require.Len(t, lines, 1, "duplicate add must merge, not append")
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, cart.Count())
}

func TestCartMergeThenReplace(t *testing.T) {
	cart := NewCartStore(kvmem.NewMemoryStore(), "cart:t", 0)

	cart.Add(snap("p1", 50), 2, nil)
	cart.Add(snap("p1", 50), 3, nil)
	assert.Equal(t, 5, cart.Count(), "add is additive")

	cart.SetQuantity("p1", 3)
	assert.Equal(t, 3, cart.Count(), "set replaces, not adds")
}

func TestCartZeroOrNegativeQuantityRemoves(t *testing.T) {
	for _, qty := range []int{0, -5} {
		cart := NewCartStore(kvmem.NewMemoryStore(), "cart:t", 0)
		cart.Add(snap("p1", 50), 2, nil)

		cart.SetQuantity("p1", qty)
		assert.False(t, cart.Contains("p1"))
		assert.Zero(t, cart.Count())
	}
}

func TestCartAddClampsQuantity(t *testing.T) {
	cart := NewCartStore(kvmem.NewMemoryStore(), "cart:t", 10)

	cart.Add(snap("p1", 50), -3, nil)
	assert.Equal(t, 1, cart.Count(), "non-positive add quantity becomes 1")

	cart.Add(snap("p1", 50), 500, nil)
	assert.Equal(t, 10, cart.Count(), "quantity is capped at the configured max")
}

func TestCartRemoveAbsentIsNoop(t *testing.T) {
	cart := NewCartStore(kvmem.NewMemoryStore(), "cart:t", 0)
	cart.Add(snap("p1", 50), 1, nil)

	cart.Remove("missing")
	assert.Equal(t, 1, cart.Count())
}

func TestCartTotalAndCount(t *testing.T) {
	cart := NewCartStore(kvmem.NewMemoryStore(), "cart:t", 0)

	cart.Add(snap("p1", 100), 2, nil)
	cart.Add(snap("p2", 59.5), 1, nil)
	cart.Add(snap("p3", 0), 4, nil) // missing price counts as zero

	assert.Equal(t, 7, cart.Count())
	assert.InDelta(t, 259.5, cart.Total(), 1e-9)
}

func TestCartClear(t *testing.T) {
	cart := NewCartStore(kvmem.NewMemoryStore(), "cart:t", 0)
	cart.Add(snap("p1", 100), 2, nil)
	cart.Add(snap("p2", 50), 1, nil)

	cart.Clear()
	assert.Zero(t, cart.Count())
	assert.Empty(t, cart.Lines())
}

func TestCartRoundTripPersistence(t *testing.T) {
	kv := kvmem.NewMemoryStore()

	cart := NewCartStore(kv, "cart:t", 0)
	cart.Add(snap("p1", 100), 2, nil)
	cart.Add(snap("p2", 50), 1, &domain.VariantSelection{Color: "Black", Storage: "128"})
	cart.Add(snap("p3", 10), 3, nil)

	reloaded := NewCartStore(kv, "cart:t", 0)
	assert.Equal(t, cart.Count(), reloaded.Count())
	assert.Equal(t, cart.Total(), reloaded.Total())

	lines := reloaded.Lines()
	require.Len(t, lines, 3)
	require.NotNil(t, lines[1].SelectedVariant)
	assert.Equal(t, "Black", lines[1].SelectedVariant.Color)
}

func TestCartCorruptStateRecoversEmpty(t *testing.T) {
	kv := kvmem.NewMemoryStore()
	require.NoError(t, kv.Set("cart:t", "{not json"))

	var cart *CartStore
	require.NotPanics(t, func() {
		cart = NewCartStore(kv, "cart:t", 0)
	})
	assert.Zero(t, cart.Count())

	// The store stays usable and overwrites the corrupt value on next write.
	cart.Add(snap("p1", 100), 1, nil)
	reloaded := NewCartStore(kv, "cart:t", 0)
	assert.Equal(t, 1, reloaded.Count())
}

func TestCartAddUpdatesSelectedVariant(t *testing.T) {
	cart := NewCartStore(kvmem.NewMemoryStore(), "cart:t", 0)

	cart.Add(snap("p1", 100), 1, &domain.VariantSelection{Color: "Black"})
	cart.Add(snap("p1", 100), 1, &domain.VariantSelection{Color: "White"})

	lines := cart.Lines()
	require.Len(t, lines, 1)
	require.NotNil(t, lines[0].SelectedVariant)
	assert.Equal(t, "White", lines[0].SelectedVariant.Color)
}
