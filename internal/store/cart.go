// Package store holds the per-session client state the storefront owns
// itself: the cart, the favorites set and presentation preferences. Each
// store keeps an authoritative in-memory collection and writes it through to
// the key-value port on every change.
package store

import (
	"sync"
	"time"

	"github.com/goccy/go-json"

	"mobimart-storefront/internal/domain"
	"mobimart-storefront/pkg/kv"
	"mobimart-storefront/pkg/logger"
)

// CartStore owns the cart line list for one session. At most one line exists
// per product ID; adds merge, updates replace. All mutations are synchronous
// and write the full serialized list back under the store's key.
type CartStore struct {
	mu     sync.Mutex
	kv     kv.Store
	key    string
	maxQty int
	loaded bool
	lines  []domain.CartLine
}

// NewCartStore reads the persisted state exactly once. Corrupt or unreadable
// state is discarded with a log line and the cart starts empty; construction
// never fails.
func NewCartStore(store kv.Store, key string, maxQty int) *CartStore {
	c := &CartStore{kv: store, key: key, maxQty: maxQty}
	c.load()
	return c
}

func (c *CartStore) load() {
	defer func() { c.loaded = true }()

	raw, found, err := c.kv.Get(c.key)
	if err != nil {
		logger.Warn().Err(err).Str("key", c.key).Msg("Failed to load cart state, starting empty")
		return
	}
	if !found || raw == "" {
		return
	}

	var lines []domain.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		logger.Warn().Err(err).Str("key", c.key).Msg("Discarding corrupt cart state")
		return
	}
	c.lines = lines
}

// persist writes the whole list back. Writes are suppressed until the initial
// load has run so a half-constructed store cannot clobber saved state.
// Callers must hold c.mu.
func (c *CartStore) persist() {
	if !c.loaded {
		return
	}
	data, err := json.Marshal(c.lines)
	if err != nil {
		logger.Error().Err(err).Str("key", c.key).Msg("Failed to serialize cart state")
		return
	}
	if err := c.kv.Set(c.key, string(data)); err != nil {
		logger.Error().Err(err).Str("key", c.key).Msg("Failed to persist cart state")
	}
}

// Add puts a product in the cart. If a line for the product already exists
// its quantity is incremented; otherwise a new line is appended. Quantity is
// clamped to at least 1 and at most the configured per-line maximum.
func (c *CartStore) Add(snapshot domain.ProductSnapshot, quantity int, selected *domain.VariantSelection) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}

	for i := range c.lines {
		if c.lines[i].ProductID == snapshot.ProductID {
			c.lines[i].Quantity = c.clampQty(c.lines[i].Quantity + quantity)
			if selected != nil {
				c.lines[i].SelectedVariant = selected
			}
			c.persist()
			return
		}
	}

	c.lines = append(c.lines, domain.CartLine{
		ProductSnapshot: snapshot,
		Quantity:        c.clampQty(quantity),
		SelectedVariant: selected,
		AddedAt:         time.Now().UTC(),
	})
	c.persist()
}

// Remove drops the line for productID. Removing an absent product is a no-op.
func (c *CartStore) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(productID)
}

func (c *CartStore) removeLocked(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.persist()
			return
		}
	}
}

// SetQuantity replaces the line's quantity. A quantity of zero or below
// removes the line instead.
func (c *CartStore) SetQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(productID)
		return
	}

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = c.clampQty(quantity)
			c.persist()
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *CartStore) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	c.persist()
}

// Contains reports whether the product has a line in the cart.
func (c *CartStore) Contains(productID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return true
		}
	}
	return false
}

// Total sums unit price times quantity over all lines. Malformed lines count
// as zero rather than failing the aggregate.
func (c *CartStore) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for i := range c.lines {
		total += c.lines[i].LineTotal()
	}
	return total
}

// Count sums line quantities. Distinct from the number of lines.
func (c *CartStore) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int
	for i := range c.lines {
		count += c.lines[i].Quantity
	}
	return count
}

// Lines returns a copy of the cart lines in insertion order.
func (c *CartStore) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]domain.CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *CartStore) clampQty(quantity int) int {
	if c.maxQty > 0 && quantity > c.maxQty {
		return c.maxQty
	}
	return quantity
}
