package store

import (
	"sync"
	"time"

	"github.com/goccy/go-json"

	"mobimart-storefront/internal/domain"
	"mobimart-storefront/pkg/kv"
	"mobimart-storefront/pkg/logger"
)

// FavoritesStore owns the liked-products set for one session. Same shape as
// CartStore but with set semantics: no quantities, duplicate adds are no-ops.
type FavoritesStore struct {
	mu      sync.Mutex
	kv      kv.Store
	key     string
	loaded  bool
	entries []domain.FavoriteEntry
}

func NewFavoritesStore(store kv.Store, key string) *FavoritesStore {
	f := &FavoritesStore{kv: store, key: key}
	f.load()
	return f
}

func (f *FavoritesStore) load() {
	defer func() { f.loaded = true }()

	raw, found, err := f.kv.Get(f.key)
	if err != nil {
		logger.Warn().Err(err).Str("key", f.key).Msg("Failed to load favorites state, starting empty")
		return
	}
	if !found || raw == "" {
		return
	}

	var entries []domain.FavoriteEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logger.Warn().Err(err).Str("key", f.key).Msg("Discarding corrupt favorites state")
		return
	}
	f.entries = entries
}

// Callers must hold f.mu.
func (f *FavoritesStore) persist() {
	if !f.loaded {
		return
	}
	data, err := json.Marshal(f.entries)
	if err != nil {
		logger.Error().Err(err).Str("key", f.key).Msg("Failed to serialize favorites state")
		return
	}
	if err := f.kv.Set(f.key, string(data)); err != nil {
		logger.Error().Err(err).Str("key", f.key).Msg("Failed to persist favorites state")
	}
}

// Add appends the product unless it is already present.
func (f *FavoritesStore) Add(snapshot domain.ProductSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.addLocked(snapshot)
}

func (f *FavoritesStore) addLocked(snapshot domain.ProductSnapshot) {
	if f.containsLocked(snapshot.ProductID) {
		return
	}
	f.entries = append(f.entries, domain.FavoriteEntry{
		ProductSnapshot: snapshot,
		AddedAt:         time.Now().UTC(),
	})
	f.persist()
}

// Remove drops the product if present, else no-op.
func (f *FavoritesStore) Remove(productID string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.removeLocked(productID)
}

func (f *FavoritesStore) removeLocked(productID string) {
	for i := range f.entries {
		if f.entries[i].ProductID == productID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			f.persist()
			return
		}
	}
}

// Toggle removes the product when present and adds it when absent. Returns
// the new presence state.
func (f *FavoritesStore) Toggle(snapshot domain.ProductSnapshot) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.containsLocked(snapshot.ProductID) {
		f.removeLocked(snapshot.ProductID)
		return false
	}
	f.addLocked(snapshot)
	return true
}

// Contains reports whether the product is favorited.
func (f *FavoritesStore) Contains(productID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.containsLocked(productID)
}

func (f *FavoritesStore) containsLocked(productID string) bool {
	for i := range f.entries {
		if f.entries[i].ProductID == productID {
			return true
		}
	}
	return false
}

// Clear empties the set.
func (f *FavoritesStore) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = nil
	f.persist()
}

// Entries returns a copy of the favorites in insertion order.
func (f *FavoritesStore) Entries() []domain.FavoriteEntry {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := make([]domain.FavoriteEntry, len(f.entries))
	copy(entries, f.entries)
	return entries
}
