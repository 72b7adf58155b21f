package store

import (
	"sync"

	"mobimart-storefront/internal/domain"
	"mobimart-storefront/pkg/kv"
)

// Session bundles the stores owned by one visitor. Stores are created once
// per session and live for the lifetime of the process; their state lives in
// the KV backend, so a restart reconstructs them from the persisted keys.
type Session struct {
	ID        string
	Cart      *CartStore
	Favorites *FavoritesStore
	Prefs     *PrefsStore
}

// Manager hands out sessions keyed by the session cookie value. Each session
// ID maps to exactly one Session instance for the life of the process.
type Manager struct {
	mu       sync.Mutex
	kv       kv.Store
	maxQty   int
	sessions map[string]*Session
}

func NewManager(store kv.Store, maxCartQuantity int) *Manager {
	return &Manager{
		kv:       store,
		maxQty:   maxCartQuantity,
		sessions: make(map[string]*Session),
	}
}

// Session returns the stores for the given ID, constructing them on first
// use. Construction loads each store's persisted state exactly once.
func (m *Manager) Session(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s
	}

	s := &Session{
		ID:        id,
		Cart:      NewCartStore(m.kv, domain.CartKey(id), m.maxQty),
		Favorites: NewFavoritesStore(m.kv, domain.FavoritesKey(id)),
		Prefs:     NewPrefsStore(m.kv, domain.PrefsKey(id)),
	}
	m.sessions[id] = s
	return s
}
