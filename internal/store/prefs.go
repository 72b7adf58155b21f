package store

import (
	"sync"

	"github.com/goccy/go-json"

	"mobimart-storefront/internal/domain"
	"mobimart-storefront/pkg/kv"
	"mobimart-storefront/pkg/logger"
)

// PrefsStore keeps the session's presentation preferences (currently just the
// theme toggle) under the same load-once, write-through contract as the cart.
type PrefsStore struct {
	mu     sync.Mutex
	kv     kv.Store
	key    string
	loaded bool
	prefs  domain.Preferences
}

func NewPrefsStore(store kv.Store, key string) *PrefsStore {
	p := &PrefsStore{kv: store, key: key, prefs: domain.DefaultPreferences()}
	p.load()
	return p
}

func (p *PrefsStore) load() {
	defer func() { p.loaded = true }()

	raw, found, err := p.kv.Get(p.key)
	if err != nil {
		logger.Warn().Err(err).Str("key", p.key).Msg("Failed to load preferences, using defaults")
		return
	}
	if !found || raw == "" {
		return
	}

	var prefs domain.Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		logger.Warn().Err(err).Str("key", p.key).Msg("Discarding corrupt preferences")
		return
	}
	if prefs.Theme != domain.ThemeLight && prefs.Theme != domain.ThemeDark {
		prefs.Theme = domain.ThemeLight
	}
	p.prefs = prefs
}

// Get returns the current preferences.
func (p *PrefsStore) Get() domain.Preferences {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.prefs
}

// SetTheme stores the theme. Unknown values fall back to light.
func (p *PrefsStore) SetTheme(theme string) domain.Preferences {
	p.mu.Lock()
	defer p.mu.Unlock()

	if theme != domain.ThemeLight && theme != domain.ThemeDark {
		theme = domain.ThemeLight
	}
	p.prefs.Theme = theme
	p.persist()
	return p.prefs
}

// Callers must hold p.mu.
func (p *PrefsStore) persist() {
	if !p.loaded {
		return
	}
	data, err := json.Marshal(p.prefs)
	if err != nil {
		logger.Error().Err(err).Str("key", p.key).Msg("Failed to serialize preferences")
		return
	}
	if err := p.kv.Set(p.key, string(data)); err != nil {
		logger.Error().Err(err).Str("key", p.key).Msg("Failed to persist preferences")
	}
}
