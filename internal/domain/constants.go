package domain

// ContextKey is used for context value keys to avoid collisions
type ContextKey string

// SessionContextKey carries the per-visitor session through request contexts
const SessionContextKey ContextKey = "session"

// Persisted state layout: one independent entry per collection per session.
func CartKey(sessionID string) string      { return "cart:" + sessionID }
func FavoritesKey(sessionID string) string { return "favorites:" + sessionID }
func PrefsKey(sessionID string) string     { return "prefs:" + sessionID }
