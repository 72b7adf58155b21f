package kv

// Store is the minimal durable key-value port the session state rides on.
// Values are opaque strings (serialized JSON in practice). Implementations
// must be safe for concurrent use; last write wins.
//
// Get returns ("", false, nil) for a missing key so callers can tell
// "no saved state" apart from a backend failure.
type Store interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
	Delete(key string) error
}
