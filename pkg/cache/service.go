package cache

import "time"

// CacheService defines the behavior for caching mechanisms.
// The storefront uses it to memoize remote catalog responses so a hot
// listing page does not hammer the backend API.
type CacheService interface {
	// Get retrieves a value from the cache
	// Returns value, true if found
	Get(key string) (interface{}, bool)

	// Set adds a value to the cache with a TTL
	Set(key string, value interface{}, duration time.Duration)

	// Delete removes a value from the cache
	Delete(key string)

	// Flush removes all items
	Flush()
}
