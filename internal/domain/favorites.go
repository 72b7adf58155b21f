package domain

import "time"

// FavoriteEntry is one liked product. Entries form a set keyed by product ID:
// adding a product twice is a no-op.
type FavoriteEntry struct {
	ProductSnapshot
	AddedAt time.Time `json:"addedAt"`
}
