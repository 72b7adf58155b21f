package domain

import "time"

// ProductSnapshot is the slice of a product a stored cart line or favorite
// needs for display. It is captured server-side when the item is added, so
// client payloads never dictate prices.
type ProductSnapshot struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Image     string  `json:"image"`
	UnitPrice float64 `json:"unitPrice"`
}

// CartLine is one product in the cart. At most one line exists per product ID;
// repeated adds merge into the existing line.
type CartLine struct {
	ProductSnapshot
	Quantity        int               `json:"quantity"`
	SelectedVariant *VariantSelection `json:"selectedVariant,omitempty"`
	AddedAt         time.Time         `json:"addedAt"`
}

// LineTotal treats a missing unit price as zero so a malformed stored line
// can never fail the aggregate.
func (l CartLine) LineTotal() float64 {
	if l.UnitPrice <= 0 {
		return 0
	}
	return l.UnitPrice * float64(l.Quantity)
}
