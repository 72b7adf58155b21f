// Package variant picks the single variant a product detail page should
// display for the shopper's current color/storage/region choice.
package variant

import "mobimart-storefront/internal/domain"

// Resolve selects exactly one in-stock variant for the given selection, or
// nil when the product has no in-stock variants at all.
//
// Matching falls through four tiers, each restricted to in-stock variants:
//
//  1. color + storage + region (an unselected field matches anything)
//  2. storage + region, ignoring color
//  3. storage only
//  4. any in-stock variant
//
// The looser tiers keep a price and availability on screen when the shopper's
// exact combination does not exist, e.g. a color that is sold out at the
// chosen storage size. Within a tier the first variant in inventory order
// wins; the order comes from the backend and is significant.
func Resolve(variants []domain.Variant, sel domain.VariantSelection) *domain.Variant {
	tiers := []func(domain.Variant) bool{
		func(v domain.Variant) bool {
			return matches(sel.Color, v.Color) && matches(sel.Storage, v.Storage) && matches(sel.Region, v.Region)
		},
		func(v domain.Variant) bool {
			return matches(sel.Storage, v.Storage) && matches(sel.Region, v.Region)
		},
		func(v domain.Variant) bool {
			return matches(sel.Storage, v.Storage)
		},
		func(v domain.Variant) bool {
			return true
		},
	}

	for _, tier := range tiers {
		for i := range variants {
			if !variants[i].InStock {
				continue
			}
			if tier(variants[i]) {
				v := variants[i]
				return &v
			}
		}
	}
	return nil
}

// matches treats an empty selection as a wildcard.
func matches(selected, value string) bool {
	return selected == "" || selected == value
}

// InitialSelection derives the default choice when a product's variants first
// load: for each attribute, the first distinct value observed among in-stock
// variants in inventory order. Attributes absent from every variant stay
// empty and are excluded from matching.
func InitialSelection(variants []domain.Variant) domain.VariantSelection {
	var sel domain.VariantSelection
	for i := range variants {
		if !variants[i].InStock {
			continue
		}
		if sel.Color == "" {
			sel.Color = variants[i].Color
		}
		if sel.Storage == "" {
			sel.Storage = variants[i].Storage
		}
		if sel.Region == "" {
			sel.Region = variants[i].Region
		}
		if sel.Color != "" && sel.Storage != "" && sel.Region != "" {
			break
		}
	}
	return sel
}

// DisplayPrice is the price the storefront shows: the resolved variant's sale
// price when a resolution exists, otherwise the product's base retail price
// adjusted by the product-level discount.
func DisplayPrice(p *domain.Product, resolved *domain.Variant) float64 {
	if resolved != nil {
		return resolved.SalePrice
	}

	price := p.RetailPrice
	switch p.DiscountType {
	case domain.DiscountPercentage:
		price -= price * p.Discount / 100
	case domain.DiscountFixed:
		price -= p.Discount
	}
	if price < 0 {
		return 0
	}
	return price
}
