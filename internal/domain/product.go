package domain

import "context"

type DiscountType string

const (
	DiscountPercentage DiscountType = "Percentage"
	DiscountFixed      DiscountType = "Fixed"
	DiscountNone       DiscountType = "None"
)

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
}

// Product is the catalog product as served by the remote backend. All data
// here is read-only to this service; the backend owns pricing and stock.
type Product struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Slug         string       `json:"slug"`
	Brand        string       `json:"brand"`
	Description  string       `json:"description"`
	Thumbnail    string       `json:"thumbnail"`
	Images       []string     `json:"images"`
	RetailPrice  float64      `json:"retailPrice"`
	Discount     float64      `json:"discount"`
	DiscountType DiscountType `json:"discountType"`
	CurrentStock int          `json:"currentStock"`
	Status       string       `json:"status"`
	CategoryID   string       `json:"categoryId"`
	// Variants keeps the backend's inventory order. Resolution tie-breaks on
	// that order, so it must never be re-sorted.
	Variants []Variant `json:"variants"`
}

// Variant is one sellable combination of a product's attributes.
type Variant struct {
	ID        string  `json:"id"`
	Color     string  `json:"color"`
	ColorCode string  `json:"colorCode"`
	Storage   string  `json:"storage"`
	Region    string  `json:"region"`
	SalePrice float64 `json:"salePrice"`
	InStock   bool    `json:"inStock"`
}

// VariantSelection is the shopper's current attribute choice, independent of
// what stock actually exists. An empty field means "not selected" and matches
// any value during resolution.
type VariantSelection struct {
	Color   string `json:"color,omitempty"`
	Storage string `json:"storage,omitempty"`
	Region  string `json:"region,omitempty"`
}

// ProductView is the product detail as rendered: the raw product plus the
// current selection, the variant resolution outcome and the price to display.
type ProductView struct {
	Product      Product          `json:"product"`
	Selection    VariantSelection `json:"selection"`
	Resolved     *Variant         `json:"resolved"`
	DisplayPrice float64          `json:"displayPrice"`
	InStock      bool             `json:"inStock"`
}

// ProductFilter is passed through to the remote listing endpoint.
type ProductFilter struct {
	CategoryID string
	Query      string
	Brand      string
	Sort       string
	Limit      int
	Offset     int
}

// CatalogClient fetches catalog data from the remote backend API.
type CatalogClient interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	GetCategories(ctx context.Context) ([]Category, error)
}
