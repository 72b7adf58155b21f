package catalog

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"mobimart-storefront/internal/domain"
	"mobimart-storefront/pkg/utils"
)

// The backend API is loose about scalar types: ids and prices arrive as
// numbers or strings depending on the endpoint, and booleans as 1/0. The
// flex* types absorb that so one odd field never fails a whole product.

// flexString decodes a JSON string or number into a string.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.Trim(string(data), `"`)
	if trimmed == "null" {
		*s = ""
		return nil
	}
	*s = flexString(trimmed)
	return nil
}

// flexFloat decodes a JSON number or numeric string, defaulting to 0.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	trimmed := strings.Trim(string(data), `"`)
	if trimmed == "" || trimmed == "null" {
		*f = 0
		return nil
	}
	val, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(val)
	return nil
}

// flexBool decodes 1/0, true/false or their string forms, defaulting to false.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(data), `"`) {
	case "1", "true":
		*b = true
	default:
		*b = false
	}
	return nil
}

type variantDTO struct {
	ID        flexString `json:"id"`
	Color     string     `json:"color"`
	ColorCode string     `json:"color_code"`
	Storage   string     `json:"storage"`
	Region    string     `json:"region"`
	SalePrice flexFloat  `json:"sale_price"`
	InStock   flexBool   `json:"in_stock"`
}

type productDTO struct {
	ID           flexString   `json:"id"`
	Name         string       `json:"name"`
	Slug         string       `json:"slug"`
	Brand        string       `json:"brand"`
	Description  string       `json:"description"`
	Thumbnail    string       `json:"thumbnail"`
	Images       []string     `json:"images"`
	RetailsPrice flexFloat    `json:"retails_price"`
	Discount     flexFloat    `json:"discount"`
	DiscountType string       `json:"discount_type"`
	CurrentStock flexFloat    `json:"current_stock"`
	Status       flexString   `json:"status"`
	CategoryID   flexString   `json:"category_id"`
	Imeis        []variantDTO `json:"imeis"`
}

type categoryDTO struct {
	ID    flexString `json:"id"`
	Name  string     `json:"name"`
	Slug  string     `json:"slug"`
	Image string     `json:"image"`
}

type productListDTO struct {
	Products  []json.RawMessage `json:"products"`
	TotalSize flexFloat         `json:"total_size"`
}

type categoryListDTO struct {
	Categories []categoryDTO `json:"categories"`
}

func (p productDTO) toDomain() domain.Product {
	out := domain.Product{
		ID:           string(p.ID),
		Name:         p.Name,
		Slug:         p.Slug,
		Brand:        p.Brand,
		Description:  p.Description,
		Thumbnail:    p.Thumbnail,
		Images:       p.Images,
		RetailPrice:  float64(p.RetailsPrice),
		Discount:     float64(p.Discount),
		DiscountType: parseDiscountType(p.DiscountType),
		CurrentStock: int(p.CurrentStock),
		Status:       string(p.Status),
		CategoryID:   string(p.CategoryID),
	}
	if out.Slug == "" {
		out.Slug = utils.GenerateSlug(out.Name)
	}

	// Keep the imeis array order: variant resolution tie-breaks on it.
	out.Variants = make([]domain.Variant, 0, len(p.Imeis))
	for _, v := range p.Imeis {
		out.Variants = append(out.Variants, domain.Variant{
			ID:        string(v.ID),
			Color:     v.Color,
			ColorCode: v.ColorCode,
			Storage:   v.Storage,
			Region:    v.Region,
			SalePrice: float64(v.SalePrice),
			InStock:   bool(v.InStock),
		})
	}
	return out
}

func (c categoryDTO) toDomain() domain.Category {
	out := domain.Category{
		ID:    string(c.ID),
		Name:  c.Name,
		Slug:  c.Slug,
		Image: c.Image,
	}
	if out.Slug == "" {
		out.Slug = utils.GenerateSlug(out.Name)
	}
	return out
}

func parseDiscountType(raw string) domain.DiscountType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "percentage", "percent":
		return domain.DiscountPercentage
	case "fixed", "flat":
		return domain.DiscountFixed
	default:
		return domain.DiscountNone
	}
}
