package v1

import (
	"errors"
	"net/http"

	"mobimart-storefront/internal/domain"
	"mobimart-storefront/internal/infrastructure/catalog"
	"mobimart-storefront/internal/usecase"
	"mobimart-storefront/pkg/utils"
)

type CatalogHandler struct {
	browse *usecase.BrowseUsecase
}

func NewCatalogHandler(browse *usecase.BrowseUsecase) *CatalogHandler {
	return &CatalogHandler{browse: browse}
}

func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.browse.GetCategories(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusBadGateway, "Failed to load categories")
		return
	}
	utils.WriteJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := utils.ParseInt(query.Get("limit"), 20)
	page := utils.ParseInt(query.Get("page"), 1)
	if page < 1 {
		page = 1
	}

	filter := domain.ProductFilter{
		CategoryID: query.Get("category_id"),
		Query:      query.Get("q"),
		Brand:      query.Get("brand"),
		Sort:       query.Get("sort"),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	products, total, err := h.browse.ListProducts(r.Context(), filter)
	if err != nil {
		utils.WriteError(w, http.StatusBadGateway, "Failed to load products")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data": products,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetProductDetail renders the detail page payload: the product, the default
// attribute selection and the variant resolved for it.
func (h *CatalogHandler) GetProductDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	view, err := h.browse.GetProductDetail(r.Context(), id, nil)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		utils.WriteError(w, http.StatusBadGateway, "Failed to load product")
		return
	}

	utils.WriteJSON(w, http.StatusOK, view)
}

// ResolveVariant re-resolves the active variant when the shopper changes a
// color/storage/region picker. Unset query params stay unselected and match
// any value.
func (h *CatalogHandler) ResolveVariant(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	query := r.URL.Query()
	sel := domain.VariantSelection{
		Color:   query.Get("color"),
		Storage: query.Get("storage"),
		Region:  query.Get("region"),
	}

	view, err := h.browse.GetProductDetail(r.Context(), id, &sel)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		utils.WriteError(w, http.StatusBadGateway, "Failed to load product")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"selection":    view.Selection,
		"resolved":     view.Resolved,
		"displayPrice": view.DisplayPrice,
		"inStock":      view.InStock,
	})
}
