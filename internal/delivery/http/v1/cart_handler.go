package v1

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"mobimart-storefront/internal/domain"
	"mobimart-storefront/internal/infrastructure/catalog"
	"mobimart-storefront/internal/usecase"
	"mobimart-storefront/pkg/utils"
)

type CartHandler struct {
	browse *usecase.BrowseUsecase
}

func NewCartHandler(browse *usecase.BrowseUsecase) *CartHandler {
	return &CartHandler{browse: browse}
}

type cartResponse struct {
	Lines []domain.CartLine `json:"lines"`
	Count int               `json:"count"`
	Total float64           `json:"total"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r)
	if !ok {
		utils.WriteError(w, http.StatusInternalServerError, "No session")
		return
	}

	utils.WriteJSON(w, http.StatusOK, cartResponse{
		Lines: sess.Cart.Lines(),
		Count: sess.Cart.Count(),
		Total: sess.Cart.Total(),
	})
}

type addToCartRequest struct {
	ProductID string                   `json:"productId"`
	Quantity  int                      `json:"quantity"`
	Variant   *domain.VariantSelection `json:"variant"`
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r)
	if !ok {
		utils.WriteError(w, http.StatusInternalServerError, "No session")
		return
	}

	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.ProductID == "" {
		utils.WriteError(w, http.StatusBadRequest, "productId is required")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	// Price the line server-side; the client never supplies a price.
	snapshot, err := h.browse.Snapshot(r.Context(), req.ProductID, req.Variant)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		utils.WriteError(w, http.StatusBadGateway, "Failed to load product")
		return
	}

	sess.Cart.Add(snapshot, req.Quantity, req.Variant)

	utils.WriteJSON(w, http.StatusOK, cartResponse{
		Lines: sess.Cart.Lines(),
		Count: sess.Cart.Count(),
		Total: sess.Cart.Total(),
	})
}

type updateCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r)
	if !ok {
		utils.WriteError(w, http.StatusInternalServerError, "No session")
		return
	}

	var req updateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.ProductID == "" {
		utils.WriteError(w, http.StatusBadRequest, "productId is required")
		return
	}

	// Quantity <= 0 removes the line.
	sess.Cart.SetQuantity(req.ProductID, req.Quantity)

	utils.WriteJSON(w, http.StatusOK, cartResponse{
		Lines: sess.Cart.Lines(),
		Count: sess.Cart.Count(),
		Total: sess.Cart.Total(),
	})
}

func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r)
	if !ok {
		utils.WriteError(w, http.StatusInternalServerError, "No session")
		return
	}

	sess.Cart.Remove(r.PathValue("productId"))
	utils.WriteMessage(w, http.StatusOK, "Removed from cart")
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r)
	if !ok {
		utils.WriteError(w, http.StatusInternalServerError, "No session")
		return
	}

	sess.Cart.Clear()
	utils.WriteMessage(w, http.StatusOK, "Cart cleared")
}
