package v1

import (
	"net/http"

	"mobimart-storefront/internal/domain"
	"mobimart-storefront/pkg/utils"
)

// CheckoutHandler serves the checkout review step. It is display-only: order
// submission and payment live in the remote backend, not here.
type CheckoutHandler struct{}

func NewCheckoutHandler() *CheckoutHandler {
	return &CheckoutHandler{}
}

type checkoutSummary struct {
	Lines     []domain.CartLine `json:"lines"`
	ItemCount int               `json:"itemCount"`
	Total     float64           `json:"total"`
}

func (h *CheckoutHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r)
	if !ok {
		utils.WriteError(w, http.StatusInternalServerError, "No session")
		return
	}

	utils.WriteJSON(w, http.StatusOK, checkoutSummary{
		Lines:     sess.Cart.Lines(),
		ItemCount: sess.Cart.Count(),
		Total:     sess.Cart.Total(),
	})
}
