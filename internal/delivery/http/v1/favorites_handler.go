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

type FavoritesHandler struct {
	browse *usecase.BrowseUsecase
}

func NewFavoritesHandler(browse *usecase.BrowseUsecase) *FavoritesHandler {
	return &FavoritesHandler{browse: browse}
}

func (h *FavoritesHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r)
	if !ok {
		utils.WriteError(w, http.StatusInternalServerError, "No session")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"entries": sess.Favorites.Entries(),
	})
}

type favoriteRequest struct {
	ProductID string `json:"productId"`
}

func (h *FavoritesHandler) snapshot(w http.ResponseWriter, r *http.Request) (domain.ProductSnapshot, bool) {
	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return domain.ProductSnapshot{}, false
	}
	if req.ProductID == "" {
		utils.WriteError(w, http.StatusBadRequest, "productId is required")
		return domain.ProductSnapshot{}, false
	}

	snapshot, err := h.browse.Snapshot(r.Context(), req.ProductID, nil)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Product not found")
			return domain.ProductSnapshot{}, false
		}
		utils.WriteError(w, http.StatusBadGateway, "Failed to load product")
		return domain.ProductSnapshot{}, false
	}
	return snapshot, true
}

func (h *FavoritesHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r)
	if !ok {
		utils.WriteError(w, http.StatusInternalServerError, "No session")
		return
	}

	snapshot, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	sess.Favorites.Add(snapshot)
	utils.WriteMessage(w, http.StatusOK, "Added to favorites")
}

func (h *FavoritesHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r)
	if !ok {
		utils.WriteError(w, http.StatusInternalServerError, "No session")
		return
	}

	snapshot, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	favorited := sess.Favorites.Toggle(snapshot)
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"favorited": favorited})
}

func (h *FavoritesHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r)
	if !ok {
		utils.WriteError(w, http.StatusInternalServerError, "No session")
		return
	}

	sess.Favorites.Remove(r.PathValue("productId"))
	utils.WriteMessage(w, http.StatusOK, "Removed from favorites")
}
