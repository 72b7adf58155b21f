package v1

import (
	"net/http"

	"github.com/goccy/go-json"

	"mobimart-storefront/pkg/utils"
)

type PrefsHandler struct{}

func NewPrefsHandler() *PrefsHandler {
	return &PrefsHandler{}
}

func (h *PrefsHandler) GetPrefs(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r)
	if !ok {
		utils.WriteError(w, http.StatusInternalServerError, "No session")
		return
	}

	utils.WriteJSON(w, http.StatusOK, sess.Prefs.Get())
}

type updatePrefsRequest struct {
	Theme string `json:"theme"`
}

func (h *PrefsHandler) UpdatePrefs(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r)
	if !ok {
		utils.WriteError(w, http.StatusInternalServerError, "No session")
		return
	}

	var req updatePrefsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	utils.WriteJSON(w, http.StatusOK, sess.Prefs.SetTheme(req.Theme))
}
