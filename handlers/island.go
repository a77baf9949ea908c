package handlers

import (
	"errors"
	"net/http"

	"ggumjisum/backend/services"
)

// GetIsland handles GET /island: the full derived view (status, spend,
// ratio, water level, level ladder, streaks). Reading it is enough to
// trigger a pending day rollover.
func (h *Handler) GetIsland(w http.ResponseWriter, r *http.Request) {
	island, err := h.app.Island()
	if errors.Is(err, services.ErrNoUser) {
		writeError(w, http.StatusNotFound, "No user registered")
		return
	}
	writeJSON(w, http.StatusOK, island)
}

// AckIslandEvents handles POST /island/ack, clearing the one-shot
// level-up and streak-reward flags once the client has displayed them.
func (h *Handler) AckIslandEvents(w http.ResponseWriter, r *http.Request) {
	h.app.AcknowledgeEvents()
	w.WriteHeader(http.StatusNoContent)
}
