package handlers

import (
	"encoding/json"
	"net/http"
)

type parseRequest struct {
	Text string `json:"text"`
}

// ParseText handles POST /parse: text in, ParseResult out. Unparseable
// input is a 400 with a clarification hint so the client can re-prompt;
// no state is touched either way.
func (h *Handler) ParseText(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeError(w, http.StatusBadRequest, "Invalid input: text required")
		return
	}

	result := h.app.ParseText(r.Context(), req.Text)
	if result == nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":               "Could not parse transaction",
			"needs_clarification": true,
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}
