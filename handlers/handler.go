// Package handlers exposes the HTTP surface: parse, transactions, user
// onboarding, the island view, the rescue quiz, and analytics.
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"ggumjisum/backend/services"
)

// Handler bundles the routes around the app service.
type Handler struct {
	app *services.App
}

// NewHandler wires the handler set to the given app.
func NewHandler(app *services.App) *Handler {
	return &Handler{app: app}
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
