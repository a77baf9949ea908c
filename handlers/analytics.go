package handlers

import "net/http"

// GetCategoryAnalytics handles GET /analytics/categories: expense totals
// per category for the chart, optionally scoped by ?period=week|month.
func (h *Handler) GetCategoryAnalytics(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period != "" && period != "week" && period != "month" {
		writeError(w, http.StatusBadRequest, "period must be week or month")
		return
	}
	writeJSON(w, http.StatusOK, h.app.CategoryTotals(period))
}

// GetDailyAnalytics handles GET /analytics/daily: expense totals per
// day, ascending.
func (h *Handler) GetDailyAnalytics(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period != "" && period != "week" && period != "month" {
		writeError(w, http.StatusBadRequest, "period must be week or month")
		return
	}
	writeJSON(w, http.StatusOK, h.app.DailyTotals(period))
}
