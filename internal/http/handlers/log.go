package handlers

import (
	"encoding/json"
	"net/http"
)

type viewRequest struct {
	Page string `json:"page"`
	URL  string `json:"url"`
}

// LogView relays a page view into the telemetry pipeline. Always 202: the
// caller must never stall or fail on telemetry.
func (a *App) LogView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Page != "" {
		a.Views.LogView(req.Page, req.URL)
	}
	w.WriteHeader(http.StatusAccepted)
}
