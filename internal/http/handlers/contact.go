package handlers

import (
	"encoding/json"
	"net/http"

	"authentiq/internal/api"
)

// Contact relays a support form submission to the backend.
func (a *App) Contact(w http.ResponseWriter, r *http.Request) {
	var req api.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Email == "" || req.Message == "" {
		a.error(w, http.StatusBadRequest, "email and message are required")
		return
	}
	if err := a.Backend.Contact(r.Context(), req); err != nil {
		a.relayError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "sent"})
}
