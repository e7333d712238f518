package handlers

import "net/http"

// Stats returns the dashboard summary, preferring the backend's view and
// falling back to the locally derived one when it cannot be reached.
func (a *App) Stats(w http.ResponseWriter, r *http.Request) {
	if a.Store.Token() != "" {
		stats, err := a.Backend.DashboardStats(r.Context())
		if err == nil {
			a.json(w, http.StatusOK, stats)
			return
		}
		a.Logger.Debug().Err(err).Msg("dashboard stats unavailable, using local fallback")
	}
	a.json(w, http.StatusOK, a.Store.FallbackStats())
}
