package handlers

import (
	"net/http"

	"authentiq/internal/api"
	"authentiq/internal/domain"
)

// History returns recent check activity: the backend's account-wide history
// when reachable, otherwise what this device recorded.
func (a *App) History(w http.ResponseWriter, r *http.Request) {
	if a.Store.Token() != "" {
		entries, err := a.Backend.History(r.Context())
		if err == nil {
			if entries == nil {
				entries = []api.HistoryEntry{}
			}
			a.json(w, http.StatusOK, map[string]any{"items": entries, "source": "backend"})
			return
		}
		a.Logger.Debug().Err(err).Msg("history unavailable, using local records")
	}

	activities := a.Store.Activities()
	items := make([]api.HistoryEntry, 0, len(activities))
	for i := len(activities) - 1; i >= 0; i-- {
		act := activities[i]
		items = append(items, api.HistoryEntry{
			ID:        act.ID,
			Type:      string(act.Type),
			Title:     act.Title,
			Date:      act.Timestamp.Format(domain.DayFormat),
			Score:     act.Score,
			Status:    act.Status(),
			WordCount: act.WordCount,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items, "source": "local"})
}
