package handlers

import (
	"net/http"

	"authentiq/internal/domain"
)

// Usage reports the rolled-over daily counters next to their ceilings.
func (a *App) Usage(w http.ResponseWriter, r *http.Request) {
	limits := a.Store.Limits()

	used := map[string]int{}
	ceilings := map[string]int{}
	remaining := map[string]int{}
	for _, c := range domain.Categories() {
		count := limits.Count(c)
		ceiling := domain.Ceiling(c)
		used[string(c)] = count
		ceilings[string(c)] = ceiling
		remaining[string(c)] = ceiling - count
	}

	plan := "free"
	if u := a.Store.User(); u != nil && u.Subscription != nil && u.Subscription.Plan != "" {
		plan = u.Subscription.Plan
	}

	a.json(w, http.StatusOK, map[string]any{
		"date":      limits.Date,
		"used":      used,
		"limits":    ceilings,
		"remaining": remaining,
		"plan":      plan,
	})
}
