package store

import "authentiq/internal/domain"

// FallbackStats derives a dashboard summary from local state, used when the
// backend cannot be reached.
func (s *Store) FallbackStats() domain.StatsSummary {
	return domain.DeriveStats(s.User(), s.Limits(), s.Activities(), s.now())
}
