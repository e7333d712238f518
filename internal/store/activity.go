package store

import (
	"github.com/google/uuid"

	"authentiq/internal/domain"
)

// maxActivities caps the locally retained history. The backend keeps the
// authoritative record; this is display data.
const maxActivities = 200

// AppendActivity records a feature event, assigning an id and timestamp when
// the caller left them empty, and returns the stored record.
func (s *Store) AppendActivity(a domain.Activity) domain.Activity {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = s.now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []domain.Activity
	s.read(activityKey, &items)
	items = append(items, a)
	if len(items) > maxActivities {
		items = items[len(items)-maxActivities:]
	}
	s.write(activityKey, items)
	return a
}

// Activities returns the recorded events, newest last. Unavailable storage
// yields an empty slice.
func (s *Store) Activities() []domain.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []domain.Activity
	s.read(activityKey, &items)
	return items
}
