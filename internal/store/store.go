// Package store is the device-local state layer: a JSON key-value adapter
// with the session cache, the daily usage counters and the activity log on
// top. It never returns errors for storage or parse failures: missing,
// unreadable or corrupt state degrades to empty defaults so a storage hiccup
// can never break a feature flow.
package store

import (
	"encoding/json"
	"sync"
	"time"

	"authentiq/internal/domain"
)

// Fixed namespace keys. Renaming them would orphan existing state files.
const (
	userKey     = "authentiq_user"
	limitsKey   = "authentiq_limits"
	activityKey = "authentiq_activity"
)

// Options configures a Store.
type Options struct {
	// Backend is the persistence medium. Defaults to DisabledBackend, the
	// environment with no writable state location.
	Backend Backend
	// Now supplies the clock used for the daily rollover. Defaults to
	// time.Now.
	Now func() time.Time
}

// Store implements domain.SessionStore, domain.UsageStore and
// domain.ActivityStore over an injected Backend.
type Store struct {
	mu        sync.Mutex
	backend   Backend
	now       func() time.Time
	listeners []func(*domain.StoredUser)
}

// New constructs a Store.
func New(opts Options) *Store {
	b := opts.Backend
	if b == nil {
		b = DisabledBackend{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{backend: b, now: now}
}

// read decodes the value under key into v. Absent keys, unavailable storage
// and malformed JSON all report false.
func (s *Store) read(key string, v any) bool {
	data, ok := s.backend.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// write serializes v and stores it. Failures are absorbed.
func (s *Store) write(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.backend.Set(key, data)
}

// remove deletes the key. Idempotent.
func (s *Store) remove(key string) {
	s.backend.Delete(key)
}

// today returns the calendar-day string counters are keyed by.
func (s *Store) today() string {
	return s.now().Format(domain.DayFormat)
}
