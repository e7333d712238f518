package store

import (
	"encoding/json"

	"authentiq/internal/domain"
)

// sessionRecordVersion is the current on-disk shape of the session record.
// Version 0 is the legacy bare user object; it is migrated on read rather
// than via call-site defaults.
const sessionRecordVersion = 1

type sessionRecord struct {
	Version int                `json:"version"`
	User    *domain.StoredUser `json:"user,omitempty"`
}

// SaveUser writes the full record verbatim, replacing any prior value.
func (s *Store) SaveUser(u *domain.StoredUser) {
	if u == nil {
		return
	}
	s.mu.Lock()
	s.write(userKey, sessionRecord{Version: sessionRecordVersion, User: u})
	s.mu.Unlock()
	s.notifyUserChange(u)
}

// User returns the cached record, or nil when signed out, when storage is
// unavailable, or when the stored value cannot be decoded.
func (s *Store) User() *domain.StoredUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUser()
}

// Token returns the cached bearer token, or "".
func (s *Store) Token() string {
	if u := s.User(); u != nil {
		return u.Token
	}
	return ""
}

// ClearUser removes the record. Idempotent.
func (s *Store) ClearUser() {
	s.mu.Lock()
	s.remove(userKey)
	s.mu.Unlock()
	s.notifyUserChange(nil)
}

// RefreshUser saves a freshly fetched profile, carrying the previous token
// forward when the new payload does not include one.
func (s *Store) RefreshUser(u *domain.StoredUser) {
	if u == nil {
		return
	}
	s.mu.Lock()
	if u.Token == "" {
		if prev := s.loadUser(); prev != nil {
			u.Token = prev.Token
		}
	}
	s.write(userKey, sessionRecord{Version: sessionRecordVersion, User: u})
	s.mu.Unlock()
	s.notifyUserChange(u)
}

// OnUserChange registers a hook invoked after every session mutation. Hooks
// run outside the store lock, in registration order.
func (s *Store) OnUserChange(fn func(*domain.StoredUser)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) notifyUserChange(u *domain.StoredUser) {
	s.mu.Lock()
	hooks := append(([]func(*domain.StoredUser))(nil), s.listeners...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(u)
	}
}

// loadUser reads and migrates the session record. Callers hold s.mu.
func (s *Store) loadUser() *domain.StoredUser {
	data, ok := s.backend.Get(userKey)
	if !ok {
		return nil
	}
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err == nil && rec.Version >= 1 && rec.User != nil {
		return rec.User
	}
	// Legacy shape: the record is the user object itself.
	var legacy domain.StoredUser
	if err := json.Unmarshal(data, &legacy); err != nil || legacy.ID == "" && legacy.Email == "" && legacy.Token == "" {
		return nil
	}
	return &legacy
}
