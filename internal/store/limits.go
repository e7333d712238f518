package store

import "authentiq/internal/domain"

// CheckLimit performs the lazy midnight rollover, then reports whether the
// category is still under its daily ceiling. When storage is unavailable the
// counters default to zero, so the answer is true.
func (s *Store) CheckLimit(c domain.Category) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	limits := s.rolledOverLimits()
	ceiling := domain.Ceiling(c)
	if ceiling == 0 {
		return false
	}
	return limits.Count(c) < ceiling
}

// IncrementLimit bumps the category by one and persists. It skips the
// rollover check: callers must invoke CheckLimit immediately before it, or
// use Reserve.
func (s *Store) IncrementLimit(c domain.Category) {
	if _, ok := domain.ParseCategory(string(c)); !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	limits := s.loadLimits()
	limits.Add(c, 1)
	s.write(limitsKey, limits)
}

// Reserve is the atomic check-and-increment: rollover, ceiling comparison
// and increment happen under one lock, eliminating the check-then-increment
// race across concurrent callers.
func (s *Store) Reserve(c domain.Category) error {
	ceiling := domain.Ceiling(c)
	if ceiling == 0 {
		return domain.ErrUnknownCategory
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	limits := s.rolledOverLimits()
	if limits.Count(c) >= ceiling {
		return domain.ErrQuotaExceeded
	}
	limits.Add(c, 1)
	s.write(limitsKey, limits)
	return nil
}

// Limits returns a rolled-over snapshot of the counters.
func (s *Store) Limits() domain.UsageLimits {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rolledOverLimits()
}

// loadLimits reads the stored counters, defaulting to a zeroed record for
// today. Callers hold s.mu.
func (s *Store) loadLimits() domain.UsageLimits {
	limits := domain.UsageLimits{Date: s.today()}
	s.read(limitsKey, &limits)
	if limits.Date == "" {
		limits.Date = s.today()
	}
	return limits
}

// rolledOverLimits loads the counters and, if the stored day is not today,
// resets all of them to zero and persists the reset. Callers hold s.mu.
func (s *Store) rolledOverLimits() domain.UsageLimits {
	limits := s.loadLimits()
	if today := s.today(); limits.Date != today {
		limits = domain.UsageLimits{Date: today}
		s.write(limitsKey, limits)
	}
	return limits
}

// ResetLimits zeroes today's counters. Used by operator tooling; the normal
// path only resets through the midnight rollover.
func (s *Store) ResetLimits() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.write(limitsKey, domain.UsageLimits{Date: s.today()})
}
