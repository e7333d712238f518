package domain

// SessionStore is the single-slot cache of the authenticated user. A nil
// result from User means "render as anonymous". Implementations never return
// errors: storage failures degrade to the empty state.
type SessionStore interface {
	// SaveUser writes the full record verbatim, replacing any prior value.
	SaveUser(u *StoredUser)
	// User returns the cached record, or nil.
	User() *StoredUser
	// Token returns the cached bearer token, or "" when signed out.
	Token() string
	// ClearUser removes the record. Idempotent.
	ClearUser()
	// RefreshUser saves a freshly fetched profile, carrying the previous
	// token forward. Profile payloads from the backend do not include the
	// token; saving one verbatim would silently break authentication.
	RefreshUser(u *StoredUser)
	// OnUserChange registers a hook invoked after every session mutation,
	// so other components can re-read and reflect the change.
	OnUserChange(fn func(*StoredUser))
}

// UsageStore maintains the per-category daily counters.
type UsageStore interface {
	// CheckLimit performs the lazy midnight rollover, then reports whether
	// the category is still under its ceiling.
	CheckLimit(c Category) bool
	// IncrementLimit bumps the category by one without re-validating the
	// date. Callers should invoke CheckLimit immediately before it.
	IncrementLimit(c Category)
	// Reserve is the atomic check-and-increment: rollover, ceiling check
	// and increment in one step. Returns ErrQuotaExceeded at the ceiling.
	Reserve(c Category) error
	// Limits returns a rolled-over snapshot of the counters.
	Limits() UsageLimits
}

// ActivityStore records feature events for the history view and the offline
// stats fallback.
type ActivityStore interface {
	AppendActivity(a Activity) Activity
	Activities() []Activity
}
