package domain

// Subscription mirrors the subscription blob attached to a profile by the
// backend. The backend is authoritative; this is display data only.
type Subscription struct {
	Plan         string `json:"plan,omitempty"`
	Status       string `json:"status,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	ExpiryDate   string `json:"expiry_date,omitempty"`
	BillingCycle string `json:"billing_cycle,omitempty"`
}

// StoredUser is the locally cached representation of the signed-in account.
// Presence of a record means "render as authenticated"; the token's validity
// is never verified locally; only the backend can reject it.
type StoredUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	// Token is the opaque bearer credential for backend calls. Profile
	// payloads fetched from the backend do not include it.
	Token        string        `json:"token"`
	FirstName    string        `json:"first_name,omitempty"`
	LastName     string        `json:"last_name,omitempty"`
	Organization string        `json:"organization,omitempty"`
	Bio          string        `json:"bio,omitempty"`
	UserType     string        `json:"user_type,omitempty"`
	CreatedAt    string        `json:"created_at,omitempty"`
	Subscription *Subscription `json:"subscription,omitempty"`
}

// DisplayName returns the best available name for UI surfaces.
func (u *StoredUser) DisplayName() string {
	if u == nil {
		return "User"
	}
	if u.FullName != "" {
		return u.FullName
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return "User"
}
