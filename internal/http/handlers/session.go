package handlers

import (
	"encoding/json"
	"net/http"

	"authentiq/internal/api"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse is the cached user without the bearer token; the token
// never leaves the daemon.
type sessionResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Organization string `json:"organization,omitempty"`
	Bio          string `json:"bio,omitempty"`
	UserType     string `json:"user_type,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	Plan         string `json:"plan,omitempty"`
}

// Session returns the cached user, or 404 for an anonymous device.
func (a *App) Session(w http.ResponseWriter, r *http.Request) {
	u := a.Store.User()
	if u == nil {
		a.error(w, http.StatusNotFound, "no active session")
		return
	}
	resp := sessionResponse{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		AvatarURL:    u.AvatarURL,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Organization: u.Organization,
		Bio:          u.Bio,
		UserType:     u.UserType,
		CreatedAt:    u.CreatedAt,
	}
	if u.Subscription != nil {
		resp.Plan = u.Subscription.Plan
	}
	a.json(w, http.StatusOK, resp)
}

// Login authenticates against the backend and caches the session.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "email and password are required")
		return
	}
	res, err := a.Backend.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		a.relayError(w, err)
		return
	}
	a.Store.SaveUser(res.User.StoredUser(res.AccessToken))
	a.Session(w, r)
}

// Register creates an account, then caches the session when the backend
// already returns a token.
func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "email and password are required")
		return
	}
	res, err := a.Backend.Register(r.Context(), req)
	if err != nil {
		a.relayError(w, err)
		return
	}
	if res.AccessToken == "" {
		a.json(w, http.StatusCreated, map[string]string{"status": "registered"})
		return
	}
	a.Store.SaveUser(res.User.StoredUser(res.AccessToken))
	a.Session(w, r)
}

// RefreshSession fetches a fresh profile and re-caches it. The profile
// payload carries no token, so the previous one is carried forward.
func (a *App) RefreshSession(w http.ResponseWriter, r *http.Request) {
	if a.Store.Token() == "" {
		a.error(w, http.StatusUnauthorized, "no active session")
		return
	}
	profile, err := a.Backend.Me(r.Context())
	if err != nil {
		if api.IsUnauthorized(err) {
			a.Store.ClearUser()
		}
		a.relayError(w, err)
		return
	}
	a.Store.RefreshUser(profile.StoredUser(""))
	a.Session(w, r)
}

// Logout clears the cached session. Idempotent.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	a.Store.ClearUser()
	w.WriteHeader(http.StatusNoContent)
}
