// Package handlers implements the local HTTP surface the dashboard talks
// to. The daemon owns the cached session and counters; feature requests run
// the reserve-call-record sequence here so the quota can never be bypassed
// by a misbehaving page.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"authentiq/internal/api"
	"authentiq/internal/domain"
)

// State is the local persistence the handlers operate on. Both the file and
// sqlite stores satisfy it.
type State interface {
	domain.SessionStore
	domain.UsageStore
	domain.ActivityStore
	FallbackStats() domain.StatsSummary
}

// Backend is the slice of the remote API the handlers call. *api.Client
// satisfies it; tests substitute fakes.
type Backend interface {
	Login(ctx context.Context, email, password string) (*api.AuthResult, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResult, error)
	Me(ctx context.Context) (*api.Profile, error)
	CheckPlagiarism(ctx context.Context, text string, checkAIContent bool) (*api.PlagiarismResult, error)
	CheckFile(ctx context.Context, filename string, content []byte, language, category string) (*api.PlagiarismResult, error)
	UploadFile(ctx context.Context, filename string, content []byte) (*api.UploadResult, error)
	Humanize(ctx context.Context, text string, opts api.HumanizeOptions) (*api.HumanizeResult, error)
	DownloadHumanized(ctx context.Context, text, format string) ([]byte, string, error)
	History(ctx context.Context) ([]api.HistoryEntry, error)
	DashboardStats(ctx context.Context) (*domain.StatsSummary, error)
	Contact(ctx context.Context, req api.ContactRequest) error
}

// ViewLogger accepts fire-and-forget page-view events.
type ViewLogger interface {
	LogView(page, url string)
}

type App struct {
	Store   State
	Backend Backend
	Views   ViewLogger
	Logger  zerolog.Logger
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error writes the detail-style body the remote backend also speaks, so the
// dashboard handles both origins of failure with one code path.
func (a *App) error(w http.ResponseWriter, code int, detail string) {
	a.json(w, code, map[string]string{"detail": detail})
}

// relayError maps a backend call failure onto the local response. Backend
// API errors pass through with their original status and detail; transport
// failures become a 502.
func (a *App) relayError(w http.ResponseWriter, err error) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		a.error(w, apiErr.Status, apiErr.Detail)
		return
	}
	a.Logger.Warn().Err(err).Msg("backend unreachable")
	a.error(w, http.StatusBadGateway, "backend unavailable")
}
