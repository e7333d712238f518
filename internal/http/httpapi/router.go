package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"authentiq/internal/http/handlers"
	"authentiq/internal/middleware"
)

// Options configures the router.
type Options struct {
	Logger          zerolog.Logger
	AllowedOrigins  []string
	RateLimitPerMin int
}

// NewRouter wires the local API surface.
func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/session", func(r chi.Router) {
		r.Get("/", app.Session)
		r.Post("/login", app.Login)
		r.Post("/register", app.Register)
		r.Post("/refresh", app.RefreshSession)
		r.Delete("/", app.Logout)
	})

	r.Get("/v1/usage", app.Usage)

	r.Route("/v1/checks", func(r chi.Router) {
		r.Post("/", app.CreateCheck)
		r.Post("/file", app.CheckFile)
	})
	r.Post("/v1/files/extract", app.ExtractFile)

	r.Route("/v1/humanize", func(r chi.Router) {
		r.Post("/", app.Humanize)
		r.Post("/download", app.DownloadHumanized)
	})

	r.Get("/v1/stats", app.Stats)
	r.Get("/v1/history", app.History)
	r.Post("/v1/log", app.LogView)
	r.Post("/v1/contact", app.Contact)
	r.Get("/v1/reports/export", app.ExportReports)

	return r
}
