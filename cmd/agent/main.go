package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"authentiq/internal/api"
	"authentiq/internal/domain"
	"authentiq/internal/http/handlers"
	"authentiq/internal/http/httpapi"
	"authentiq/internal/infra"
	"authentiq/internal/store"
	sqlitestore "authentiq/internal/store/sqlite"
	"authentiq/internal/telemetry"
)

func main() {
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	state, cleanup, err := openState(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open local state")
	}
	defer cleanup()

	state.OnUserChange(func(u *domain.StoredUser) {
		if u == nil {
			logger.Info().Msg("session cleared")
			return
		}
		logger.Info().Str("user", u.Email).Msg("session updated")
	})

	backend := api.New(api.Options{
		BaseURL:     cfg.APIBaseURL,
		HTTPClient:  &http.Client{Timeout: cfg.APITimeout},
		TokenSource: state.Token,
	})

	views := telemetry.New(telemetry.Options{
		Sender:         backend,
		TokenSource:    state.Token,
		Logger:         logger,
		QueueSize:      cfg.TelemetryQueueSize,
		DeadLetterPath: cfg.TelemetryDeadLetter,
	})

	app := &handlers.App{
		Store:   state,
		Backend: backend,
		Views:   views,
		Logger:  logger,
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("backend", cfg.APIBaseURL).
			Str("driver", cfg.StateDriver).
			Msgf("agent listening on %s:%s", cfg.BindAddr, cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	if err := views.Close(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("telemetry queue not fully drained")
	}
	logger.Info().Msg("agent stopped")
}

// openState builds the persistence layer selected by STATE_DRIVER.
func openState(cfg *infra.Config) (handlers.State, func(), error) {
	noop := func() {}
	switch cfg.StateDriver {
	case infra.DriverMemory:
		return store.New(store.Options{Backend: store.NewMemoryBackend()}), noop, nil
	case infra.DriverOff:
		return store.New(store.Options{Backend: store.DisabledBackend{}}), noop, nil
	case infra.DriverSQLite:
		db, err := sqlitestore.Open(filepath.Join(cfg.StateDir, "state.db"))
		if err != nil {
			return nil, noop, err
		}
		st := sqlitestore.New(db, sqlitestore.Options{})
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := st.Init(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return st, func() { _ = db.Close() }, nil
	default:
		backend, err := store.NewFileBackend(cfg.StateDir)
		if err != nil {
			return nil, noop, err
		}
		return store.New(store.Options{Backend: backend}), noop, nil
	}
}
