package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"authentiq/internal/domain"
	"authentiq/internal/infra"
	"authentiq/internal/store"
	sqlitestore "authentiq/internal/store/sqlite"
)

// usagectl inspects and resets the daily counters of a stopped agent. It
// opens the same state the daemon uses, so run it while the agent is down.
func main() {
	var (
		resetFlag   bool
		consumeFlag string
		sessionFlag bool
	)

	flag.BoolVar(&resetFlag, "reset", false, "zero today's counters")
	flag.StringVar(&consumeFlag, "consume", "", "take one slot of the given category (plagiarism, humanizer, bulk)")
	flag.BoolVar(&sessionFlag, "session", false, "also print the cached session (token redacted)")
	flag.Parse()

	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}

	state, cleanup, err := openState(cfg)
	if err != nil {
		exitWithError(err)
	}
	defer cleanup()

	if resetFlag {
		state.ResetLimits()
	}

	if consumeFlag != "" {
		c, ok := domain.ParseCategory(strings.ToLower(strings.TrimSpace(consumeFlag)))
		if !ok {
			exitWithError(fmt.Errorf("unknown category %q", consumeFlag))
		}
		if err := state.Reserve(c); err != nil {
			exitWithError(fmt.Errorf("consume %s: %w", c, err))
		}
	}

	limits := state.Limits()
	out := map[string]any{
		"date": limits.Date,
		"used": map[string]int{
			string(domain.CategoryPlagiarism): limits.Plagiarism,
			string(domain.CategoryHumanizer):  limits.Humanizer,
			string(domain.CategoryBulk):       limits.Bulk,
		},
		"limits": map[string]int{
			string(domain.CategoryPlagiarism): domain.CeilingPlagiarism,
			string(domain.CategoryHumanizer):  domain.CeilingHumanizer,
			string(domain.CategoryBulk):       domain.CeilingBulk,
		},
	}
	if sessionFlag {
		if u := state.User(); u != nil {
			out["session"] = map[string]string{
				"id":    u.ID,
				"email": u.Email,
				"name":  u.DisplayName(),
			}
		} else {
			out["session"] = nil
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		exitWithError(err)
	}
}

type stateAccess interface {
	domain.SessionStore
	domain.UsageStore
	ResetLimits()
}

func openState(cfg *infra.Config) (stateAccess, func(), error) {
	noop := func() {}
	switch cfg.StateDriver {
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

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "usagectl: %v\n", err)
	os.Exit(1)
}
