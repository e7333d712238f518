package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// State drivers selectable through STATE_DRIVER.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
	DriverOff    = "off"
)

// Config represents agent configuration loaded from environment variables.
type Config struct {
	AppEnv string
	// BindAddr is the listen interface. Defaults to loopback; widening it
	// exposes cached bearer tokens to the local network.
	BindAddr string
	Port     string

	// APIBaseURL is the remote backend the agent brokers calls to.
	APIBaseURL string
	APITimeout time.Duration

	// StateDir holds the cached session, counters and activity log.
	StateDir    string
	StateDriver string

	AllowedOrigins []string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int

	TelemetryQueueSize  int
	TelemetryDeadLetter string
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. A .env file is read first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env", ".env.local")

	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		BindAddr:            getEnv("BIND_ADDR", "127.0.0.1"),
		Port:                getEnv("PORT", "8787"),
		APIBaseURL:          getEnv("API_URL", "http://127.0.0.1:8000"),
		APITimeout:          time.Second * time.Duration(getEnvInt("API_TIMEOUT_SECONDS", 30)),
		StateDir:            getEnv("STATE_DIR", "./state"),
		StateDriver:         strings.ToLower(getEnv("STATE_DRIVER", DriverFile)),
		AllowedOrigins:      splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		HTTPReadTimeout:     time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:    time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:     time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:     getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		TelemetryQueueSize:  getEnvInt("TELEMETRY_QUEUE_SIZE", 64),
		TelemetryDeadLetter: os.Getenv("TELEMETRY_DEADLETTER"),
	}

	switch cfg.StateDriver {
	case DriverFile, DriverSQLite, DriverMemory, DriverOff:
	default:
		return nil, fmt.Errorf("STATE_DRIVER must be one of file, sqlite, memory, off; got %q", cfg.StateDriver)
	}

	if !filepath.IsAbs(cfg.StateDir) {
		if abs, err := filepath.Abs(cfg.StateDir); err == nil {
			cfg.StateDir = abs
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
