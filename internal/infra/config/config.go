package config

import (
	"fmt"
	"os"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

var (
	defaultSubjects = []string{"Math", "Physics", "Chemistry", "Biology", "English", "History", "Computer Science"}
	defaultLevels   = []string{"Elementary", "Middle School", "High School", "AP", "College"}
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken        string
	SearchAPIURL         string
	LogLevel             string
	Environment          string
	Subjects             []string
	Levels               []string
	CronSpecSessionSweep string
	SessionIdleTTL       time.Duration
	MetricsAddr          string // Empty disables the metrics listener
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	cfg.SearchAPIURL = strings.TrimRight(getEnv("SEARCH_API_URL", "http://localhost:8080"), "/")
	if !strings.HasPrefix(cfg.SearchAPIURL, "http://") && !strings.HasPrefix(cfg.SearchAPIURL, "https://") {
		return nil, fmt.Errorf("invalid SEARCH_API_URL %q: must be an http(s) URL", cfg.SearchAPIURL)
	}

	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getEnv("ENVIRONMENT", "development"))

	cfg.Subjects = getList("WIZARD_SUBJECTS", defaultSubjects)
	cfg.Levels = getList("WIZARD_LEVELS", defaultLevels)

	cfg.CronSpecSessionSweep = getEnv("CRON_SPEC_SESSION_SWEEP", "*/10 * * * *") // Default: every 10 minutes

	cfg.SessionIdleTTL, err = time.ParseDuration(getEnv("SESSION_IDLE_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_IDLE_TTL: %w", err)
	}
	if cfg.SessionIdleTTL <= 0 {
		return nil, fmt.Errorf("invalid SESSION_IDLE_TTL: must be positive, got %s", cfg.SessionIdleTTL)
	}

	// An explicitly empty METRICS_ADDR turns the listener off.
	if addr, ok := os.LookupEnv("METRICS_ADDR"); ok {
		cfg.MetricsAddr = strings.TrimSpace(addr)
	} else {
		cfg.MetricsAddr = ":9090"
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// getList splits a comma separated variable, dropping blank entries.
func getList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if strings.TrimSpace(raw) == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), fallback...)
	}
	return out
}
