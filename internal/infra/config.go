package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv            string
	Port              string
	BriaAPIKey        string
	BriaBaseURL       string
	BriaTimeout       time.Duration
	DownloadTimeout   time.Duration
	StoragePath       string
	StorageBaseURL    string
	DefaultLocale     string
	AllowedOrigins    []string
	EventLogCapacity  int
	MetricsWindowSize int
	HTTPReadTimeout   time.Duration
	HTTPWriteTimeout  time.Duration
	HTTPIdleTimeout   time.Duration
	RateLimitPerMin   int
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. The vendor credential is the only hard requirement:
// its absence is a fatal startup condition, not a per-call error.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		BriaAPIKey:        os.Getenv("BRIA_API_KEY"),
		BriaBaseURL:       getEnv("BRIA_BASE_URL", "https://engine.prod.bria-api.com"),
		BriaTimeout:       time.Second * time.Duration(getEnvInt("BRIA_TIMEOUT_SECONDS", 60)),
		DownloadTimeout:   time.Second * time.Duration(getEnvInt("DOWNLOAD_TIMEOUT_SECONDS", 30)),
		StoragePath:       getEnv("STORAGE_PATH", "data/assets"),
		DefaultLocale:     getEnv("DEFAULT_LOCALE", "en"),
		AllowedOrigins:    splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		EventLogCapacity:  getEnvInt("EVENT_LOG_CAPACITY", 100),
		MetricsWindowSize: getEnvInt("METRICS_WINDOW_SIZE", 10),
		HTTPReadTimeout:   time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:  time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:   time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:   getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}
	cfg.StorageBaseURL = getEnv("STORAGE_BASE_URL", "http://localhost:"+cfg.Port+"/static")

	if cfg.BriaAPIKey == "" {
		return nil, fmt.Errorf("BRIA_API_KEY is required")
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
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
