package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	defaults "tcmbrates/internal/infrastructure/config"
	"tcmbrates/internal/infrastructure/provider"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// API
	Port           string
	RequestTimeout time.Duration
	// Provider
	Provider     string
	TodayURL     string
	DatedURL     string
	ZeroPad      bool
	Location     string
	HTTPTimeout  time.Duration
	RetryElapsed time.Duration
	// Search
	SearchMode           string
	MaxLookbackDays      int
	MaxTransportFailures int
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func msDef(s string, def time.Duration) time.Duration {
	return time.Duration(atoiDef(s, int(def/time.Millisecond))) * time.Millisecond
}

func boolDef(s string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return b
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:                  getEnv("ENV", "local"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		Port:                 getEnv("PORT", defaults.DefaultHTTPPort),
		RequestTimeout:       msDef(os.Getenv("REQUEST_TIMEOUT_MS"), defaults.DefaultRequestTimeout),
		Provider:             getEnv("PROVIDER", defaults.DefaultProvider),
		TodayURL:             getEnv("TCMB_TODAY_URL", provider.DefaultTodayURL),
		DatedURL:             getEnv("TCMB_DATED_URL", provider.DefaultDatedURL),
		ZeroPad:              boolDef(os.Getenv("TCMB_ZERO_PAD"), false),
		Location:             getEnv("TCMB_LOCATION", defaults.DefaultLocation),
		HTTPTimeout:          msDef(os.Getenv("HTTP_TIMEOUT_MS"), defaults.DefaultHTTPClientTimeout),
		RetryElapsed:         msDef(os.Getenv("HTTP_RETRY_MAX_ELAPSED_MS"), defaults.DefaultRetryMaxElapsed),
		SearchMode:           getEnv("SEARCH_MODE", defaults.DefaultSearchMode),
		MaxLookbackDays:      atoiDef(os.Getenv("MAX_LOOKBACK_DAYS"), defaults.DefaultMaxLookbackDays),
		MaxTransportFailures: atoiDef(os.Getenv("MAX_TRANSPORT_FAILURES"), defaults.DefaultMaxTransportFailures),
	}
}

// URLTemplates returns the feed locations configured for the provider.
func (c Config) URLTemplates() provider.URLTemplates {
	return provider.URLTemplates{Today: c.TodayURL, Dated: c.DatedURL, ZeroPad: c.ZeroPad}
}
