package config

import (
	"time"

	"tcmbrates/internal/application"
)

const (
	DefaultHTTPPort             = "8080"
	DefaultShutdownTimeout      = 10 * time.Second
	DefaultRequestTimeout       = 15 * time.Second
	DefaultHTTPClientTimeout    = 10 * time.Second
	DefaultRetryMaxElapsed      = 3 * time.Second
	DefaultLocation             = "Europe/Istanbul"
	DefaultProvider             = "tcmb"
	DefaultSearchMode           = "origin"
	DefaultMaxLookbackDays      = application.DefaultMaxLookbackDays
	DefaultMaxTransportFailures = application.DefaultMaxTransportFailures
)
