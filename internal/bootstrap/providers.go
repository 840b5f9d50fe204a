package bootstrap

import (
	"fmt"
	"net/http"
	"time"

	"tcmbrates/internal/application"
	"tcmbrates/internal/config"
	defaults "tcmbrates/internal/infrastructure/config"
	"tcmbrates/internal/infrastructure/httpx"
	"tcmbrates/internal/infrastructure/logx"
	"tcmbrates/internal/infrastructure/provider"

	"go.uber.org/zap"
)

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() config.Config { return config.Load() }

// ProvideLocation loads the publisher's time zone. Turkey has stayed on UTC+3
// since 2016, which is the fallback when zone data is unavailable.
func ProvideLocation(cfg config.Config, log *zap.Logger) *time.Location {
	name := cfg.Location
	if name == "" {
		name = defaults.DefaultLocation
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn("location_fallback", zap.String("location", name), zap.Error(err))
		return time.FixedZone("TRT", 3*60*60)
	}
	return loc
}

func ProvideFetcher(cfg config.Config, log *zap.Logger) *httpx.Client {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaults.DefaultHTTPClientTimeout
	}
	elapsed := cfg.RetryElapsed
	if elapsed <= 0 {
		elapsed = defaults.DefaultRetryMaxElapsed
	}
	return &httpx.Client{
		HTTP:           &http.Client{Timeout: timeout},
		Log:            log,
		MaxElapsedTime: elapsed,
	}
}

func ProvideRateProvider(cfg config.Config, loc *time.Location, log *zap.Logger) (application.RateProvider, error) {
	switch cfg.Provider {
	case "", "tcmb":
		now := func() time.Time { return time.Now().In(loc) }
		return provider.NewTCMB(ProvideFetcher(cfg, log), cfg.URLTemplates(), now, log), nil
	case "fake":
		return provider.NewFake(), nil
	default:
		return nil, fmt.Errorf("unsupported PROVIDER=%q", cfg.Provider)
	}
}

func ProvideRatesService(cfg config.Config, rp application.RateProvider, loc *time.Location, log *zap.Logger) (*application.RatesService, error) {
	mode, err := application.ParseSearchMode(cfg.SearchMode)
	if err != nil {
		return nil, fmt.Errorf("SEARCH_MODE: %w", err)
	}
	lookback := cfg.MaxLookbackDays
	if lookback < 0 {
		lookback = defaults.DefaultMaxLookbackDays
	}
	failures := cfg.MaxTransportFailures
	if failures <= 0 {
		failures = defaults.DefaultMaxTransportFailures
	}
	return application.NewRatesService(rp,
		application.WithLogger(log),
		application.WithLocation(loc),
		application.WithSearchMode(mode),
		application.WithMaxLookbackDays(lookback),
		application.WithMaxTransportFailures(failures),
	), nil
}

// InitRatesService builds the service and everything it depends on from cfg.
func InitRatesService(cfg config.Config, log *zap.Logger) (*application.RatesService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	loc := ProvideLocation(cfg, log)
	rp, err := ProvideRateProvider(cfg, loc, log)
	if err != nil {
		return nil, err
	}
	return ProvideRatesService(cfg, rp, loc, log)
}
