package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tcmbrates/internal/domain"

	"go.uber.org/zap"
)

// SearchMode selects how the next candidate day is derived when a probe finds no data.
type SearchMode int

const (
	// SearchFromOrigin probes PreviousWorkday(date - attempt days), always counting from the requested date.
	SearchFromOrigin SearchMode = iota
	// SearchCumulative subtracts attempt days from the previously probed day,
	// so the step grows on every miss (0, 1, 2, 3, ... days).
	SearchCumulative
)

func (m SearchMode) String() string {
	switch m {
	case SearchCumulative:
		return "cumulative"
	default:
		return "origin"
	}
}

func ParseSearchMode(s string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "origin":
		return SearchFromOrigin, nil
	case "cumulative":
		return SearchCumulative, nil
	default:
		return SearchFromOrigin, fmt.Errorf("unknown search mode %q", s)
	}
}

const (
	DefaultMaxLookbackDays      = 10
	DefaultMaxTransportFailures = 3
)

type RatesService struct {
	provider             RateProvider
	clock                Clock
	log                  *zap.Logger
	loc                  *time.Location
	mode                 SearchMode
	maxLookbackDays      int
	maxTransportFailures int
}

type Option func(*RatesService)

func WithClock(c Clock) Option             { return func(s *RatesService) { s.clock = c } }
func WithLogger(l *zap.Logger) Option      { return func(s *RatesService) { s.log = l } }
func WithLocation(l *time.Location) Option { return func(s *RatesService) { s.loc = l } }
func WithSearchMode(m SearchMode) Option   { return func(s *RatesService) { s.mode = m } }

// WithMaxLookbackDays bounds how many calendar days before the requested date may be probed.
func WithMaxLookbackDays(n int) Option { return func(s *RatesService) { s.maxLookbackDays = n } }

// WithMaxTransportFailures sets how many consecutive transport failures end the search.
func WithMaxTransportFailures(n int) Option {
	return func(s *RatesService) { s.maxTransportFailures = n }
}

func NewRatesService(provider RateProvider, opts ...Option) *RatesService {
	s := &RatesService{
		provider:             provider,
		maxLookbackDays:      DefaultMaxLookbackDays,
		maxTransportFailures: DefaultMaxTransportFailures,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.maxLookbackDays < 0 {
		s.maxLookbackDays = 0
	}
	if s.maxTransportFailures <= 0 {
		s.maxTransportFailures = 1
	}
	return s
}

// Today returns the current calendar day in the publisher's location.
func (s *RatesService) Today() time.Time {
	return domain.StartOfDay(s.clock.Now(), s.loc)
}

// Location is the time zone calendar days are evaluated in.
func (s *RatesService) Location() *time.Location {
	return s.loc
}

// GetCurrencies returns the supported-currency quotes of the closest feed at or before date.
func (s *RatesService) GetCurrencies(ctx context.Context, date time.Time) ([]domain.CurrencyQuote, error) {
	rates, err := s.GetRates(ctx, date, false)
	if err != nil {
		return nil, err
	}
	return rates.Quotes, nil
}

// GetCurrency returns the quote for code, matched case-insensitively, from the feed GetCurrencies resolves to.
func (s *RatesService) GetCurrency(ctx context.Context, date time.Time, code string) (domain.CurrencyQuote, error) {
	if !domain.ValidateCode(code) {
		return domain.CurrencyQuote{}, fmt.Errorf("%w: %q", domain.ErrInvalidCurrencyCode, code)
	}
	rates, err := s.GetRates(ctx, date, false)
	if err != nil {
		return domain.CurrencyQuote{}, err
	}
	q, ok := rates.Find(code)
	if !ok {
		return domain.CurrencyQuote{}, fmt.Errorf("currency %s: %w", strings.ToUpper(code), domain.ErrNotFound)
	}
	return q, nil
}

// GetRates walks backward from date until a feed with data is found.
// With all set the feed is returned unfiltered.
func (s *RatesService) GetRates(ctx context.Context, date time.Time, all bool) (domain.Rates, error) {
	origin := domain.StartOfDay(date, s.loc)
	log := s.log.With(zap.String("date", origin.Format(time.DateOnly)), zap.Stringer("mode", s.mode))

	var (
		working           = origin
		last              time.Time
		transportFailures int
		lastErr           error
	)
	for attempt := 0; ; attempt++ {
		candidate := s.nextCandidate(origin, &working, attempt)
		if domain.DaysBefore(candidate, origin) > s.maxLookbackDays {
			log.Warn("rates_search.exhausted",
				zap.Int("attempts", attempt),
				zap.Int("max_lookback_days", s.maxLookbackDays),
				zap.NamedError("last_error", lastErr))
			return domain.Rates{}, fmt.Errorf("%w within %d days before %s", ErrNoData, s.maxLookbackDays, origin.Format(time.DateOnly))
		}
		if candidate.Equal(last) {
			continue
		}
		last = candidate

		rates, err := s.provider.Rates(ctx, candidate, !all)
		if err == nil {
			log.Debug("rates_search.found",
				zap.String("day", candidate.Format(time.DateOnly)),
				zap.Int("attempt", attempt),
				zap.Int("quotes", len(rates.Quotes)))
			return rates, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Rates{}, ctxErr
		}
		lastErr = err
		probeLog := log.With(zap.String("day", candidate.Format(time.DateOnly)), zap.Int("attempt", attempt), zap.Error(err))

		switch {
		case retryOnEarlierDay(err):
			transportFailures = 0
			probeLog.Debug("rates_search.miss")
		case errors.Is(err, ErrTransport):
			transportFailures++
			if transportFailures >= s.maxTransportFailures {
				probeLog.Warn("rates_search.transport_failed", zap.Int("consecutive_failures", transportFailures))
				return domain.Rates{}, err
			}
			probeLog.Debug("rates_search.transport_miss", zap.Int("consecutive_failures", transportFailures))
		default:
			probeLog.Warn("rates_search.failed")
			return domain.Rates{}, err
		}
	}
}

func (s *RatesService) nextCandidate(origin time.Time, working *time.Time, attempt int) time.Time {
	if s.mode == SearchCumulative {
		if attempt > 0 {
			*working = working.AddDate(0, 0, -attempt)
		}
		*working = domain.PreviousWorkday(*working)
		return *working
	}
	return domain.PreviousWorkday(origin.AddDate(0, 0, -attempt))
}
