package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tcmbrates/internal/application"
	"tcmbrates/internal/domain"
	"tcmbrates/internal/infrastructure/httpx"

	"go.uber.org/zap"
)

var _ application.RateProvider = (*TCMB)(nil)

// Fetcher returns the body served at url.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// TCMB reads the daily exchange-rate feeds of the Central Bank of the Republic of Turkey.
type TCMB struct {
	URLs   URLTemplates
	Client Fetcher
	// Now decides whether a day is served by the today feed. It should
	// report time in the publisher's location.
	Now func() time.Time
	Log *zap.Logger
}

func NewTCMB(client Fetcher, urls URLTemplates, now func() time.Time, log *zap.Logger) *TCMB {
	return &TCMB{URLs: urls, Client: client, Now: now, Log: log}
}

func (p *TCMB) Rates(ctx context.Context, day time.Time, filter bool) (domain.Rates, error) {
	if p.Client == nil {
		return domain.Rates{}, errors.New("tcmb: missing client")
	}
	urls := p.URLs
	if urls.Today == "" || urls.Dated == "" {
		def := DefaultURLTemplates()
		if urls.Today == "" {
			urls.Today = def.Today
		}
		if urls.Dated == "" {
			urls.Dated = def.Dated
		}
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}

	url := ResolveURL(day, now(), urls)
	log = log.With(zap.String("day", day.Format(time.DateOnly)), zap.String("url", url))

	raw, err := p.Client.Get(ctx, url)
	if err != nil {
		err = classifyFetchError(ctx, err)
		log.Debug("tcmb.fetch_failed", zap.Error(err))
		return domain.Rates{}, fmt.Errorf("tcmb: fetch %s: %w", url, err)
	}

	rates, err := ParseFeed(raw, filter)
	if err != nil {
		log.Debug("tcmb.parse_failed", zap.Int("bytes", len(raw)), zap.Error(err))
		return domain.Rates{}, fmt.Errorf("tcmb: parse %s: %w", url, err)
	}
	rates.Date = day
	log.Debug("tcmb.fetched", zap.Int("quotes", len(rates.Quotes)))
	return rates, nil
}

func classifyFetchError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return err
	}
	var se *httpx.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", application.ErrFeedNotPublished, err)
	}
	return fmt.Errorf("%w: %w", application.ErrTransport, err)
}
