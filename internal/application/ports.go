package application

import (
	"context"
	"time"

	"tcmbrates/internal/domain"
)

// RateProvider loads the feed published for one day.
// With filter set only domain.SupportedCurrencies are returned.
type RateProvider interface {
	Rates(ctx context.Context, day time.Time, filter bool) (domain.Rates, error)
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
