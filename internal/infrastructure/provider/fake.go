package provider

import (
	"context"
	"time"

	"tcmbrates/internal/application"
	"tcmbrates/internal/domain"
)

// Ensure Fake implements application.RateProvider.
var _ application.RateProvider = (*Fake)(nil)

// Fake publishes the same quotes on every weekday and nothing at weekends.
type Fake struct {
	quotes []domain.CurrencyQuote
}

func NewFake(quotes ...domain.CurrencyQuote) *Fake {
	if len(quotes) == 0 {
		quotes = []domain.CurrencyQuote{
			{Code: "USD", Name: "US DOLLAR", Unit: 1, Buy: "41.8512", Sell: "41.9266"},
			{Code: "EUR", Name: "EURO", Unit: 1, Buy: "48.6877", Sell: "48.7754"},
			{Code: "GBP", Name: "POUND STERLING", Unit: 1, Buy: "55.8921", Sell: "56.1835"},
			{Code: "JPY", Name: "JAPENESE YEN", Unit: 100, Buy: "27.6925", Sell: "27.8758"},
		}
	}
	return &Fake{quotes: quotes}
}

func (f *Fake) Rates(_ context.Context, day time.Time, filter bool) (domain.Rates, error) {
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return domain.Rates{}, application.ErrFeedNotPublished
	}
	out := domain.Rates{Date: day, PublishedDate: day}
	for _, q := range f.quotes {
		if filter && !domain.IsSupported(q.Code) {
			continue
		}
		out.Quotes = append(out.Quotes, q)
	}
	if len(out.Quotes) == 0 {
		return domain.Rates{}, application.ErrEmptyFeed
	}
	return out, nil
}
