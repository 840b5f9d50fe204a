package application

import (
	"context"
	"sync"
	"time"

	"tcmbrates/internal/domain"
)

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

type providerCall struct {
	Day    time.Time
	Filter bool
}

// fakeRateProvider answers from a per-day table; unknown days report ErrFeedNotPublished.
type fakeRateProvider struct {
	mu       sync.Mutex
	days     map[string]domain.Rates
	errs     map[string]error
	fallback error
	calls    []providerCall
}

func newFakeRateProvider() *fakeRateProvider {
	return &fakeRateProvider{days: map[string]domain.Rates{}, errs: map[string]error{}}
}

func (f *fakeRateProvider) withDay(day string, quotes ...domain.CurrencyQuote) *fakeRateProvider {
	d, _ := time.Parse(time.DateOnly, day)
	f.days[day] = domain.Rates{Date: d, PublishedDate: d, Quotes: quotes}
	return f
}

func (f *fakeRateProvider) withErr(day string, err error) *fakeRateProvider {
	f.errs[day] = err
	return f
}

func (f *fakeRateProvider) Rates(_ context.Context, day time.Time, filter bool) (domain.Rates, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, providerCall{Day: day, Filter: filter})
	key := day.Format(time.DateOnly)
	if err, ok := f.errs[key]; ok {
		return domain.Rates{}, err
	}
	r, ok := f.days[key]
	if !ok {
		if f.fallback != nil {
			return domain.Rates{}, f.fallback
		}
		return domain.Rates{}, ErrFeedNotPublished
	}
	if filter {
		var kept []domain.CurrencyQuote
		for _, q := range r.Quotes {
			if domain.IsSupported(q.Code) {
				kept = append(kept, q)
			}
		}
		r.Quotes = kept
		if len(kept) == 0 {
			return domain.Rates{}, ErrEmptyFeed
		}
	}
	return r, nil
}

func (f *fakeRateProvider) probedDays() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Day.Format(time.DateOnly))
	}
	return out
}

var (
	usd = domain.CurrencyQuote{Code: "USD", Unit: 1, Buy: "41.8512", Sell: "41.9266"}
	eur = domain.CurrencyQuote{Code: "EUR", Unit: 1, Buy: "48.6877", Sell: "48.7754"}
	gbp = domain.CurrencyQuote{Code: "GBP", Unit: 1, Buy: "55.8921", Sell: "56.1835"}
	try = domain.CurrencyQuote{Code: "TRY", Unit: 1, Buy: "1", Sell: "1"}
)

func date(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}
