package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"tcmbrates/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_GetCurrencies_FirstAttempt(t *testing.T) {
	t.Parallel()
	p := newFakeRateProvider().withDay("2026-10-14", usd, eur, gbp)
	svc := NewRatesService(p)

	got, err := svc.GetCurrencies(context.Background(), date("2026-10-14"))
	require.NoError(t, err)
	require.Equal(t, []domain.CurrencyQuote{usd, eur, gbp}, got)
	require.Equal(t, []string{"2026-10-14"}, p.probedDays())
	require.True(t, p.calls[0].Filter)
}

func Test_GetCurrencies_SaturdayProbesFriday(t *testing.T) {
	t.Parallel()
	p := newFakeRateProvider().withDay("2026-10-09", usd)
	svc := NewRatesService(p)

	got, err := svc.GetCurrencies(context.Background(), date("2026-10-10"))
	require.NoError(t, err)
	require.Equal(t, []domain.CurrencyQuote{usd}, got)
	require.Equal(t, []string{"2026-10-09"}, p.probedDays())
}

func Test_GetCurrencies_StepsBackUntilData(t *testing.T) {
	t.Parallel()
	p := newFakeRateProvider().
		withDay("2026-10-09", usd, eur).
		withErr("2026-10-13", ErrEmptyFeed).
		withErr("2026-10-12", fmt.Errorf("tcmb: parse: %w", ErrMalformedFeed))
	svc := NewRatesService(p)

	got, err := svc.GetCurrencies(context.Background(), date("2026-10-14"))
	require.NoError(t, err)
	require.Equal(t, []domain.CurrencyQuote{usd, eur}, got)
	// 10-11 is a Sunday and resolves to 10-09.
	require.Equal(t, []string{"2026-10-14", "2026-10-13", "2026-10-12", "2026-10-09"}, p.probedDays())
}

func Test_GetCurrencies_DoesNotProbeSameDayTwice(t *testing.T) {
	t.Parallel()
	p := newFakeRateProvider().withDay("2026-10-08", eur)
	svc := NewRatesService(p)

	_, err := svc.GetCurrencies(context.Background(), date("2026-10-12"))
	require.NoError(t, err)
	require.Equal(t, []string{"2026-10-12", "2026-10-09", "2026-10-08"}, p.probedDays())
}

func Test_GetCurrencies_FilteredFeedWithoutSupportedCodesIsSkipped(t *testing.T) {
	t.Parallel()
	p := newFakeRateProvider().
		withDay("2026-10-14", try).
		withDay("2026-10-13", usd, try)
	svc := NewRatesService(p)

	got, err := svc.GetCurrencies(context.Background(), date("2026-10-14"))
	require.NoError(t, err)
	require.Equal(t, []domain.CurrencyQuote{usd}, got)
	require.Len(t, p.calls, 2)
}

func Test_GetCurrencies_CumulativeMode(t *testing.T) {
	t.Parallel()
	p := newFakeRateProvider().withDay("2026-10-06", gbp)
	svc := NewRatesService(p, WithSearchMode(SearchCumulative))

	got, err := svc.GetCurrencies(context.Background(), date("2026-10-14"))
	require.NoError(t, err)
	require.Equal(t, []domain.CurrencyQuote{gbp}, got)
	// 14, 14-1=13, 13-2=11 (Sun) -> 09, 09-3=06
	require.Equal(t, []string{"2026-10-14", "2026-10-13", "2026-10-09", "2026-10-06"}, p.probedDays())
}

func Test_GetCurrencies_CumulativeModeExhausts(t *testing.T) {
	t.Parallel()
	p := newFakeRateProvider()
	svc := NewRatesService(p, WithSearchMode(SearchCumulative))

	_, err := svc.GetCurrencies(context.Background(), date("2026-10-14"))
	require.ErrorIs(t, err, ErrNoData)
	// next candidate would be 06-4=02, twelve days back
	require.Equal(t, []string{"2026-10-14", "2026-10-13", "2026-10-09", "2026-10-06"}, p.probedDays())
}

func Test_GetCurrencies_LookbackExhausted(t *testing.T) {
	t.Parallel()
	p := newFakeRateProvider()
	svc := NewRatesService(p)

	_, err := svc.GetCurrencies(context.Background(), date("2026-10-14"))
	require.ErrorIs(t, err, ErrNoData)
	require.Equal(t, []string{
		"2026-10-14", "2026-10-13", "2026-10-12", "2026-10-09",
		"2026-10-08", "2026-10-07", "2026-10-06", "2026-10-05",
	}, p.probedDays())
}

func Test_GetCurrencies_ZeroLookbackProbesOnce(t *testing.T) {
	t.Parallel()
	p := newFakeRateProvider()
	svc := NewRatesService(p, WithMaxLookbackDays(0))

	_, err := svc.GetCurrencies(context.Background(), date("2026-10-14"))
	require.ErrorIs(t, err, ErrNoData)
	require.Len(t, p.calls, 1)
}

func Test_GetCurrencies_TransportFailuresStopSearch(t *testing.T) {
	t.Parallel()
	p := newFakeRateProvider()
	p.fallback = fmt.Errorf("tcmb: fetch: %w", ErrTransport)
	svc := NewRatesService(p, WithMaxTransportFailures(3))

	_, err := svc.GetCurrencies(context.Background(), date("2026-10-14"))
	require.ErrorIs(t, err, ErrTransport)
	require.Len(t, p.calls, 3)
}

func Test_GetCurrencies_TransportFailureThenData(t *testing.T) {
	t.Parallel()
	p := newFakeRateProvider().
		withErr("2026-10-14", ErrTransport).
		withDay("2026-10-13", usd)
	svc := NewRatesService(p)

	got, err := svc.GetCurrencies(context.Background(), date("2026-10-14"))
	require.NoError(t, err)
	require.Equal(t, []domain.CurrencyQuote{usd}, got)
}

func Test_GetCurrencies_TransportCounterResetsOnMiss(t *testing.T) {
	t.Parallel()
	p := newFakeRateProvider().
		withErr("2026-10-14", ErrTransport).
		withErr("2026-10-13", ErrEmptyFeed).
		withErr("2026-10-12", ErrTransport).
		withDay("2026-10-09", eur)
	svc := NewRatesService(p, WithMaxTransportFailures(2))

	got, err := svc.GetCurrencies(context.Background(), date("2026-10-14"))
	require.NoError(t, err)
	require.Equal(t, []domain.CurrencyQuote{eur}, got)
}

func Test_GetCurrencies_UnexpectedErrorFailsFast(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	p := newFakeRateProvider().withErr("2026-10-14", boom)
	svc := NewRatesService(p)

	_, err := svc.GetCurrencies(context.Background(), date("2026-10-14"))
	require.ErrorIs(t, err, boom)
	require.Len(t, p.calls, 1)
}

func Test_GetCurrencies_CanceledContext(t *testing.T) {
	t.Parallel()
	p := newFakeRateProvider()
	svc := NewRatesService(p)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GetCurrencies(ctx, date("2026-10-14"))
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, p.calls, 1)
}

func Test_GetCurrencies_UsesPublisherLocation(t *testing.T) {
	t.Parallel()
	p := newFakeRateProvider().withDay("2026-10-16", usd)
	trt := time.FixedZone("TRT", 3*60*60)
	svc := NewRatesService(p, WithLocation(trt))

	// Already Saturday the 17th in Istanbul.
	_, err := svc.GetCurrencies(context.Background(), time.Date(2026, 10, 16, 22, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, p.calls, 1)
	require.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, trt), p.calls[0].Day)
}

func Test_GetRates_All(t *testing.T) {
	t.Parallel()
	p := newFakeRateProvider().withDay("2026-10-14", usd, eur, gbp, try)
	svc := NewRatesService(p)

	got, err := svc.GetRates(context.Background(), date("2026-10-14"), true)
	require.NoError(t, err)
	require.Len(t, got.Quotes, 4)
	require.Equal(t, date("2026-10-14"), got.Date)
	require.False(t, p.calls[0].Filter)
}

func Test_GetCurrency(t *testing.T) {
	t.Parallel()
	p := newFakeRateProvider().withDay("2026-10-14", usd, eur, gbp, try)
	svc := NewRatesService(p)
	ctx := context.Background()

	q, err := svc.GetCurrency(ctx, date("2026-10-14"), "usd")
	require.NoError(t, err)
	require.Equal(t, usd, q)

	_, err = svc.GetCurrency(ctx, date("2026-10-14"), "TRY")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetCurrency(ctx, date("2026-10-14"), "JPY")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func Test_GetCurrency_InvalidCode(t *testing.T) {
	t.Parallel()
	p := newFakeRateProvider()
	svc := NewRatesService(p)

	_, err := svc.GetCurrency(context.Background(), date("2026-10-14"), "US")
	require.ErrorIs(t, err, domain.ErrInvalidCurrencyCode)
	require.Empty(t, p.calls)
}

func Test_GetCurrency_PropagatesNoData(t *testing.T) {
	t.Parallel()
	svc := NewRatesService(newFakeRateProvider(), WithMaxLookbackDays(2))

	_, err := svc.GetCurrency(context.Background(), date("2026-10-14"), "USD")
	require.ErrorIs(t, err, ErrNoData)
}

func Test_Today(t *testing.T) {
	t.Parallel()
	trt := time.FixedZone("TRT", 3*60*60)
	svc := NewRatesService(newFakeRateProvider(),
		WithClock(fakeClock{t: time.Date(2026, 10, 16, 21, 30, 0, 0, time.UTC)}),
		WithLocation(trt),
	)
	require.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, trt), svc.Today())
}

func Test_ParseSearchMode(t *testing.T) {
	t.Parallel()
	m, err := ParseSearchMode("")
	require.NoError(t, err)
	require.Equal(t, SearchFromOrigin, m)

	m, err = ParseSearchMode("Cumulative")
	require.NoError(t, err)
	require.Equal(t, SearchCumulative, m)
	require.Equal(t, "cumulative", m.String())

	_, err = ParseSearchMode("sideways")
	require.Error(t, err)
}
