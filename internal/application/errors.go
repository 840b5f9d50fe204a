package application

import "errors"

// Errors a RateProvider reports for a single day. Everything except
// ErrTransport tells the search to try an earlier day.
var (
	ErrTransport        = errors.New("transport failure")
	ErrFeedNotPublished = errors.New("feed not published")
	ErrMalformedFeed    = errors.New("malformed feed")
	ErrEmptyFeed        = errors.New("empty feed")
)

// ErrNoData is returned when no day inside the lookback window had a usable feed.
var ErrNoData = errors.New("no data available")

func retryOnEarlierDay(err error) bool {
	return errors.Is(err, ErrEmptyFeed) ||
		errors.Is(err, ErrMalformedFeed) ||
		errors.Is(err, ErrFeedNotPublished)
}
