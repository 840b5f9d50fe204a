package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrInvalidCurrencyCode rejects a code that is not three letters before
	// any feed is fetched, so such lookups never reach ErrNotFound.
	ErrInvalidCurrencyCode = errors.New("invalid currency code")
)
