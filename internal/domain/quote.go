package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyQuote is one <Currency> record of a single day's feed.
// Buy and Sell keep the publisher's text verbatim.
type CurrencyQuote struct {
	Code string
	Name string
	Unit int
	Buy  string
	Sell string
}

func (q CurrencyQuote) BuyDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(q.Buy)
}

func (q CurrencyQuote) SellDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(q.Sell)
}

// Mid returns the midpoint of the buy and sell rates. ok is false when either side is empty or not numeric.
func (q CurrencyQuote) Mid() (mid decimal.Decimal, ok bool) {
	buy, err := q.BuyDecimal()
	if err != nil {
		return decimal.Decimal{}, false
	}
	sell, err := q.SellDecimal()
	if err != nil {
		return decimal.Decimal{}, false
	}
	return buy.Add(sell).Div(decimal.NewFromInt(2)), true
}

// Rates is the result of probing one day's feed.
type Rates struct {
	// Date is the workday whose feed was requested.
	Date time.Time
	// PublishedDate is the date the feed declares for itself; zero if absent.
	PublishedDate time.Time
	Quotes        []CurrencyQuote
}

// Find returns the first quote whose code matches code case-insensitively.
func (r Rates) Find(code string) (CurrencyQuote, bool) {
	for _, q := range r.Quotes {
		if SameCode(q.Code, code) {
			return q, true
		}
	}
	return CurrencyQuote{}, false
}
