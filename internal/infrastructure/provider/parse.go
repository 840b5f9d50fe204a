package provider

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"tcmbrates/internal/application"
	"tcmbrates/internal/domain"

	"golang.org/x/text/encoding/charmap"
)

type feedXML struct {
	XMLName    xml.Name      `xml:"Tarih_Date"`
	Tarih      string        `xml:"Tarih,attr"`
	Date       string        `xml:"Date,attr"`
	BulletinNo string        `xml:"Bulten_No,attr"`
	Currencies []currencyXML `xml:"Currency"`
}

type currencyXML struct {
	Kod          string  `xml:"Kod,attr"`
	CurrencyCode string  `xml:"CurrencyCode,attr"`
	Unit         string  `xml:"Unit"`
	CurrencyName string  `xml:"CurrencyName"`
	ForexBuying  *string `xml:"ForexBuying"`
	ForexSelling *string `xml:"ForexSelling"`
}

// ParseFeed decodes a TCMB daily feed. With filter set only
// domain.SupportedCurrencies are kept. It returns application.ErrMalformedFeed
// when raw is not a feed and application.ErrEmptyFeed when nothing is kept.
func ParseFeed(raw []byte, filter bool) (domain.Rates, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return domain.Rates{}, fmt.Errorf("%w: empty body", application.ErrMalformedFeed)
	}

	var feed feedXML
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.CharsetReader = charsetReader
	if err := dec.Decode(&feed); err != nil {
		return domain.Rates{}, fmt.Errorf("%w: %v", application.ErrMalformedFeed, err)
	}

	rates := domain.Rates{PublishedDate: publishedDate(feed)}
	seen := make(map[string]bool, len(feed.Currencies))
	for i, c := range feed.Currencies {
		code := strings.TrimSpace(c.Kod)
		if code == "" {
			return domain.Rates{}, fmt.Errorf("%w: currency #%d has no Kod", application.ErrMalformedFeed, i)
		}
		// Records dropped by the filter may carry only cross rates.
		if filter && !domain.IsSupported(code) {
			continue
		}
		if c.ForexBuying == nil || c.ForexSelling == nil {
			return domain.Rates{}, fmt.Errorf("%w: currency %s is missing ForexBuying or ForexSelling", application.ErrMalformedFeed, code)
		}
		key := strings.ToUpper(code)
		if seen[key] {
			continue
		}
		seen[key] = true
		rates.Quotes = append(rates.Quotes, domain.CurrencyQuote{
			Code: code,
			Name: strings.TrimSpace(c.CurrencyName),
			Unit: unit(c.Unit),
			Buy:  strings.TrimSpace(*c.ForexBuying),
			Sell: strings.TrimSpace(*c.ForexSelling),
		})
	}
	if len(rates.Quotes) == 0 {
		return domain.Rates{}, application.ErrEmptyFeed
	}
	return rates, nil
}

func unit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// publishedDate reads the feed's own date, preferring the US formatted Date attribute.
func publishedDate(f feedXML) time.Time {
	if t, err := time.Parse("01/02/2006", strings.TrimSpace(f.Date)); err == nil {
		return t
	}
	if t, err := time.Parse("02.01.2006", strings.TrimSpace(f.Tarih)); err == nil {
		return t
	}
	return time.Time{}
}

// Older archived feeds declare a Turkish single-byte encoding.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "iso-8859-9", "iso8859-9", "latin5":
		return charmap.ISO8859_9.NewDecoder().Reader(input), nil
	case "windows-1254", "cp1254":
		return charmap.Windows1254.NewDecoder().Reader(input), nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
}
