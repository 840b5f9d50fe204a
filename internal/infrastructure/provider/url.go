package provider

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tcmbrates/internal/domain"
)

const (
	DefaultTodayURL = "https://www.tcmb.gov.tr/kurlar/today.xml"
	DefaultDatedURL = "https://www.tcmb.gov.tr/kurlar/{year}{month}/{day}{month}{year}.xml"
)

// URLTemplates describes where feeds are published. Dated may contain the
// placeholders {year}, {month} and {day}; every occurrence is substituted.
type URLTemplates struct {
	Today string
	Dated string
	// ZeroPad renders month and day with two digits.
	ZeroPad bool
}

func DefaultURLTemplates() URLTemplates {
	return URLTemplates{Today: DefaultTodayURL, Dated: DefaultDatedURL}
}

// ResolveURL returns the dated feed URL when day is a calendar day before now,
// and the today feed URL otherwise.
func ResolveURL(day, now time.Time, tpl URLTemplates) string {
	if domain.DaysBefore(day, now) <= 0 {
		return tpl.Today
	}
	return tpl.dated(day.In(now.Location()))
}

func (t URLTemplates) dated(day time.Time) string {
	y, m, d := day.Date()
	month, dom := strconv.Itoa(int(m)), strconv.Itoa(d)
	if t.ZeroPad {
		month, dom = fmt.Sprintf("%02d", int(m)), fmt.Sprintf("%02d", d)
	}
	return strings.NewReplacer(
		"{year}", strconv.Itoa(y),
		"{month}", month,
		"{day}", dom,
	).Replace(t.Dated)
}
