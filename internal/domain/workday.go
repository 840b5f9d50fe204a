package domain

import "time"

// PreviousWorkday maps t onto the closest weekday at or before it.
// Saturday moves back one day, Sunday two; weekdays are returned unchanged.
func PreviousWorkday(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, -1)
	case time.Sunday:
		return t.AddDate(0, 0, -2)
	default:
		return t
	}
}

// StartOfDay truncates t to midnight in loc. A nil loc keeps t's own location.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBefore reports how many whole calendar days a lies before b. Both are compared in b's location.
func DaysBefore(a, b time.Time) int {
	a = StartOfDay(a, b.Location())
	b = StartOfDay(b, nil)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
