package domain

import (
	"fmt"
	"time"
)

// DateKey is a calendar date in canonical YYYY-MM-DD form. Keys are always
// derived from local wall-clock components, never from UTC serialization,
// so a solve at 23:30 in UTC-5 lands on the user's calendar day.
type DateKey string

const dateKeyLayout = "2006-01-02"

// NewDateKey builds the DateKey for t's local calendar date.
func NewDateKey(t time.Time) DateKey {
	year, month, day := t.Date()
	return DateKey(fmt.Sprintf("%04d-%02d-%02d", year, int(month), day))
}

// Today returns the DateKey for the current local date.
func Today() DateKey {
	return NewDateKey(time.Now())
}

// Time returns midnight local time on the key's date.
// Malformed keys are a contract violation and return the zero time.
func (d DateKey) Time() time.Time {
	t, err := time.ParseInLocation(dateKeyLayout, string(d), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the key n calendar days after d (n may be negative).
func (d DateKey) AddDays(n int) DateKey {
	return NewDateKey(d.Time().AddDate(0, 0, n))
}

// DaysBetween returns the calendar-day difference b - a, ignoring
// time of day. Differences are computed on UTC midnights so DST
// transitions in the local zone cannot skew the count.
func DaysBetween(a, b DateKey) int {
	ay, am, ad := a.Time().Date()
	by, bm, bd := b.Time().Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

func (d DateKey) String() string {
	return string(d)
}
