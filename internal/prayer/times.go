// Package prayer resolves daily prayer times and Ramadan calendar
// boundaries for dynamic break placement and seasonal schedules.
package prayer

import (
	"context"

	"lamsa/pkg/model"
)

// Times holds the five daily prayer times for a single date, expressed
// as minutes since midnight local time.
type Times struct {
	Date    string
	Fajr    int
	Dhuhr   int
	Asr     int
	Maghrib int
	Isha    int
}

// Minute returns the minute-of-day for the named prayer. The second
// return is false for unknown prayer names.
func (t Times) Minute(name model.PrayerName) (int, bool) {
	switch name {
	case model.PrayerFajr:
		return t.Fajr, true
	case model.PrayerDhuhr:
		return t.Dhuhr, true
	case model.PrayerAsr:
		return t.Asr, true
	case model.PrayerMaghrib:
		return t.Maghrib, true
	case model.PrayerIsha:
		return t.Isha, true
	default:
		return 0, false
	}
}

// Provider fetches prayer times for a city on a given date. Date is in
// YYYY-MM-DD form. Implementations must honor the context deadline;
// callers treat any error as "times unknown" and degrade gracefully.
type Provider interface {
	Times(ctx context.Context, city, date string) (Times, error)
}
