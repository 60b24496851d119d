package prayer

// Gregorian Ramadan boundaries, inclusive on both ends. Dates follow
// the Umm al-Qura calendar; actual start may shift by a day on moon
// sighting, which providers can absorb via special dates.
var ramadanRanges = map[int][2]string{
	2024: {"2024-03-11", "2024-04-09"},
	2025: {"2025-03-01", "2025-03-30"},
	2026: {"2026-02-18", "2026-03-19"},
	2027: {"2027-02-08", "2027-03-09"},
	2028: {"2028-01-28", "2028-02-26"},
	2029: {"2029-01-16", "2029-02-14"},
	2030: {"2030-01-06", "2030-02-04"},
}

// RamadanRange returns the inclusive start and end dates (YYYY-MM-DD)
// of Ramadan for the given Gregorian year. ok is false for years
// outside the table.
func RamadanRange(year int) (start, end string, ok bool) {
	r, ok := ramadanRanges[year]
	if !ok {
		return "", "", false
	}
	return r[0], r[1], true
}

// IsRamadan reports whether the date (YYYY-MM-DD) falls inside Ramadan.
// Dates in years outside the table are treated as regular days.
func IsRamadan(date string) bool {
	_, ok := RamadanYear(date)
	return ok
}

// RamadanYear returns the Gregorian year keying the Ramadan period that
// contains the date, which is the year the period started in. ok is
// false when the date is outside Ramadan or outside the table.
func RamadanYear(date string) (int, bool) {
	if len(date) < 4 {
		return 0, false
	}
	year := 0
	for _, c := range date[:4] {
		if c < '0' || c > '9' {
			return 0, false
		}
		year = year*10 + int(c-'0')
	}
	if r, ok := ramadanRanges[year]; ok && date >= r[0] && date <= r[1] {
		return year, true
	}
	// Ramadan drifts earlier each year; a January date can belong to a
	// Ramadan that started the previous December.
	if r, ok := ramadanRanges[year-1]; ok && date >= r[0] && date <= r[1] {
		return year - 1, true
	}
	return 0, false
}
