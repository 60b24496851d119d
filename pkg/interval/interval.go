package interval

import (
	"fmt"
	"sort"
)

// MinutesPerDay bounds every interval; all schedule arithmetic is done in
// minutes since midnight so no caller ever touches raw timestamps.
const MinutesPerDay = 24 * 60

// Interval is a half-open [Start, End) range of minutes within one calendar
// day. Start and End are minutes since midnight, 0..1440.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// New validates and builds a day-local interval. Intervals that cross
// midnight (end <= start) are rejected; callers must split them into two
// same-day entries.
func New(start, end int) (Interval, error) {
	if start < 0 || end > MinutesPerDay {
		return Interval{}, fmt.Errorf("interval [%d, %d) is outside the day bounds", start, end)
	}
	if end <= start {
		return Interval{}, fmt.Errorf("interval [%d, %d) is empty or crosses midnight", start, end)
	}
	return Interval{Start: start, End: end}, nil
}

// ParseClock converts an "HH:MM" 24-hour clock string to minutes since
// midnight. "24:00" is accepted as the exclusive end of day.
func ParseClock(clock string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	if m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q: minute out of range", clock)
	}
	if h < 0 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid clock time %q: hour out of range", clock)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseRange parses a start/end clock pair into one interval.
func ParseRange(startClock, endClock string) (Interval, error) {
	start, err := ParseClock(startClock)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseClock(endClock)
	if err != nil {
		return Interval{}, err
	}
	return New(start, end)
}

func (iv Interval) IsZero() bool {
	return iv.End <= iv.Start
}

func (iv Interval) Duration() int {
	if iv.IsZero() {
		return 0
	}
	return iv.End - iv.Start
}

// Contains reports whether the minute m lies inside the half-open interval.
func (iv Interval) Contains(m int) bool {
	return m >= iv.Start && m < iv.End
}

// Overlaps reports whether two half-open intervals share any minute.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", FormatClock(iv.Start), FormatClock(iv.End))
}

// Clip bounds iv to the given limits, returning a zero interval when nothing
// remains.
func (iv Interval) Clip(bounds Interval) Interval {
	start := max(iv.Start, bounds.Start)
	end := min(iv.End, bounds.End)
	if end <= start {
		return Interval{}
	}
	return Interval{Start: start, End: end}
}

// Merge unions a set of intervals into a sorted, minimal, disjoint sequence.
// Zero-length intervals are dropped. Touching intervals ([9:00,12:00) and
// [12:00,17:00)) are coalesced.
func Merge(intervals []Interval) []Interval {
	in := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.IsZero() {
			in = append(in, iv)
		}
	}
	if len(in) == 0 {
		return nil
	}

	sort.Slice(in, func(i, j int) bool {
		if in[i].Start != in[j].Start {
			return in[i].Start < in[j].Start
		}
		return in[i].End < in[j].End
	})

	out := []Interval{in[0]}
	for _, iv := range in[1:] {
		last := &out[len(out)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// Subtract removes the union of holes from each base interval. A hole in the
// middle of a base interval splits it in two. The result is sorted and
// disjoint.
func Subtract(base []Interval, holes []Interval) []Interval {
	merged := Merge(base)
	cut := Merge(holes)
	if len(cut) == 0 {
		return merged
	}

	var out []Interval
	for _, iv := range merged {
		start := iv.Start
		for _, h := range cut {
			if h.End <= start || h.Start >= iv.End {
				continue
			}
			if h.Start > start {
				out = append(out, Interval{Start: start, End: h.Start})
			}
			if h.End > start {
				start = h.End
			}
		}
		if start < iv.End {
			out = append(out, Interval{Start: start, End: iv.End})
		}
	}
	return out
}

// Intersect returns the overlapping parts of two interval sets.
func Intersect(a, b []Interval) []Interval {
	left := Merge(a)
	right := Merge(b)

	var out []Interval
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		start := max(left[i].Start, right[j].Start)
		end := min(left[i].End, right[j].End)
		if start < end {
			out = append(out, Interval{Start: start, End: end})
		}
		if left[i].End < right[j].End {
			i++
		} else {
			j++
		}
	}
	return out
}

// TotalMinutes sums the durations of a disjoint interval set.
func TotalMinutes(intervals []Interval) int {
	total := 0
	for _, iv := range intervals {
		total += iv.Duration()
	}
	return total
}
