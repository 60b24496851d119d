package service

import (
	"fmt"

	"lamsa/internal/prayer"
	"lamsa/pkg/interval"
	"lamsa/pkg/model"
)

// materializeBreaks expands the schedule's break rules for one weekday
// into concrete intervals. Static breaks map directly; a dynamic break
// becomes [prayer-flex, prayer+duration) clipped to the open hours.
// When prayer times are unknown the dynamic breaks are dropped with a
// warning: losing one only over-allocates a few slots, which is
// preferable to closing the day.
func materializeBreaks(schedule *model.WorkingSchedule, weekday int, open []interval.Interval, prayers *prayer.Times, defaultFlexMin, defaultDurationMin int) (breaks []interval.Interval, warnings []string) {
	for _, rule := range schedule.Breaks {
		if rule.DayOfWeek != weekday {
			continue
		}

		switch rule.Kind {
		case model.BreakStatic:
			iv, err := interval.ParseRange(rule.StartTime, rule.EndTime)
			if err != nil {
				warnings = append(warnings, "static break has invalid hours: "+err.Error())
				continue
			}
			breaks = append(breaks, iv)

		case model.BreakDynamic:
			if prayers == nil {
				warnings = append(warnings, fmt.Sprintf("prayer times unavailable, dropping %s break", rule.Prayer))
				continue
			}
			anchor, ok := prayers.Minute(rule.Prayer)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("unknown prayer %q in break rule", rule.Prayer))
				continue
			}

			flex := rule.FlexibilityMin
			if flex == 0 {
				flex = defaultFlexMin
			}
			duration := rule.DurationMin
			if duration == 0 {
				duration = defaultDurationMin
			}

			// The break opens flex minutes before the prayer and runs
			// for flex+duration, i.e. [anchor-flex, anchor+duration).
			start := anchor - flex
			if start < 0 {
				start = 0
			}
			end := anchor + duration
			if end > interval.MinutesPerDay {
				end = interval.MinutesPerDay
			}
			if start >= end {
				continue
			}
			// Clip to the open hours so a break near closing time does
			// not spill outside the day.
			breaks = append(breaks, interval.Intersect([]interval.Interval{{Start: start, End: end}}, open)...)
		}
	}

	return interval.Merge(breaks), warnings
}
