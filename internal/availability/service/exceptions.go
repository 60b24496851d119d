package service

import (
	"lamsa/internal/prayer"
	"lamsa/pkg/interval"
	"lamsa/pkg/model"
)

// dayContext carries everything needed to rewrite one day's open hours.
type dayContext struct {
	date      string
	weekday   int
	schedule  *model.WorkingSchedule
	ramadan   *model.RamadanSchedule
	special   *model.SpecialDate
	timeOffs  []*model.TimeOff
	inRamadan bool
}

// openHours applies the exception layers in strict priority order:
// weekly shifts, Ramadan wholesale replacement, special-date override,
// then time-off subtraction. Time off always wins. The returned iftar
// break, when non-zero, is materialized alongside the schedule's break
// rules. Malformed stored clock strings are skipped and reported as
// warnings rather than failing the whole day.
func openHours(day dayContext, prayers *prayer.Times, iftarFallback string) (open []interval.Interval, iftar interval.Interval, warnings []string) {
	open, warnings = shiftIntervals(day.schedule, day.weekday)

	if day.inRamadan && day.ramadan != nil {
		var w []string
		open, iftar, w = applyRamadan(day.ramadan, prayers, iftarFallback)
		warnings = append(warnings, w...)
	}

	if day.special != nil {
		if day.special.IsHoliday {
			open = nil
		} else if iv, err := interval.ParseRange(day.special.OpensAt, day.special.ClosesAt); err != nil {
			warnings = append(warnings, "special date has invalid hours: "+err.Error())
		} else {
			open = []interval.Interval{iv}
		}
	}

	if len(open) > 0 && len(day.timeOffs) > 0 {
		var holes []interval.Interval
		for _, to := range day.timeOffs {
			if !to.Covers(day.date) {
				continue
			}
			if to.WholeDay() {
				holes = append(holes, interval.Interval{Start: 0, End: interval.MinutesPerDay})
				continue
			}
			iv, err := interval.ParseRange(to.StartTime, to.EndTime)
			if err != nil {
				warnings = append(warnings, "time off has invalid hours: "+err.Error())
				continue
			}
			holes = append(holes, iv)
		}
		open = interval.Subtract(open, holes)
	}

	return open, iftar, warnings
}

// shiftIntervals unions the weekday's shifts into a minimal sorted set.
func shiftIntervals(schedule *model.WorkingSchedule, weekday int) ([]interval.Interval, []string) {
	var intervals []interval.Interval
	var warnings []string

	for _, shift := range schedule.Shifts {
		if shift.DayOfWeek != weekday {
			continue
		}
		iv, err := interval.ParseRange(shift.StartTime, shift.EndTime)
		if err != nil {
			warnings = append(warnings, "shift has invalid hours: "+err.Error())
			continue
		}
		intervals = append(intervals, iv)
	}
	return interval.Merge(intervals), warnings
}

// applyRamadan replaces the open hours wholesale with the Ramadan
// template's shift pair and computes the iftar break: at Maghrib when
// auto-adjust is on and prayer times are known, otherwise at the
// configured fallback clock time.
func applyRamadan(rs *model.RamadanSchedule, prayers *prayer.Times, iftarFallback string) ([]interval.Interval, interval.Interval, []string) {
	var intervals []interval.Interval
	var warnings []string

	addRange := func(start, end, label string) {
		if start == "" || end == "" {
			return
		}
		iv, err := interval.ParseRange(start, end)
		if err != nil {
			warnings = append(warnings, "ramadan "+label+" shift has invalid hours: "+err.Error())
			return
		}
		intervals = append(intervals, iv)
	}

	switch rs.TemplateType {
	case model.RamadanEarlyShift:
		addRange(rs.EarlyStart, rs.EarlyEnd, "early")
	case model.RamadanLateShift:
		addRange(rs.LateStart, rs.LateEnd, "late")
	default:
		addRange(rs.EarlyStart, rs.EarlyEnd, "early")
		addRange(rs.LateStart, rs.LateEnd, "late")
	}
	open := interval.Merge(intervals)

	var iftar interval.Interval
	if rs.IftarBreakMinutes > 0 {
		start := -1
		if rs.AutoAdjustMaghrib && prayers != nil {
			start = prayers.Maghrib
		} else if m, err := interval.ParseClock(iftarFallback); err == nil {
			start = m
		} else {
			warnings = append(warnings, "invalid iftar fallback time: "+iftarFallback)
		}
		if start >= 0 {
			end := start + rs.IftarBreakMinutes
			if end > interval.MinutesPerDay {
				end = interval.MinutesPerDay
			}
			iftar = interval.Interval{Start: start, End: end}
		}
	}

	return open, iftar, warnings
}
