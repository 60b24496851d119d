package service

import (
	"lamsa/pkg/interval"
	"lamsa/pkg/model"
)

// slotFilter carries the per-request availability gates.
type slotFilter struct {
	bookings []interval.Interval // blocking bookings, merged
	// womenOnly gates slots inside the window for requesters whose
	// declared gender is not female. Zero when the restriction is off
	// or does not apply to this requester.
	womenOnly interval.Interval
	// nowMinute drops slots starting before the current clock time;
	// -1 for any date other than today.
	nowMinute int
}

// generateSlots chunks the open intervals into fixed-size slots and
// annotates availability. The grid is anchored at each open interval's
// start and stays fixed across the day: a slot overlapping a break is
// dropped, never shifted, so the grid after a mid-day break lines up
// with the grid before it. A trailing remainder shorter than one slot
// is discarded. Past slots on the current date are never returned.
func generateSlots(open, breaks []interval.Interval, granularityMin int, filter slotFilter) []model.Slot {
	slots := make([]model.Slot, 0)
	for _, iv := range open {
		for start := iv.Start; start+granularityMin <= iv.End; start += granularityMin {
			if filter.nowMinute >= 0 && start < filter.nowMinute {
				continue
			}

			window := interval.Interval{Start: start, End: start + granularityMin}
			if overlapsAny(window, breaks) {
				continue
			}

			slot := model.Slot{
				Time:      interval.FormatClock(start),
				Minute:    start,
				Available: true,
			}

			for _, booked := range filter.bookings {
				if window.Overlaps(booked) {
					slot.Available = false
					slot.Reason = model.SlotReasonBooked
					break
				}
			}
			if slot.Available && !filter.womenOnly.IsZero() && window.Overlaps(filter.womenOnly) {
				slot.Available = false
				slot.Reason = model.SlotReasonWomenOnly
			}

			slots = append(slots, slot)
		}
	}
	return slots
}

func overlapsAny(window interval.Interval, intervals []interval.Interval) bool {
	for _, iv := range intervals {
		if window.Overlaps(iv) {
			return true
		}
	}
	return false
}

// bookingIntervals converts blocking bookings into merged intervals,
// ignoring records with malformed times.
func bookingIntervals(bookings []*model.Booking) []interval.Interval {
	var intervals []interval.Interval
	for _, b := range bookings {
		if !b.Blocks() {
			continue
		}
		iv, err := interval.ParseRange(b.StartTime, b.EndTime)
		if err != nil {
			continue
		}
		intervals = append(intervals, iv)
	}
	return interval.Merge(intervals)
}
