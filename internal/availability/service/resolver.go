package service

import (
	"time"

	availerrors "lamsa/internal/availability/errors"
	"lamsa/pkg/model"
)

// resolveSchedule picks the single effective working schedule for the
// date: active, effective range contains the date, recurrence rule
// matching the date's seasonal state. "ramadan" schedules win during
// Ramadan; when a provider has none, the regular "none"/"yearly"
// schedules still apply (a RamadanSchedule override rewrites the hours
// downstream). Highest priority wins, ties broken by most recent
// creation.
func resolveSchedule(schedules []*model.WorkingSchedule, date string, inRamadan bool) (*model.WorkingSchedule, error) {
	var best, bestSeasonal *model.WorkingSchedule

	for _, sc := range schedules {
		if !sc.IsActive {
			continue
		}
		if sc.EffectiveFrom != "" && sc.EffectiveFrom > date {
			continue
		}
		if sc.EffectiveTo != "" && sc.EffectiveTo < date {
			continue
		}

		if sc.Recurrence == model.RecurrenceRamadan {
			if inRamadan && preferred(sc, bestSeasonal) {
				bestSeasonal = sc
			}
			continue
		}
		if preferred(sc, best) {
			best = sc
		}
	}

	if bestSeasonal != nil {
		return bestSeasonal, nil
	}
	if best != nil {
		return best, nil
	}
	return nil, availerrors.ErrNoEffectiveSchedule
}

func preferred(candidate, current *model.WorkingSchedule) bool {
	if current == nil {
		return true
	}
	if candidate.Priority != current.Priority {
		return candidate.Priority > current.Priority
	}
	return candidate.CreatedAt.After(current.CreatedAt)
}

// weekdayOf returns the day of week (0 = Sunday) for a YYYY-MM-DD date.
func weekdayOf(date string) (int, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, err
	}
	return int(day.Weekday()), nil
}
