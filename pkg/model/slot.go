package model

import (
	"lamsa/pkg/interval"
)

// Slot unavailability reasons, returned verbatim to calendar views.
const (
	SlotReasonBooked    = "booked"
	SlotReasonWomenOnly = "women_only_hours"
)

// Slot is a derived, never-persisted bookable unit. Produced fresh per
// request.
type Slot struct {
	Time      string `json:"time"`
	Minute    int    `json:"-"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// DaySchedule is the engine's full answer for one (provider, date) pair:
// the open hours after all exception layers, the materialized breaks, and
// the generated slot grid.
type DaySchedule struct {
	ProviderID     string              `json:"provider_id"`
	Date           string              `json:"date"`
	OpenIntervals  []interval.Interval `json:"open_intervals"`
	Breaks         []interval.Interval `json:"breaks,omitempty"`
	Slots          []Slot              `json:"slots"`
	GranularityMin int                 `json:"granularity_min"`
	Warnings       []string            `json:"warnings,omitempty"`
}

// Verdict is the availability check outcome. Rejections are expected
// validation outcomes, returned as values with a distinct reason code.
type Verdict struct {
	Accepted     bool               `json:"accepted"`
	ReasonCode   string             `json:"reason_code,omitempty"`
	Message      string             `json:"message,omitempty"`
	Slot         *Slot              `json:"slot,omitempty"`
	OpenInterval *interval.Interval `json:"open_interval,omitempty"`
}
