package model

import (
	"time"
)

// RecurrenceRule controls which dates a working schedule can apply to.
// "ramadan" schedules match only dates inside the provider's Ramadan period;
// "none" and "yearly" match ordinary dates.
type RecurrenceRule string

const (
	RecurrenceNone    RecurrenceRule = "none"
	RecurrenceYearly  RecurrenceRule = "yearly"
	RecurrenceRamadan RecurrenceRule = "ramadan"
)

type BreakKind string

const (
	BreakStatic  BreakKind = "static"
	BreakDynamic BreakKind = "dynamic"
)

// PrayerName anchors a dynamic break to one of the five daily prayers.
type PrayerName string

const (
	PrayerFajr    PrayerName = "fajr"
	PrayerDhuhr   PrayerName = "dhuhr"
	PrayerAsr     PrayerName = "asr"
	PrayerMaghrib PrayerName = "maghrib"
	PrayerIsha    PrayerName = "isha"
)

// WorkingSchedule is a provider's recurring weekly timetable. A provider may
// hold several; at most one is effective for any given date (highest priority
// among active schedules whose effective range contains the date and whose
// recurrence rule matches the date's seasonal state).
type WorkingSchedule struct {
	ID            string         `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ProviderID    string         `json:"provider_id" bson:"provider_id" validate:"required"`
	Name          string         `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,max=100"`
	IsActive      bool           `json:"is_active" bson:"is_active"`
	Priority      int            `json:"priority" bson:"priority" validate:"min=0,max=100"`
	EffectiveFrom string         `json:"effective_from,omitempty" bson:"effective_from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EffectiveTo   string         `json:"effective_to,omitempty" bson:"effective_to,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Recurrence    RecurrenceRule `json:"recurrence" bson:"recurrence" validate:"required,oneof=none yearly ramadan"`
	Shifts        []Shift        `json:"shifts" bson:"shifts" validate:"dive"`
	Breaks        []BreakRule    `json:"breaks,omitempty" bson:"breaks,omitempty" validate:"omitempty,dive"`
	CreatedAt     time.Time      `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Shift is one recurring weekly open-hours block. Overlapping shifts on the
// same day are permitted and merged before use.
type Shift struct {
	DayOfWeek   int    `json:"day_of_week" bson:"day_of_week" validate:"min=0,max=6"`
	StartTime   string `json:"start_time" bson:"start_time" validate:"required,clock"`
	EndTime     string `json:"end_time" bson:"end_time" validate:"required,clock"`
	ShiftType   string `json:"shift_type,omitempty" bson:"shift_type,omitempty" validate:"omitempty,max=50"`
	MaxBookings int    `json:"max_bookings,omitempty" bson:"max_bookings,omitempty" validate:"omitempty,min=1"`
}

// BreakRule is either a fixed clock-time break or a dynamic break anchored to
// a prayer time. A dynamic break only resolves to a concrete interval once a
// date and a prayer-time source are known.
type BreakRule struct {
	DayOfWeek      int        `json:"day_of_week" bson:"day_of_week" validate:"min=0,max=6"`
	Kind           BreakKind  `json:"kind" bson:"kind" validate:"required,oneof=static dynamic"`
	StartTime      string     `json:"start_time,omitempty" bson:"start_time,omitempty" validate:"omitempty,clock"`
	EndTime        string     `json:"end_time,omitempty" bson:"end_time,omitempty" validate:"omitempty,clock"`
	Prayer         PrayerName `json:"prayer,omitempty" bson:"prayer,omitempty" validate:"omitempty,oneof=fajr dhuhr asr maghrib isha"`
	FlexibilityMin int        `json:"flexibility_min,omitempty" bson:"flexibility_min,omitempty" validate:"omitempty,min=0,max=120"`
	DurationMin    int        `json:"duration_min,omitempty" bson:"duration_min,omitempty" validate:"omitempty,min=0,max=240"`
}
