package model

import (
	"time"
)

// TimeOff is an explicit provider-declared unavailability range. It always
// overrides shifts, Ramadan schedules and special dates for the dates it
// covers. When StartTime/EndTime are empty the whole day is blocked.
type TimeOff struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ProviderID     string    `json:"provider_id" bson:"provider_id" validate:"required"`
	StartDate      string    `json:"start_date" bson:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string    `json:"end_date" bson:"end_date" validate:"required,datetime=2006-01-02"`
	StartTime      string    `json:"start_time,omitempty" bson:"start_time,omitempty" validate:"omitempty,clock"`
	EndTime        string    `json:"end_time,omitempty" bson:"end_time,omitempty" validate:"omitempty,clock"`
	BlocksBookings bool      `json:"blocks_bookings" bson:"blocks_bookings"`
	Reason         string    `json:"reason,omitempty" bson:"reason,omitempty" validate:"omitempty,max=200"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Covers reports whether the inclusive date range contains the given
// "YYYY-MM-DD" date. Lexicographic comparison is safe for this format.
func (t *TimeOff) Covers(date string) bool {
	return t.StartDate <= date && date <= t.EndDate
}

// WholeDay reports whether the time off blocks the entire day rather than a
// specific window.
func (t *TimeOff) WholeDay() bool {
	return t.StartTime == "" || t.EndTime == ""
}

// SpecialDate is a one-off override of a provider's hours for a single
// calendar date: either a holiday (closed) or custom open hours. Unique per
// (provider, date); the highest-priority override for that date short of
// time off.
type SpecialDate struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ProviderID string    `json:"provider_id" bson:"provider_id" validate:"required"`
	Date       string    `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	IsHoliday  bool      `json:"is_holiday" bson:"is_holiday"`
	OpensAt    string    `json:"opens_at,omitempty" bson:"opens_at,omitempty" validate:"omitempty,clock,required_unless=IsHoliday true"`
	ClosesAt   string    `json:"closes_at,omitempty" bson:"closes_at,omitempty" validate:"omitempty,clock,required_unless=IsHoliday true"`
	Reason     string    `json:"reason,omitempty" bson:"reason,omitempty" validate:"omitempty,max=200"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type RamadanTemplate string

const (
	RamadanEarlyShift RamadanTemplate = "early_shift"
	RamadanLateShift  RamadanTemplate = "late_shift"
	RamadanSplitShift RamadanTemplate = "split_shift"
	RamadanCustom     RamadanTemplate = "custom"
)

// RamadanSchedule replaces a provider's working hours wholesale for dates
// inside the lunar month of Ramadan. One per provider per lunar year.
type RamadanSchedule struct {
	ID                   string          `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ProviderID           string          `json:"provider_id" bson:"provider_id" validate:"required"`
	Year                 int             `json:"year" bson:"year" validate:"required,min=2020,max=2100"`
	TemplateType         RamadanTemplate `json:"template_type" bson:"template_type" validate:"required,oneof=early_shift late_shift split_shift custom"`
	EarlyStart           string          `json:"early_start,omitempty" bson:"early_start,omitempty" validate:"omitempty,clock"`
	EarlyEnd             string          `json:"early_end,omitempty" bson:"early_end,omitempty" validate:"omitempty,clock"`
	LateStart            string          `json:"late_start,omitempty" bson:"late_start,omitempty" validate:"omitempty,clock"`
	LateEnd              string          `json:"late_end,omitempty" bson:"late_end,omitempty" validate:"omitempty,clock"`
	IftarBreakMinutes    int             `json:"iftar_break_minutes" bson:"iftar_break_minutes" validate:"min=0,max=240"`
	AutoAdjustMaghrib    bool            `json:"auto_adjust_maghrib" bson:"auto_adjust_maghrib"`
	OfferHomeServiceOnly bool            `json:"offer_home_service_only" bson:"offer_home_service_only"`
	CreatedAt            time.Time       `json:"created_at" bson:"created_at" validate:"omitempty"`
}
