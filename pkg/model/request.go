package model

// SlotQuery asks for the full slot grid of one (provider, date) pair.
// GranularityMin of zero means "resolve from service, settings, then
// the configured default". RequesterGender feeds women-only-hours
// gating and may be empty.
type SlotQuery struct {
	ProviderID      string `json:"provider_id" validate:"required"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	ServiceID       string `json:"service_id,omitempty" validate:"omitempty"`
	GranularityMin  int    `json:"granularity_min,omitempty" validate:"omitempty,min=5,max=240"`
	RequesterGender string `json:"requester_gender,omitempty" validate:"omitempty,oneof=female male"`
}

// AvailabilityCheck validates one concrete (date, time, service) request
// before a booking is committed. DurationMin overrides the service
// duration when set.
type AvailabilityCheck struct {
	ProviderID      string `json:"provider_id" validate:"required"`
	ServiceID       string `json:"service_id,omitempty" validate:"omitempty"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string `json:"time" validate:"required,clock"`
	DurationMin     int    `json:"duration_min,omitempty" validate:"omitempty,min=5,max=480"`
	RequesterGender string `json:"requester_gender,omitempty" validate:"omitempty,oneof=female male"`
}
