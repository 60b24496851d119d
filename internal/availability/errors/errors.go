package errors

import "errors"

var (
	ErrNoEffectiveSchedule = errors.New("no effective working schedule for date")

	ErrNotFound = errors.New("availability record not found")

	ErrInvalidID = errors.New("invalid provider ID format")
)
