package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
	CodeBadRequest   = "BAD_REQUEST"
	CodeTimeout      = "TIMEOUT"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
	CodeInvalidInput = "INVALID_INPUT"

	// Availability verdict codes. These are expected outcomes on the booking
	// hot path and are returned as values, never panics.
	CodeNoEffectiveSchedule = "NO_EFFECTIVE_SCHEDULE"
	CodeOutOfBookingWindow  = "OUT_OF_BOOKING_WINDOW"
	CodeSlotNotFound        = "SLOT_NOT_FOUND"
	CodeSlotUnavailable     = "SLOT_UNAVAILABLE"
	CodeInsufficientTime    = "INSUFFICIENT_CONTIGUOUS_TIME"
	CodeSlotConflict        = "SLOT_CONFLICT"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) ToJSON() []byte {
	response := ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}
	data, _ := json.Marshal(response)
	return data
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func Timeout(message string) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    message,
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

func Unavailable(service string) *AppError {
	return &AppError{
		Code:       CodeUnavailable,
		Message:    fmt.Sprintf("%s is temporarily unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// NoEffectiveSchedule means the provider has no applicable weekly schedule for
// the date. Surfaced as "not bookable this date", not a server failure.
func NoEffectiveSchedule(providerID, date string) *AppError {
	return &AppError{
		Code:       CodeNoEffectiveSchedule,
		Message:    "Provider has no working schedule for this date",
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"provider_id": providerID,
			"date":        date,
		},
	}
}

func OutOfBookingWindow(message string) *AppError {
	return &AppError{
		Code:       CodeOutOfBookingWindow,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func SlotNotFound(requestedTime string) *AppError {
	return &AppError{
		Code:       CodeSlotNotFound,
		Message:    "Requested time does not match any bookable slot",
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"requested_time": requestedTime,
		},
	}
}

func SlotUnavailable(requestedTime, reason string) *AppError {
	return &AppError{
		Code:       CodeSlotUnavailable,
		Message:    "Requested slot is not available",
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"requested_time": requestedTime,
			"reason":         reason,
		},
	}
}

func InsufficientContiguousTime(requestedTime string, durationMin int) *AppError {
	return &AppError{
		Code:       CodeInsufficientTime,
		Message:    "Service duration does not fit in the remaining open time",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"requested_time": requestedTime,
			"duration_min":   durationMin,
		},
	}
}

// SlotConflict is raised by the booking write path when the unique slot index
// rejects a second writer for an already-taken slot.
func SlotConflict(message string) *AppError {
	return &AppError{
		Code:       CodeSlotConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
