package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"lamsa/pkg/interval"
	"lamsa/pkg/logger"
	"lamsa/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// AvailabilityValidator validates slot queries and availability checks.
// It registers the "clock" tag used throughout the schedule models.
type AvailabilityValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAvailabilityValidator(log *logger.Logger) *AvailabilityValidator {
	v := validator.New()

	if err := v.RegisterValidation("clock", validateClock); err != nil {
		log.Fatal("Failed to register 'clock' validator", "error", err)
	}

	return &AvailabilityValidator{
		validate: v,
		logger:   log,
	}
}

// validateClock accepts "HH:MM" 24-hour times; empty values are handled
// by omitempty on the field.
func validateClock(fl validator.FieldLevel) bool {
	_, err := interval.ParseClock(fl.Field().String())
	return err == nil
}

func (v *AvailabilityValidator) ValidateSlotQuery(q *model.SlotQuery) error {
	return v.translate(v.validate.Struct(q))
}

func (v *AvailabilityValidator) ValidateCheck(c *model.AvailabilityCheck) error {
	return v.translate(v.validate.Struct(c))
}

func (v *AvailabilityValidator) translate(err error) error {
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	var out ValidationErrors
	for _, fe := range validationErrs {
		message := fe.Error()
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fe.Field())
		case "datetime":
			message = fmt.Sprintf("%s must be a YYYY-MM-DD date", fe.Field())
		case "clock":
			message = fmt.Sprintf("%s must be in HH:MM 24-hour format", fe.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
		}
		out = append(out, ValidationError{Field: fe.Field(), Message: message})
	}
	return out
}
