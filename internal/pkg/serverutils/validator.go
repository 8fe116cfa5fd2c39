package serverutils

import (
	"fmt"
	"strings"

	"device-support-be/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and translates the first failure
// into a ValidationError so the error middleware renders a 400 envelope.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return apperrors.NewValidationError("", err.Error())
	}

	first := validationErrors[0]
	field := strings.ToLower(first.Field())
	switch first.Tag() {
	case "required":
		return apperrors.NewValidationError(field, fmt.Sprintf("%s is required", field))
	case "oneof":
		return apperrors.NewValidationError(field, fmt.Sprintf("%s must be one of: %s", field, first.Param()))
	case "max":
		return apperrors.NewValidationError(field, fmt.Sprintf("%s exceeds maximum of %s", field, first.Param()))
	default:
		return apperrors.NewValidationError(field, fmt.Sprintf("%s is invalid (%s)", field, first.Tag()))
	}
}
