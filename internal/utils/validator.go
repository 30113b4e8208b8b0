// internal/utils/validator.go
package utils

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("password", validatePassword)
	validate.RegisterValidation("notblank", validateNotBlank)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// validatePassword requires at least 8 characters with one letter and one digit.
func validatePassword(fl validator.FieldLevel) bool {
	return IsValidPassword(fl.Field().String())
}

func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasLetter, hasDigit bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	return hasLetter && hasDigit
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "gte":
		return e.Field() + " must be a non-negative number"
	case "uuid":
		return e.Field() + " must be a valid id"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "password":
		return "Password must be at least 8 characters with a letter and a number"
	default:
		return e.Field() + " is invalid"
	}
}
