package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{
		validator: validator.New(),
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errs
	}

	for _, e := range validationErrors {
		field := e.Namespace()
		switch e.Tag() {
		case "required":
			errs[field] = field + " is required"
		case "url":
			errs[field] = field + " must be a valid URL"
		case "min":
			errs[field] = field + " must be at least " + e.Param()
		case "max":
			errs[field] = field + " must be at most " + e.Param()
		case "gt":
			errs[field] = field + " must be greater than " + e.Param()
		case "gte":
			errs[field] = field + " must be greater than or equal to " + e.Param()
		default:
			errs[field] = field + " is invalid"
		}
	}

	return errs
}
