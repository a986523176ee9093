package services

import (
	"errors"

	"weather-dashboard/models"

	"github.com/go-playground/validator/v10"
)

// QueryValidator checks that every form field is present. It deliberately
// does not check coordinate ranges or date ordering; the API rejects those.
type QueryValidator struct {
	validate *validator.Validate
}

func NewQueryValidator() *QueryValidator {
	return &QueryValidator{validate: validator.New()}
}

// Validate returns a *ValidationError naming the empty fields, or nil.
func (v *QueryValidator) Validate(input models.QueryInput) error {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{}
	}
	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, fe.Field())
	}
	return &ValidationError{Fields: missing}
}
