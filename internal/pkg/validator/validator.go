// Package validator is a thin wrapper around go-playground/validator,
// providing declarative struct validation with standardized error
// formatting via struct tags (e.g. `validate:"required"`).
package validator

import (
	"errors"
	"fmt"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed is the root of every error chain returned on
// validation failure, allowing callers to branch with errors.Is.
var ErrValidationFailed = errors.New("struct validation failed")

// validate is the singleton validator instance, initialized on package load.
var validate *gvalidator.Validate

// errStringFormat describes a single failed validation rule.
const errStringFormat = "'%s': value '%v' does not meet the requirements for the '%s' validation"

func init() {
	validate = gvalidator.New(gvalidator.WithRequiredStructEnabled())
}

// formatError turns raw validation errors into a joined error chain rooted
// at ErrValidationFailed. Non-validation errors pass through unchanged.
func formatError(err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidationFailed}
	for _, validationErr := range validationErrors {
		errs = append(errs, fmt.Errorf(errStringFormat,
			validationErr.Field(),
			validationErr.Value(),
			validationErr.Tag(),
		))
	}

	return errors.Join(errs...)
}

// Validate checks the given struct against its validation tags, returning
// nil on success or an ErrValidationFailed chain describing every failed
// field.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}
