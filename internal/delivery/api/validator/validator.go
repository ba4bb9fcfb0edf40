// Package validator adapts go-playground/validator to echo and reports
// failures as field-scoped domain validation errors.
package validator

import (
	"reflect"
	"strings"

	domainerrors "coderr/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator that names fields by their json tag.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &Validator{validate: validate}
}

// Validate checks i and returns ErrValidationFailed carrying one entry per failing field.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "failed to validate request")
	}

	collector := domainerrors.Validation()
	for _, fieldErr := range fieldErrs {
		collector.Add(fieldPath(fieldErr), message(fieldErr))
	}

	return collector.Err()
}

// fieldPath drops the root struct name: "createOfferRequest.details[0].price" becomes "details[0].price".
func fieldPath(fieldErr validator.FieldError) string {
	namespace := fieldErr.Namespace()
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}

	return namespace
}

func message(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		return "must be at least " + fieldErr.Param()
	case "max":
		return "must be at most " + fieldErr.Param()
	case "gte":
		return "must be greater than or equal to " + fieldErr.Param()
	case "lte":
		return "must be less than or equal to " + fieldErr.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fieldErr.Param(), " ", ", ")
	case "eqfield":
		return "must match " + fieldErr.Param()
	default:
		return "invalid value"
	}
}
