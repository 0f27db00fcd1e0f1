package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"catalog-api/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator checks request payloads at the transport boundary and reports
// violations as a single ValidationFailed error.
type Validator struct {
	validate *validator.Validate
}

// New builds a validator that reports fields by their JSON names and supports
// numeric tags (gt, gte) on decimal.Decimal fields.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterCustomTypeFunc(decimalAsFloat, decimal.Decimal{})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates req and returns nil or a *model.Error of kind
// ValidationFailed with one message per offending field, in field order.
func (v *Validator) Struct(req interface{}) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return model.NewUnexpected(err)
	}

	fields := make([]model.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, model.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}

	return model.NewValidation(fields)
}

func decimalAsFloat(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "email":
		return "must be a valid email address"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
