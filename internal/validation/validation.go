// Package validation decodes and checks request payloads before any
// provider call is made. Decoding is strict: unknown fields are rejected.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/auth-gateway/pkg/util"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseAndValidate decodes body into dst and runs the declared schema
// checks. Any failure produces a validation error enumerating the
// offending fields.
func ParseAndValidate(body []byte, dst any) error {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if field, ok := unknownField(err); ok {
			return util.NewValidationError([]string{fmt.Sprintf("property %s should not exist", field)})
		}
		return util.NewValidationError([]string{"invalid JSON payload"})
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return util.NewValidationError([]string{"invalid payload"})
		}

		details := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, fieldMessage(fe))
		}
		return util.NewValidationError(details)
	}

	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s should not be empty", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be an email", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be longer than or equal to %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// unknownField extracts the field name from the decoder's strict-mode error.
func unknownField(err error) (string, bool) {
	const prefix = `json: unknown field `
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.Trim(strings.TrimPrefix(msg, prefix), `"`), true
}
