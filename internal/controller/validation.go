package controller

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"gitlab.com/dirk.krummacker/contactbook-service/internal/apierr"
)

// validate checks the input structs. Fields are reported by their form name.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput validates the input and turns validation failures into a 400 error.
func validateInput(in any) error {
	err := validate.Struct(in)
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		return apierr.BadRequest(validationMessage(fieldErrors))
	}
	return err
}

// validationMessage converts the validation errors into a single human-readable message, e.g.
// "field name is required".
func validationMessage(fieldErrors validator.ValidationErrors) string {
	var messages []string
	for _, e := range fieldErrors {
		switch e.ActualTag() {
		case "required":
			messages = append(messages, fmt.Sprintf("field %s is required", e.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("field %s must not be empty", e.Field()))
		case "max":
			messages = append(messages, fmt.Sprintf("field %s must be at most %s characters long", e.Field(), e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}
	return strings.Join(messages, ", ")
}
