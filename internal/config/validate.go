package config

import (
	"errors"
	"fmt"
	"go/token"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"adapter-generator/internal/diagnostic"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	_ = v.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		return token.IsIdentifier(fl.Field().String())
	})

	return v
}

// validateStruct reports every structural problem as an invalid_config
// diagnostic.
func validateStruct(f *File) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("validating config: %w", err)
	}

	var diags diagnostic.Diagnostics
	for _, fe := range errs {
		diags.AddError(diagnostic.CodeInvalidConfig, describe(fe), "", fieldPath(fe))
	}

	return diags.Err()
}

// fieldPath strips the root type: "File.requests[0].mode" → "requests[0].mode".
func fieldPath(fe validator.FieldError) string {
	_, path, _ := strings.Cut(fe.Namespace(), ".")
	return path
}

func describe(fe validator.FieldError) string {
	path := fieldPath(fe)

	switch fe.Tag() {
	case "required", "required_if":
		return path + " is required"
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", path, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s, got %q", path, strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "goident":
		return fmt.Sprintf("%s must be a Go identifier, got %q", path, fe.Value())
	case "endswith":
		return fmt.Sprintf("%s must end with %s", path, fe.Param())
	case "excludesall":
		return fmt.Sprintf("%s must be a file name, not a path", path)
	default:
		return fmt.Sprintf("%s fails %s", path, fe.Tag())
	}
}
