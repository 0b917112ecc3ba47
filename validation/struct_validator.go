package validation

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/picoview/errors"
)

var (
	validate *validator.Validate
	once     sync.Once

	podNamePattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9.-]{0,61}[a-z0-9])?$`)
	envKeyPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names for field names in error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return toSnakeCase(fld.Name)
			}
			return name
		})

		_ = validate.RegisterValidation("podname", func(fl validator.FieldLevel) bool {
			return IsPodName(fl.Field().String())
		})
		_ = validate.RegisterValidation("portmap", func(fl validator.FieldLevel) bool {
			return IsPortMapping(fl.Field().String())
		})
		_ = validate.RegisterValidation("envvar", func(fl validator.FieldLevel) bool {
			return IsEnvVar(fl.Field().String())
		})
	})
	return validate
}

// Validate validates a struct using struct tags.
// Besides the stock tags it understands podname, portmap and envvar,
// e.g. `validate:"dive,portmap"` on a []string of "public:internal" pairs.
func Validate(s any) error {
	v := getValidator()
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("validation failed")
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))
	messages := make([]string, 0, len(validationErrors))

	for _, e := range validationErrors {
		fieldName := e.Field()
		message := formatValidationError(e)
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fieldName,
			Message: message,
		})
		messages = append(messages, fieldName+": "+message)
	}

	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{
		"fields": fieldErrors,
	}

	return appErr
}

// IsPodName reports whether s is a lowercase DNS-label style pod name.
func IsPodName(s string) bool {
	return podNamePattern.MatchString(s)
}

// IsPortMapping reports whether s has the "public:internal" form with both
// sides in the 1-65535 range.
func IsPortMapping(s string) bool {
	public, internal, ok := strings.Cut(s, ":")
	if !ok {
		return false
	}
	return isPort(public) && isPort(internal)
}

// IsEnvVar reports whether s has the KEY=VALUE form.
func IsEnvVar(s string) bool {
	key, _, ok := strings.Cut(s, "=")
	return ok && envKeyPattern.MatchString(key)
}

func isPort(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n > 0 && n <= 65535
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	case "podname":
		return "must be a lowercase name of letters, digits, '-' or '.'"
	case "portmap":
		return "must be a port mapping like 8080:80"
	case "envvar":
		return "must be an environment entry like KEY=value"
	default:
		return "is invalid"
	}
}

// toSnakeCase converts a field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(r + 32) // lowercase
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
