package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lestrrat-go/strftime"

	"github.com/philipp01105/tablelog/style"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// report fields by their toml key
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationError is a single invalid setting
type ValidationError struct {
	Field   string // dotted toml path, e.g. "traceback.max_frames"
	Message string
}

// ValidationErrors lists every invalid setting found by Validate
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "config: %d invalid setting(s):", len(ve))
	for _, e := range ve {
		fmt.Fprintf(&sb, "\n  %s: %s", e.Field, e.Message)
	}
	return sb.String()
}

// Validate checks value ranges, the color system, the time format and
// every style override.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config: validate: %w", err)
		}
		for _, fe := range verrs {
			errs = append(errs, ValidationError{
				Field:   fieldPath(fe.Namespace()),
				Message: validationMessage(fe),
			})
		}
	}

	if _, err := strftime.New(c.TimeFormat); err != nil && c.TimeFormat != "" {
		errs = append(errs, ValidationError{Field: "time_format", Message: err.Error()})
	}

	for name, def := range c.Styles {
		if _, err := style.ParseStyle(def); err != nil {
			errs = append(errs, ValidationError{Field: "styles." + name, Message: err.Error()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ColorSystemValue returns the parsed color system. Auto is returned
// unresolved.
func (c *Config) ColorSystemValue() style.ColorSystem {
	cs, err := style.ParseColorSystem(c.ColorSystem)
	if err != nil {
		return style.Auto
	}
	return cs
}

// fieldPath drops the struct name validator puts in front of the namespace
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "gt":
		return fmt.Sprintf("must be > %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("validation failed: %s", fe.Tag())
	}
}
