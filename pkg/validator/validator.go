package validator

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	playground "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ValidationErrors maps a JSON field name to a human readable message.
type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

// First returns the message of the alphabetically first field, or "" when
// there are no errors.
func (v ValidationErrors) First() string {
	if len(v) == 0 {
		return ""
	}
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return v[fields[0]]
}

var validate = func() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}()

// Struct runs the `validate` tags of s.
func Struct(s any) ValidationErrors {
	errs := make(ValidationErrors)

	err := validate.Struct(s)
	if err == nil {
		return errs
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs.Add("_", err.Error())
		return errs
	}
	for _, fe := range fieldErrs {
		errs.Add(fe.Field(), fe.Field()+" "+message(fe))
	}
	return errs
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", fe.Param())
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
