package roster

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/idilsaglam/roster/internal/model"
)

var defaultValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("numberlike", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		// plain decimal notation only; ParseFloat would also take 0x1p4
		if s == "" || strings.Trim(s, "0123456789+-.eE") != "" {
			return false
		}
		n, err := strconv.ParseFloat(s, 64)
		return err == nil && !math.IsNaN(n) && !math.IsInf(n, 0)
	})
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
	return v
}

// fieldRules is how each field is reported, whatever tag tripped.
var fieldRules = map[string]FieldError{
	model.FieldName:        {Kind: MissingField, Message: "Name is required"},
	model.FieldAge:         {Kind: InvalidField, Message: "Valid age is required"},
	model.FieldClassName:   {Kind: MissingField, Message: "Class is required"},
	model.FieldPhoneNumber: {Kind: InvalidField, Message: "Valid phone number is required"},
}

// Validate checks every field and reports all failures together. Age only
// has to parse as a number; range and sign are not checked.
func Validate(f model.Fields) ValidationErrors {
	err := defaultValidator.Struct(f)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// not reachable for a plain struct value
		return ValidationErrors{"": {Kind: InvalidField, Message: err.Error()}}
	}
	out := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		rule, ok := fieldRules[fe.Field()]
		if !ok {
			rule = FieldError{Kind: InvalidField, Message: fe.Field() + " is invalid"}
		}
		out[fe.Field()] = rule
	}
	return out
}
