package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

// RegisterValidators adds the app's custom tags to v and reports fields by
// their json names.
func RegisterValidators(v *validator.Validate, categories, levels []string) error {
	museCategories := make(map[string]bool, len(categories))
	for _, c := range categories {
		museCategories[c] = true
	}
	museLevels := make(map[string]bool, len(levels))
	for _, l := range levels {
		museLevels[l] = true
	}

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	validations := map[string]validator.Func{
		"strongpassword": strongPassword,
		"isodate":        isoDate,
		"edu":            eduEmail,
		"musecategory":   func(fl validator.FieldLevel) bool { return museCategories[fl.Field().String()] },
		"muselevel":      func(fl validator.FieldLevel) bool { return museLevels[fl.Field().String()] },
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

// one upper, one lower and one digit
func strongPassword(fl validator.FieldLevel) bool {
	var upper, lower, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// the registration form only admits student addresses
func eduEmail(fl validator.FieldLevel) bool {
	return strings.Contains(strings.ToLower(fl.Field().String()), "edu")
}

func isoDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}

// ValidationMessages maps validator errors to per-field messages. It returns
// nil for anything that is not a validation failure.
func ValidationMessages(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s.", fe.Param())
	case "gte", "lte":
		if fe.Field() == "zipcode" {
			return "Please include a valid ZipCode"
		}
		return "Value out of range."
	case "len", "numeric":
		if fe.Field() == "phone" {
			return "Please include a valid Phone Number"
		}
		return fmt.Sprintf("Must be exactly %s characters long.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "eqfield":
		return fmt.Sprintf("Field must be equal to %s.", strings.ToLower(fe.Param()))
	case "strongpassword":
		return "There should be at least one Upper case, one Lower case and one number"
	case "isodate":
		return "Use the format YYYY-MM-DD."
	case "edu":
		return "Only .edu emails are accepted"
	case "musecategory":
		return "Not a valid job category."
	case "muselevel":
		return "Not a valid level of experience."
	case "uuid":
		return "Not a valid id."
	}
	return "Invalid value."
}
