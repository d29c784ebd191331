package service

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// MinCardLength is the shortest accepted card number once whitespace is removed
const MinCardLength = 13

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		return len(stripSpaces(fl.Field().String())) >= MinCardLength
	})

	return v
}

// Validator exposes the shared instance to the HTTP layer
func Validator() *validator.Validate {
	return validate
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
