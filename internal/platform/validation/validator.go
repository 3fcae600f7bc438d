// Package validation configures gin's form binding and turns validation
// errors into messages fit for a flash.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the validator behind gin's binding.
// Field names in messages come from the form tag.
func Init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone11", phone11)
	_ = v.RegisterValidation("optfloat", optfloat)
	v.RegisterAlias("pwd", "min=8")
}

// phone11 accepts an empty string or exactly 11 ASCII digits.
func phone11(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	if len(s) != 11 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// optfloat accepts an empty string or a decimal number.
func optfloat(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// Message converts a binding error into one human-readable sentence.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid form submission."
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, label(fe.Field())+" "+formatFieldError(fe))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ") + "."
}

func label(field string) string {
	if field == "" {
		return "Field"
	}
	field = strings.ReplaceAll(field, "_", " ")
	return strings.ToUpper(field[:1]) + field[1:]
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min", "pwd":
		if param == "" {
			param = "8"
		}
		return "must be at least " + param + " characters long"
	case "max":
		return "must be at most " + param + " characters long"
	case "eqfield":
		return "must match " + strings.ReplaceAll(param, "_", " ")
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "phone11":
		return "must be exactly 11 digits"
	case "optfloat":
		return "must be a number"
	case "latitude":
		return "must be between -90 and 90"
	case "longitude":
		return "must be between -180 and 180"
	case "numeric":
		return "must be numeric"
	case "number":
		return "must be a whole number"
	default:
		if param != "" {
			return fmt.Sprintf("failed '%s=%s'", fe.Tag(), param)
		}
		return fmt.Sprintf("failed '%s'", fe.Tag())
	}
}
