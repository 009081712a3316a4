package httpx

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"jobpilot/backend/internal/platform/apperr"
)

// Validator wraps validator/v10 so field errors use JSON names and come back as BadRequest.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a Validator that reports fields by their json tag.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Register adds a custom validation tag.
func (x *Validator) Register(tag string, fn func(string) bool) error {
	return x.v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	})
}

// Struct validates s. The first failing field becomes the message.
func (x *Validator) Struct(s any) error {
	err := x.v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return apperr.BadRequest(FieldMessage(ve[0]))
	}
	return apperr.BadRequest("invalid request")
}

// FieldMessage renders a single field error for callers.
func FieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "password":
		return fmt.Sprintf("%s must be 8 to 72 characters and contain a number and a special character", fe.Field())
	case "mobile":
		return fmt.Sprintf("%s must be in E.164 format", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
