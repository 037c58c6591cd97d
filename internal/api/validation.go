package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldMessages mirrors the sign-in form's client-side messages.
var fieldMessages = map[string]string{
	"name.required":     "Name must be at least 2 characters",
	"name.min":          "Name must be at least 2 characters",
	"name.max":          "Name must be at most 100 characters",
	"email.required":    "Invalid email address",
	"email.email":       "Invalid email address",
	"email.max":         "Email must be at most 255 characters",
	"password.required": "Password is required",
	"password.min":      "Password must be at least 6 characters",
	"password.max":      "Password must be at most 100 characters",
}

// validationMessage returns a user-facing message for the first failing field.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	fe := verrs[0]
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' rule", fe.Field(), fe.Tag())
}
