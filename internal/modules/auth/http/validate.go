package http

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// passwordRe mirrors the accepted password alphabet.
var passwordRe = regexp.MustCompile(`^[a-zA-Z0-9@#$_!%^&*]+$`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("passwordchars", func(fl validator.FieldLevel) bool {
		return passwordRe.MatchString(fl.Field().String())
	})
	return v
}
