package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Mirrors the domain phone rule so bad input is rejected at binding time
var bindingPhoneRegex = regexp.MustCompile(`^\+?[0-9\s\-()]{5,30}$`)

// RegisterValidators installs custom binding validators on gin's engine.
// Safe to call more than once.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return bindingPhoneRegex.MatchString(fl.Field().String())
	})
}
