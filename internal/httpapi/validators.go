package httpapi

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Accepts formatted ("12.345.678/0001-99") and bare ("12345678000199") CNPJs.
var cnpjPattern = regexp.MustCompile(`^\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}$`)

// RegisterValidators installs custom binding rules on gin's validator engine.
// Call once at startup, before the first request is bound.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
		return cnpjPattern.MatchString(fl.Field().String())
	})
}
