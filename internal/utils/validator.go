package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

var (
	cuilRegex   = regexp.MustCompile(`^[0-9]{11}$`)
	periodRegex = regexp.MustCompile(`^[0-9]{4}-(0[1-9]|1[0-2])$`)
)

func InitValidator() {
	Validate = validator.New()

	// cuil covers both CUIL and CUIT: an 11 digit national tax identifier.
	_ = Validate.RegisterValidation("cuil", func(fl validator.FieldLevel) bool {
		return cuilRegex.MatchString(fl.Field().String())
	})

	// period is a pay cycle token, "YYYY-MM".
	_ = Validate.RegisterValidation("period", func(fl validator.FieldLevel) bool {
		return periodRegex.MatchString(fl.Field().String())
	})
}
