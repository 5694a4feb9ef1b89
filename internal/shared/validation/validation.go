package validation

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Seat labels are one row letter and a column 1..4. Range against the
// trip's actual layout is checked in the services; binding only rejects
// garbage early.
var seatLabelPattern = regexp.MustCompile(`^[A-Z][1-4]$`)

// RegisterCustomValidators installs the binding validators used by the
// request DTOs. Must run before the router handles traffic.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	return v.RegisterValidation("seatlabel", func(fl validator.FieldLevel) bool {
		return seatLabelPattern.MatchString(fl.Field().String())
	})
}
