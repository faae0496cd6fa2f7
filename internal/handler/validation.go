package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/slotwise/booking-api/internal/model"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("timeofday", validTimeOfDay)
	}
}

// validTimeOfDay accepts anything ParseTimeOfDay can normalize, so
// binding rejects garbage while "9:00" style input still gets through.
func validTimeOfDay(fl validator.FieldLevel) bool {
	_, err := model.ParseTimeOfDay(fl.Field().String())
	return err == nil
}
