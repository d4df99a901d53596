package timetable

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/PrimotionStudio/z1academic/core"
)

var (
	weekdayTag  = "weekday"
	weekdayText = "{0} must be one of " + strings.Join(Days, ", ")

	timeSlotTag  = "timeslot"
	timeSlotText = "{0} must be one of " + strings.Join(TimeSlots, ", ")
)

// InitValidators registers the timetable validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(weekdayTag, func(fl validator.FieldLevel) bool {
		return IsDay(fl.Field().String())
	})
	core.RegisterCustomTranslation(validate, translator, weekdayTag, weekdayText)

	_ = validate.RegisterValidation(timeSlotTag, func(fl validator.FieldLevel) bool {
		return IsTimeSlot(fl.Field().String())
	})
	core.RegisterCustomTranslation(validate, translator, timeSlotTag, timeSlotText)
}
