package shared

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/grading"
	"github.com/PrimotionStudio/z1academic/core/timetable"
	"github.com/PrimotionStudio/z1academic/core/user"
)

// NewValidator returns a validator knowing the custom tags of every module, and its english translator.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()

	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	grading.InitValidators(validate, translator)
	timetable.InitValidators(validate, translator)

	return validate, translator
}
