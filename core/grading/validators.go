package grading

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/PrimotionStudio/z1academic/core"
)

var (
	totalScoreTag  = "totalscore"
	totalScoreText = "total score must equal 100"
)

// InitValidators registers the grade scheme validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(schemeInputValidation, SchemeInput{})
	core.RegisterCustomTranslation(validate, translator, totalScoreTag, totalScoreText)
}

// schemeInputValidation checks the assessment scores add up to RequiredTotal.
func schemeInputValidation(sl validator.StructLevel) {
	si := sl.Current().Interface().(SchemeInput)
	if len(si.AssessmentTypes) > 0 && si.Total() != RequiredTotal {
		sl.ReportError(si.AssessmentTypes, "total_score", "TotalScore", totalScoreTag, "")
	}
}
