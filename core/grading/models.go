package grading

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/PrimotionStudio/z1academic/core"
)

// RequiredTotal is what the assessment scores of a scheme must add up to.
const RequiredTotal = 100

type AssessmentType struct {
	Name  string `json:"name" bson:"name" validate:"required"`
	Score int    `json:"score" bson:"score" validate:"required,min=1,max=100"`
}

type Scheme struct {
	ID              string           `json:"id" bson:"_id"`
	AssessmentTypes []AssessmentType `json:"assessment_types" bson:"assessment_types"`
	TotalScore      int              `json:"total_score" bson:"total_score"`
	Level           int              `json:"level" bson:"level"`
	MaxCourseUnits  int              `json:"max_course_units" bson:"max_course_units"`
	DepartmentID    string           `json:"department_id" bson:"department_id"`
	SemesterID      string           `json:"semester_id" bson:"semester_id"`
	CreatedAt       time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" bson:"updated_at"`
}

// SchemeInput is used to create and to update (all fields are replaced) a Scheme.
type SchemeInput struct {
	AssessmentTypes []AssessmentType `json:"assessment_types" validate:"required,min=1,dive"`
	Level           int              `json:"level" validate:"required,level"`
	MaxCourseUnits  int              `json:"max_course_units" validate:"required,min=1"`
	DepartmentID    string           `json:"department_id" validate:"required,objectid"`
	SemesterID      string           `json:"semester_id" validate:"required,objectid"`
}

func (si *SchemeInput) Validate(validate *validator.Validate) error {
	for i := range si.AssessmentTypes {
		si.AssessmentTypes[i].Name = core.CleanString(si.AssessmentTypes[i].Name)
	}
	si.DepartmentID = core.CleanString(si.DepartmentID)
	si.SemesterID = core.CleanString(si.SemesterID)
	return validate.Struct(si)
}

// Total sums the assessment scores.
func (si SchemeInput) Total() int {
	var total int
	for _, at := range si.AssessmentTypes {
		total += at.Score
	}
	return total
}

type QueryFilter struct {
	DepartmentID string `query:"department_id"`
	Level        int    `query:"level"`
	SemesterID   string `query:"semester_id"`
}
