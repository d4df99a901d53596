package course

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/PrimotionStudio/z1academic/core"
)

type Course struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Code         string    `json:"code" bson:"code"`
	Units        int       `json:"units" bson:"units"`
	LecturerID   string    `json:"lecturer_id" bson:"lecturer_id"`
	DepartmentID string    `json:"department_id" bson:"department_id"`
	Level        int       `json:"level" bson:"level"`
	SemesterID   string    `json:"semester_id" bson:"semester_id"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// CourseInput is used to create and to update (all fields are replaced) a Course.
type CourseInput struct {
	Name         string `json:"name" validate:"required"`
	Code         string `json:"code" validate:"required"`
	Units        int    `json:"units" validate:"required,min=1"`
	LecturerID   string `json:"lecturer_id" validate:"required,objectid"`
	DepartmentID string `json:"department_id" validate:"required,objectid"`
	Level        int    `json:"level" validate:"required,level"`
	SemesterID   string `json:"semester_id" validate:"required,objectid"`
}

func (ci *CourseInput) Validate(validate *validator.Validate) error {
	ci.Name = core.CleanString(ci.Name)
	ci.Code = normalizeCode(ci.Code)
	ci.LecturerID = core.CleanString(ci.LecturerID)
	ci.DepartmentID = core.CleanString(ci.DepartmentID)
	ci.SemesterID = core.CleanString(ci.SemesterID)
	return validate.Struct(ci)
}

// QueryFilter applies AND on the provided fields.
type QueryFilter struct {
	DepartmentID string `query:"department_id"`
	Level        int    `query:"level"`
	SemesterID   string `query:"semester_id"`
	LecturerID   string `query:"lecturer_id"`
}

func (qf *QueryFilter) Clean() {
	qf.DepartmentID = core.CleanString(qf.DepartmentID)
	qf.SemesterID = core.CleanString(qf.SemesterID)
	qf.LecturerID = core.CleanString(qf.LecturerID)
}

type Elective struct {
	ID           string    `json:"id" bson:"_id"`
	CourseID     string    `json:"course_id" bson:"course_id"`
	DepartmentID string    `json:"department_id" bson:"department_id"`
	Level        int       `json:"level" bson:"level"`
	SemesterID   string    `json:"semester_id" bson:"semester_id"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

type ElectiveInput struct {
	CourseID     string `json:"course_id" validate:"required,objectid"`
	DepartmentID string `json:"department_id" validate:"required,objectid"`
	Level        int    `json:"level" validate:"required,level"`
	SemesterID   string `json:"semester_id" validate:"required,objectid"`
}

func (ei *ElectiveInput) Validate(validate *validator.Validate) error {
	ei.CourseID = core.CleanString(ei.CourseID)
	ei.DepartmentID = core.CleanString(ei.DepartmentID)
	ei.SemesterID = core.CleanString(ei.SemesterID)
	return validate.Struct(ei)
}

type ElectiveFilter struct {
	DepartmentID string `query:"department_id"`
	Level        int    `query:"level"`
	SemesterID   string `query:"semester_id"`
}
