package academic

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/user"
)

type Faculty struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type FacultyInput struct {
	Name string `json:"name" validate:"required"`
}

func (fi *FacultyInput) Validate(validate *validator.Validate) error {
	fi.Name = core.CleanString(fi.Name)
	return validate.Struct(fi)
}

type Department struct {
	ID           string    `json:"id" bson:"_id"`
	FacultyID    string    `json:"faculty_id" bson:"faculty_id"`
	Name         string    `json:"name" bson:"name"`
	MaxLevels    int       `json:"max_levels" bson:"max_levels"`
	ProgramTitle string    `json:"program_title" bson:"program_title"`
	JambCutOff   int       `json:"jamb_cut_off" bson:"jamb_cut_off"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// HasLevel reports whether lvl is one of the department's levels (100 up to MaxLevels).
func (d Department) HasLevel(lvl int) bool {
	return lvl > 0 && lvl%100 == 0 && lvl <= d.MaxLevels
}

// DepartmentInput is used to create and to update (all fields are replaced) a Department.
type DepartmentInput struct {
	FacultyID    string `json:"faculty_id" validate:"required,objectid"`
	Name         string `json:"name" validate:"required"`
	MaxLevels    int    `json:"max_levels" validate:"required,level"`
	ProgramTitle string `json:"program_title" validate:"required"`
	JambCutOff   int    `json:"jamb_cut_off" validate:"required,min=1,max=400"`
}

func (di *DepartmentInput) Validate(validate *validator.Validate) error {
	di.FacultyID = core.CleanString(di.FacultyID)
	di.Name = core.CleanString(di.Name)
	di.ProgramTitle = core.CleanString(di.ProgramTitle)
	return validate.Struct(di)
}

type DepartmentFilter struct {
	FacultyID string `query:"faculty_id"`
}

type Lecturer struct {
	ID           string    `json:"id" bson:"_id"`
	UserID       string    `json:"user_id" bson:"user_id"`
	DepartmentID string    `json:"department_id" bson:"department_id"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// LecturerDetail is a Lecturer with its user populated.
type LecturerDetail struct {
	Lecturer
	User *user.User `json:"user"`
}

type NewLecturer struct {
	UserID       string `json:"user_id" validate:"required,objectid"`
	DepartmentID string `json:"department_id" validate:"required,objectid"`
}

func (nl *NewLecturer) Validate(validate *validator.Validate) error {
	nl.UserID = core.CleanString(nl.UserID)
	nl.DepartmentID = core.CleanString(nl.DepartmentID)
	return validate.Struct(nl)
}

// TermKind tells academic sessions (eg. "2024/2025") from periods, the semesters of a session.
type TermKind string

const (
	KindSession TermKind = "session"
	KindPeriod  TermKind = "period"
)

func (k TermKind) Label() string {
	if k == KindPeriod {
		return "Period"
	}
	return "Session"
}

type Term struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type TermInput struct {
	Name string `json:"name" validate:"required"`
}

func (ti *TermInput) Validate(validate *validator.Validate) error {
	ti.Name = core.CleanString(ti.Name)
	return validate.Struct(ti)
}
