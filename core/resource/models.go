package resource

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/PrimotionStudio/z1academic/core"
)

// Kind tells books from videos. Both share the Resource document shape.
type Kind string

const (
	KindBook  Kind = "book"
	KindVideo Kind = "video"
)

// Published statuses
const (
	StatusUnpublished = "unpublished"
	StatusPublished   = "published"
)

type Resource struct {
	ID               string    `json:"id" bson:"_id"`
	Title            string    `json:"title" bson:"title"`
	ShortDescription string    `json:"short_description" bson:"short_description"`
	Author           string    `json:"author,omitempty" bson:"author,omitempty"`               // books
	DepartmentID     string    `json:"department_id,omitempty" bson:"department_id,omitempty"` // books
	CourseID         string    `json:"course_id,omitempty" bson:"course_id,omitempty"`         // videos
	FileLink         string    `json:"file_link" bson:"file_link"`
	CoverImage       string    `json:"cover_image" bson:"cover_image"`
	PublishedStatus  string    `json:"published_status" bson:"published_status"`
	RequestedBy      string    `json:"requested_by,omitempty" bson:"requested_by,omitempty"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}

// Input contains the information needed to create a book or a video.
type Input struct {
	Title            string `json:"title" validate:"required"`
	ShortDescription string `json:"short_description"`
	Author           string `json:"author"`
	DepartmentID     string `json:"department_id" validate:"omitempty,objectid"`
	CourseID         string `json:"course_id" validate:"omitempty,objectid"`
	FileLink         string `json:"file_link" validate:"required,url"`
	CoverImage       string `json:"cover_image" validate:"required,url"`
	RequestedBy      string `json:"requested_by" validate:"omitempty,objectid"`
}

// Validate also checks the fields only one kind requires.
func (in *Input) Validate(kind Kind, validate *validator.Validate) error {
	in.Title = core.CleanString(in.Title)
	in.ShortDescription = core.CleanString(in.ShortDescription)
	in.Author = core.CleanString(in.Author)
	in.DepartmentID = core.CleanString(in.DepartmentID)
	in.CourseID = core.CleanString(in.CourseID)
	in.FileLink = core.CleanString(in.FileLink)
	in.CoverImage = core.CleanString(in.CoverImage)
	in.RequestedBy = core.CleanString(in.RequestedBy)
	if err := validate.Struct(in); err != nil {
		return err
	}

	var flds []core.FieldError
	switch kind {
	case KindBook:
		if in.Author == "" {
			flds = append(flds, core.FieldError{Field: "author", Error: "author is required"})
		}
		if in.DepartmentID == "" {
			flds = append(flds, core.FieldError{Field: "department_id", Error: "department_id is required"})
		}
	case KindVideo:
		if in.CourseID == "" {
			flds = append(flds, core.FieldError{Field: "course_id", Error: "course_id is required"})
		}
	}
	if len(flds) > 0 {
		return core.NewValidationError(errInvalidInput, flds...)
	}
	return nil
}

type StatusUpdate struct {
	PublishedStatus string `json:"published_status" validate:"required,oneof=unpublished published"`
}

func (su *StatusUpdate) Validate(validate *validator.Validate) error {
	su.PublishedStatus = core.CleanString(su.PublishedStatus, true /* lower */)
	return validate.Struct(su)
}

// Upload is a stored file.
type Upload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
