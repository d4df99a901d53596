package admission

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/user"
)

// Application statuses
const (
	StatusPending  = "Pending"
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
)

const dateLayout = "2006-01-02"

type SubjectGrade struct {
	Subject string `json:"subject" bson:"subject" validate:"required"`
	Grade   string `json:"grade" bson:"grade" validate:"required"`
}

type ResultFile struct {
	URL      string `json:"url" bson:"url" validate:"required,url"`
	FileType string `json:"file_type" bson:"file_type" validate:"required"`
}

type Application struct {
	ID             string         `json:"id" bson:"_id"`
	UserID         string         `json:"user_id" bson:"user_id"`
	Program        string         `json:"program" bson:"program"`
	DateOfBirth    time.Time      `json:"date_of_birth" bson:"date_of_birth"`
	StateOfOrigin  string         `json:"state_of_origin" bson:"state_of_origin"`
	LGA            string         `json:"lga" bson:"lga"`
	ContactAddress string         `json:"contact_address" bson:"contact_address"`
	NextOfKin      string         `json:"next_of_kin" bson:"next_of_kin"`
	NextOfKinPhone string         `json:"next_of_kin_phone" bson:"next_of_kin_phone"`
	ExamType       string         `json:"exam_type" bson:"exam_type"`
	ExamNumber     string         `json:"exam_number" bson:"exam_number"`
	ExamYear       string         `json:"exam_year" bson:"exam_year"`
	Subjects       []SubjectGrade `json:"subjects" bson:"subjects"`
	ResultFile     ResultFile     `json:"result_file" bson:"result_file"`
	TermsAccepted  bool           `json:"terms_accepted" bson:"terms_accepted"`
	TransactionID  string         `json:"transaction_id" bson:"transaction_id"`
	Status         string         `json:"status" bson:"status"`
	CreatedAt      time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" bson:"updated_at"`
}

// ApplicationDetail is an Application with its applicant populated.
type ApplicationDetail struct {
	Application
	User *user.User `json:"user"`
}

type NewApplication struct {
	UserID         string         `json:"user_id" validate:"required,objectid"`
	Program        string         `json:"program" validate:"required"`
	DateOfBirth    string         `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	StateOfOrigin  string         `json:"state_of_origin" validate:"required"`
	LGA            string         `json:"lga" validate:"required"`
	ContactAddress string         `json:"contact_address" validate:"required"`
	NextOfKin      string         `json:"next_of_kin" validate:"required"`
	NextOfKinPhone string         `json:"next_of_kin_phone" validate:"required"`
	ExamType       string         `json:"exam_type" validate:"required"`
	ExamNumber     string         `json:"exam_number" validate:"required"`
	ExamYear       string         `json:"exam_year" validate:"required,numeric,len=4"`
	Subjects       []SubjectGrade `json:"subjects" validate:"required,min=1,dive"`
	ResultFile     ResultFile     `json:"result_file"`
	TermsAccepted  bool           `json:"terms_accepted" validate:"required"`
	// TransactionID is the reference (transaction_id) of the application fee payment.
	TransactionID string `json:"transaction_id" validate:"required,uuid"`
}

func (na *NewApplication) Validate(validate *validator.Validate) error {
	na.UserID = core.CleanString(na.UserID)
	na.Program = core.CleanString(na.Program)
	na.DateOfBirth = core.CleanString(na.DateOfBirth)
	na.StateOfOrigin = core.CleanString(na.StateOfOrigin)
	na.LGA = core.CleanString(na.LGA)
	na.ContactAddress = core.CleanString(na.ContactAddress)
	na.NextOfKin = core.CleanString(na.NextOfKin)
	na.NextOfKinPhone = core.CleanString(na.NextOfKinPhone)
	na.ExamType = core.CleanString(na.ExamType)
	na.ExamNumber = core.CleanString(na.ExamNumber)
	na.ExamYear = core.CleanString(na.ExamYear)
	na.TransactionID = core.CleanString(na.TransactionID, true /* lower */)
	for i := range na.Subjects {
		na.Subjects[i].Subject = core.CleanString(na.Subjects[i].Subject)
		na.Subjects[i].Grade = core.CleanString(na.Subjects[i].Grade)
	}
	return validate.Struct(na)
}

func (na NewApplication) BirthDate() time.Time {
	dob, _ := time.Parse(dateLayout, na.DateOfBirth)
	return dob
}

type Review struct {
	Status string `json:"status" validate:"required,oneof=Pending Accepted Rejected"`
}

func (r *Review) Validate(validate *validator.Validate) error {
	r.Status = core.CleanString(r.Status)
	return validate.Struct(r)
}

type QueryFilter struct {
	Status string `query:"status"`
	UserID string `query:"user_id"`
}
