package finance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/user"
)

type Fee struct {
	ID        string    `json:"id" bson:"_id"`
	Label     string    `json:"label" bson:"label"`
	Amount    float64   `json:"amount" bson:"amount"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type FeeInput struct {
	Label  string  `json:"label" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (fi *FeeInput) Validate(validate *validator.Validate) error {
	fi.Label = core.CleanString(fi.Label)
	return validate.Struct(fi)
}

// Transaction statuses
const (
	StatusPending = "Pending"
	StatusSuccess = "Success"
	StatusFailed  = "Failed"
)

type Transaction struct {
	ID string `json:"id" bson:"_id"`
	// Reference is the public identifier given to the payment gateway.
	Reference string    `json:"transaction_id" bson:"transaction_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Amount    float64   `json:"amount" bson:"amount"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// TransactionDetail is a Transaction with its user populated.
type TransactionDetail struct {
	Transaction
	User *user.User `json:"user"`
}

type NewTransaction struct {
	UserID string  `json:"user_id" validate:"required,objectid"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (nt *NewTransaction) Validate(validate *validator.Validate) error {
	nt.UserID = core.CleanString(nt.UserID)
	return validate.Struct(nt)
}

// StatusUpdate records the outcome of a payment verification.
type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=Pending Success Failed"`
}

func (su *StatusUpdate) Validate(validate *validator.Validate) error {
	su.Status = core.CleanString(su.Status)
	return validate.Struct(su)
}

type TransactionFilter struct {
	UserID string `query:"user_id"`
	Status string `query:"status"`
}
