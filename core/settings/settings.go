package settings

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/PrimotionStudio/z1academic/core"
)

// Institution is the single settings document describing the school.
type Institution struct {
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone" bson:"phone"`
	Photo     string    `json:"photo" bson:"photo"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type InstitutionInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,phone"`
	Photo string `json:"photo" validate:"omitempty,url"`
}

func (in *InstitutionInput) Validate(validate *validator.Validate) error {
	in.Name = core.CleanString(in.Name)
	in.Email = core.CleanString(in.Email, true /* lower */)
	in.Phone = core.CleanString(in.Phone)
	in.Photo = core.CleanString(in.Photo)
	return validate.Struct(in)
}

type Repository interface {
	// GetInstitution returns the zero Institution when nothing was saved yet.
	GetInstitution(ctx context.Context) (Institution, error)
	PutInstitution(ctx context.Context, inst Institution) (Institution, error)
}

type Service struct {
	repo     Repository
	defaults Institution
}

// NewService returns a settings Service falling back to defaults until the institution is saved.
func NewService(repo Repository, defaults Institution) *Service {
	return &Service{repo: repo, defaults: defaults}
}

func (svc *Service) Get(ctx context.Context) (Institution, error) {
	inst, err := svc.repo.GetInstitution(ctx)
	if err != nil {
		return Institution{}, err
	}
	if inst.Name == "" {
		return svc.defaults, nil
	}
	return inst, nil
}

func (svc *Service) Put(ctx context.Context, in InstitutionInput) (Institution, error) {
	return svc.repo.PutInstitution(ctx, Institution{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Photo:     in.Photo,
		UpdatedAt: core.Now(),
	})
}
