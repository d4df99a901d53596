package user

import (
	"context"

	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core"
)

var (
	// errors
	ErrNotFound    = core.NewNotFoundError("user")
	ErrEmailExists = errors.New("email already registered")
	ErrPhoneExists = errors.New("phone number already registered")
)

type (
	Repository interface {
		// CheckUniqueness returns ErrEmailExists or ErrPhoneExists if another user (not in excludedIDs) uses them.
		CheckUniqueness(ctx context.Context, email, phone string, excludedIDs ...string) error
		CreateUser(ctx context.Context, usr User) (User, error)
		// QueryUsers applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of User.FullName, User.Email or User.Phone.
		QueryUsers(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]User, error)
		GetUser(ctx context.Context, id string) (User, error)
		GetUsers(ctx context.Context, ids []string) ([]User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
		SetRole(ctx context.Context, id, role string) (User, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CheckUniqueness maps repository uniqueness errors to field errors.
func (svc *Service) CheckUniqueness(ctx context.Context, email, phone string, exclUsers ...User) error {
	ids := make([]string, 0, len(exclUsers))
	for _, u := range exclUsers {
		ids = append(ids, u.ID)
	}
	if err := svc.repo.CheckUniqueness(ctx, email, phone, ids...); err != nil {
		var field string
		switch err {
		case ErrEmailExists:
			field = "email"
		case ErrPhoneExists:
			field = "phone"
		default:
			return errors.Wrap(err, "checking user uniqueness")
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	if err := svc.CheckUniqueness(ctx, nu.Email, nu.Phone); err != nil {
		return User{}, err
	}
	role := nu.Role
	if role == "" {
		role = DefaultRole
	}
	now := core.Now()
	return svc.repo.CreateUser(ctx, User{
		FullName:  nu.FullName,
		Email:     nu.Email,
		Phone:     nu.Phone,
		Photo:     nu.Photo,
		Role:      role,
		Verified:  nu.Verified,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]User, error) {
	return svc.repo.QueryUsers(ctx, filter, ordering)
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	if !core.IsID(id) {
		return User{}, ErrNotFound
	}
	return svc.repo.GetUser(ctx, id)
}

func (svc *Service) GetByIDs(ctx context.Context, ids []string) ([]User, error) {
	return svc.repo.GetUsers(ctx, core.UniqueStrings(ids))
}

// Update applies a validated UpdateUser (see UpdateUser.Validate) to usr.
func (svc *Service) Update(ctx context.Context, usr User, uu UpdateUser) (User, error) {
	if err := svc.CheckUniqueness(ctx, uu.Email, uu.Phone, usr); err != nil {
		return User{}, err
	}
	usr.FullName = uu.FullName
	usr.Email = uu.Email
	usr.Phone = uu.Phone
	usr.Photo = uu.Photo
	usr.Role = uu.Role
	if uu.Verified != nil {
		usr.Verified = *uu.Verified
	}
	usr.UpdatedAt = core.Now()
	return svc.repo.UpdateUser(ctx, usr)
}

// SetRole is used by the admission and lecturer workflows.
func (svc *Service) SetRole(ctx context.Context, id, role string) (User, error) {
	if !core.IsID(id) {
		return User{}, ErrNotFound
	}
	return svc.repo.SetRole(ctx, id, role)
}
