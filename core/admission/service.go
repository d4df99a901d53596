package admission

import (
	"context"

	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/finance"
	"github.com/PrimotionStudio/z1academic/core/user"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("application")
)

type (
	Repository interface {
		CreateApplication(ctx context.Context, app Application) (Application, error)
		QueryApplications(ctx context.Context, filter *QueryFilter) ([]Application, error)
		GetApplication(ctx context.Context, id string) (Application, error)
		SetApplicationStatus(ctx context.Context, id, status string) (Application, error)
	}

	Users interface {
		GetByID(ctx context.Context, id string) (user.User, error)
		GetByIDs(ctx context.Context, ids []string) ([]user.User, error)
		SetRole(ctx context.Context, id, role string) (user.User, error)
	}

	Transactions interface {
		GetTransaction(ctx context.Context, ref string) (finance.TransactionDetail, error)
	}

	Service struct {
		repo  Repository
		users Users
		txns  Transactions
	}
)

func NewService(repo Repository, users Users, txns Transactions) *Service {
	return &Service{repo: repo, users: users, txns: txns}
}

func (svc *Service) Create(ctx context.Context, na NewApplication) (ApplicationDetail, error) {
	usr, err := svc.users.GetByID(ctx, na.UserID)
	if err != nil {
		if core.IsNotFound(err) {
			return ApplicationDetail{}, core.NewFieldError("user_id", err.Error())
		}
		return ApplicationDetail{}, errors.Wrap(err, "finding user")
	}
	txn, err := svc.txns.GetTransaction(ctx, na.TransactionID)
	if err != nil {
		if core.IsNotFound(err) {
			return ApplicationDetail{}, core.NewFieldError("transaction_id", err.Error())
		}
		return ApplicationDetail{}, errors.Wrap(err, "finding transaction")
	}
	if txn.UserID != usr.ID {
		return ApplicationDetail{}, core.NewFieldError("transaction_id", "transaction belongs to another user")
	}

	now := core.Now()
	app, err := svc.repo.CreateApplication(ctx, Application{
		UserID:         usr.ID,
		Program:        na.Program,
		DateOfBirth:    na.BirthDate(),
		StateOfOrigin:  na.StateOfOrigin,
		LGA:            na.LGA,
		ContactAddress: na.ContactAddress,
		NextOfKin:      na.NextOfKin,
		NextOfKinPhone: na.NextOfKinPhone,
		ExamType:       na.ExamType,
		ExamNumber:     na.ExamNumber,
		ExamYear:       na.ExamYear,
		Subjects:       na.Subjects,
		ResultFile:     na.ResultFile,
		TermsAccepted:  na.TermsAccepted,
		TransactionID:  txn.Reference,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return ApplicationDetail{}, errors.Wrap(err, "creating application")
	}
	return ApplicationDetail{Application: app, User: &usr}, nil
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter) ([]ApplicationDetail, error) {
	apps, err := svc.repo.QueryApplications(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying applications")
	}
	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.UserID)
	}
	users, err := svc.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "querying applicants")
	}
	byID := make(map[string]user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	details := make([]ApplicationDetail, 0, len(apps))
	for _, a := range apps {
		d := ApplicationDetail{Application: a}
		if u, ok := byID[a.UserID]; ok {
			d.User = &u
		}
		details = append(details, d)
	}
	return details, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Application, error) {
	if !core.IsID(id) {
		return Application{}, ErrNotFound
	}
	return svc.repo.GetApplication(ctx, id)
}

// Review sets the status of app. Accepted applicants become students.
func (svc *Service) Review(ctx context.Context, app Application, r Review) (Application, error) {
	app, err := svc.repo.SetApplicationStatus(ctx, app.ID, r.Status)
	if err != nil {
		return Application{}, err
	}
	if r.Status == StatusAccepted {
		if _, err = svc.users.SetRole(ctx, app.UserID, user.RoleStudent); err != nil {
			return Application{}, errors.Wrap(err, "promoting applicant")
		}
	}
	return app, nil
}
