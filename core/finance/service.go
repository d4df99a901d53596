package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/user"
)

var (
	// errors
	ErrFeeNotFound         = core.NewNotFoundError("fee")
	ErrTransactionNotFound = core.NewNotFoundError("transaction")
)

type (
	FeeRepository interface {
		CreateFee(ctx context.Context, fee Fee) (Fee, error)
		QueryFees(ctx context.Context) ([]Fee, error)
		GetFee(ctx context.Context, id string) (Fee, error)
		UpdateFee(ctx context.Context, fee Fee) (Fee, error)
		DeleteFee(ctx context.Context, id string) error
	}

	TransactionRepository interface {
		CreateTransaction(ctx context.Context, txn Transaction) (Transaction, error)
		QueryTransactions(ctx context.Context, filter *TransactionFilter) ([]Transaction, error)
		GetTransaction(ctx context.Context, ref string) (Transaction, error)
		SetTransactionStatus(ctx context.Context, ref, status string) (Transaction, error)
	}

	Users interface {
		GetByID(ctx context.Context, id string) (user.User, error)
		GetByIDs(ctx context.Context, ids []string) ([]user.User, error)
	}

	Service struct {
		fees  FeeRepository
		txns  TransactionRepository
		users Users
	}
)

func NewService(fees FeeRepository, txns TransactionRepository, users Users) *Service {
	return &Service{fees: fees, txns: txns, users: users}
}

// Fees

func (svc *Service) CreateFee(ctx context.Context, fi FeeInput) (Fee, error) {
	now := core.Now()
	return svc.fees.CreateFee(ctx, Fee{Label: fi.Label, Amount: fi.Amount, CreatedAt: now, UpdatedAt: now})
}

func (svc *Service) QueryFees(ctx context.Context) ([]Fee, error) {
	return svc.fees.QueryFees(ctx)
}

func (svc *Service) GetFee(ctx context.Context, id string) (Fee, error) {
	if !core.IsID(id) {
		return Fee{}, ErrFeeNotFound
	}
	return svc.fees.GetFee(ctx, id)
}

func (svc *Service) UpdateFee(ctx context.Context, fee Fee, fi FeeInput) (Fee, error) {
	fee.Label = fi.Label
	fee.Amount = fi.Amount
	fee.UpdatedAt = core.Now()
	return svc.fees.UpdateFee(ctx, fee)
}

func (svc *Service) DeleteFee(ctx context.Context, fee Fee) error {
	return svc.fees.DeleteFee(ctx, fee.ID)
}

// Transactions

// CreateTransaction starts a pending payment for the user.
func (svc *Service) CreateTransaction(ctx context.Context, nt NewTransaction) (TransactionDetail, error) {
	usr, err := svc.users.GetByID(ctx, nt.UserID)
	if err != nil {
		if core.IsNotFound(err) {
			return TransactionDetail{}, core.NewFieldError("user_id", err.Error())
		}
		return TransactionDetail{}, errors.Wrap(err, "finding user")
	}

	now := core.Now()
	txn, err := svc.txns.CreateTransaction(ctx, Transaction{
		Reference: uuid.New().String(),
		UserID:    usr.ID,
		Amount:    nt.Amount,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return TransactionDetail{}, errors.Wrap(err, "creating transaction")
	}
	return TransactionDetail{Transaction: txn, User: &usr}, nil
}

func (svc *Service) QueryTransactions(ctx context.Context, filter *TransactionFilter) ([]TransactionDetail, error) {
	txns, err := svc.txns.QueryTransactions(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying transactions")
	}
	return svc.populate(ctx, txns...)
}

// GetTransaction finds a transaction by its reference (transaction_id).
func (svc *Service) GetTransaction(ctx context.Context, ref string) (TransactionDetail, error) {
	if _, err := uuid.Parse(ref); err != nil {
		return TransactionDetail{}, ErrTransactionNotFound
	}
	txn, err := svc.txns.GetTransaction(ctx, ref)
	if err != nil {
		return TransactionDetail{}, err
	}
	details, err := svc.populate(ctx, txn)
	if err != nil {
		return TransactionDetail{}, err
	}
	return details[0], nil
}

func (svc *Service) UpdateStatus(ctx context.Context, txn Transaction, su StatusUpdate) (Transaction, error) {
	return svc.txns.SetTransactionStatus(ctx, txn.Reference, su.Status)
}

func (svc *Service) populate(ctx context.Context, txns ...Transaction) ([]TransactionDetail, error) {
	ids := make([]string, 0, len(txns))
	for _, t := range txns {
		ids = append(ids, t.UserID)
	}
	users, err := svc.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "querying transaction users")
	}
	byID := make(map[string]user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	details := make([]TransactionDetail, 0, len(txns))
	for _, t := range txns {
		d := TransactionDetail{Transaction: t}
		if u, ok := byID[t.UserID]; ok {
			d.User = &u
		}
		details = append(details, d)
	}
	return details, nil
}
