package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/finance"
)

type financeRepository struct {
	fees collection[finance.Fee]
	txns collection[finance.Transaction]
}

var (
	// interface compliance checks
	_ finance.FeeRepository         = (*financeRepository)(nil)
	_ finance.TransactionRepository = (*financeRepository)(nil)
)

func NewFinanceRepository(db *DB) *financeRepository {
	return &financeRepository{
		fees: newCollection[finance.Fee](db, feesCollection, finance.ErrFeeNotFound),
		txns: newCollection[finance.Transaction](db, transactionsCollection, finance.ErrTransactionNotFound),
	}
}

func (repo *financeRepository) CreateFee(ctx context.Context, fee finance.Fee) (finance.Fee, error) {
	fee.ID = core.NewID()
	if err := repo.fees.insert(ctx, fee); err != nil {
		return finance.Fee{}, err
	}
	return fee, nil
}

func (repo *financeRepository) QueryFees(ctx context.Context) ([]finance.Fee, error) {
	return repo.fees.find(ctx, nil)
}

func (repo *financeRepository) GetFee(ctx context.Context, id string) (finance.Fee, error) {
	return repo.fees.findOne(ctx, byID(id))
}

func (repo *financeRepository) UpdateFee(ctx context.Context, fee finance.Fee) (finance.Fee, error) {
	if err := repo.fees.replace(ctx, fee.ID, fee); err != nil {
		return finance.Fee{}, err
	}
	return fee, nil
}

func (repo *financeRepository) DeleteFee(ctx context.Context, id string) error {
	return repo.fees.delete(ctx, id)
}

// Transactions

func (repo *financeRepository) CreateTransaction(ctx context.Context, txn finance.Transaction) (finance.Transaction, error) {
	txn.ID = core.NewID()
	if err := repo.txns.insert(ctx, txn); err != nil {
		return finance.Transaction{}, err
	}
	return txn, nil
}

func (repo *financeRepository) QueryTransactions(ctx context.Context, filter *finance.TransactionFilter) ([]finance.Transaction, error) {
	query := bson.M{}
	if filter != nil {
		if filter.UserID != "" {
			query["user_id"] = filter.UserID
		}
		if filter.Status != "" {
			query["status"] = filter.Status
		}
	}
	return repo.txns.find(ctx, query)
}

func (repo *financeRepository) GetTransaction(ctx context.Context, ref string) (finance.Transaction, error) {
	return repo.txns.findOne(ctx, bson.M{"transaction_id": ref})
}

func (repo *financeRepository) SetTransactionStatus(ctx context.Context, ref, status string) (finance.Transaction, error) {
	txn, err := repo.GetTransaction(ctx, ref)
	if err != nil {
		return finance.Transaction{}, err
	}
	return repo.txns.set(ctx, txn.ID, bson.M{"status": status, "updated_at": core.Now()})
}
