package inmemdb

import (
	"context"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/finance"
)

type financeRepository struct {
	fees *table[finance.Fee]
	txns *table[finance.Transaction]
}

var (
	// interface compliance checks
	_ finance.FeeRepository         = (*financeRepository)(nil)
	_ finance.TransactionRepository = (*financeRepository)(nil)
)

func NewFinanceRepository(db *DB) *financeRepository {
	return &financeRepository{fees: db.fees, txns: db.transactions}
}

func (repo *financeRepository) CreateFee(_ context.Context, fee finance.Fee) (finance.Fee, error) {
	repo.fees.Lock()
	defer repo.fees.Unlock()

	fee.ID = core.NewID()
	repo.fees.insert(fee.ID, fee)
	return fee, nil
}

func (repo *financeRepository) QueryFees(_ context.Context) ([]finance.Fee, error) {
	repo.fees.RLock()
	defer repo.fees.RUnlock()
	return repo.fees.filter(nil), nil
}

func (repo *financeRepository) GetFee(_ context.Context, id string) (finance.Fee, error) {
	repo.fees.RLock()
	defer repo.fees.RUnlock()

	if fee, ok := repo.fees.get(id); ok {
		return fee, nil
	}
	return finance.Fee{}, finance.ErrFeeNotFound
}

func (repo *financeRepository) UpdateFee(_ context.Context, fee finance.Fee) (finance.Fee, error) {
	repo.fees.Lock()
	defer repo.fees.Unlock()

	if !repo.fees.set(fee.ID, fee) {
		return finance.Fee{}, finance.ErrFeeNotFound
	}
	return fee, nil
}

func (repo *financeRepository) DeleteFee(_ context.Context, id string) error {
	repo.fees.Lock()
	defer repo.fees.Unlock()

	if !repo.fees.delete(id) {
		return finance.ErrFeeNotFound
	}
	return nil
}

// Transactions

func (repo *financeRepository) CreateTransaction(_ context.Context, txn finance.Transaction) (finance.Transaction, error) {
	repo.txns.Lock()
	defer repo.txns.Unlock()

	txn.ID = core.NewID()
	repo.txns.insert(txn.ID, txn)
	return txn, nil
}

func (repo *financeRepository) QueryTransactions(_ context.Context, filter *finance.TransactionFilter) ([]finance.Transaction, error) {
	repo.txns.RLock()
	defer repo.txns.RUnlock()

	var keep func(finance.Transaction) bool
	if filter != nil {
		keep = func(t finance.Transaction) bool {
			return (filter.UserID == "" || t.UserID == filter.UserID) &&
				(filter.Status == "" || t.Status == filter.Status)
		}
	}
	return repo.txns.filter(keep), nil
}

func (repo *financeRepository) byRef(ref string) (finance.Transaction, bool) {
	return repo.txns.find(func(t finance.Transaction) bool { return t.Reference == ref })
}

func (repo *financeRepository) GetTransaction(_ context.Context, ref string) (finance.Transaction, error) {
	repo.txns.RLock()
	defer repo.txns.RUnlock()

	if txn, ok := repo.byRef(ref); ok {
		return txn, nil
	}
	return finance.Transaction{}, finance.ErrTransactionNotFound
}

func (repo *financeRepository) SetTransactionStatus(_ context.Context, ref, status string) (finance.Transaction, error) {
	repo.txns.Lock()
	defer repo.txns.Unlock()

	txn, ok := repo.byRef(ref)
	if !ok {
		return finance.Transaction{}, finance.ErrTransactionNotFound
	}
	txn.Status = status
	txn.UpdatedAt = core.Now()
	repo.txns.set(txn.ID, txn)
	return txn, nil
}
