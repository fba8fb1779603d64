// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
	"github.com/personal-finance/tracker-api/internal/domain/entity"
	domainerror "github.com/personal-finance/tracker-api/internal/domain/error"
)

type fakeTransactionRepo struct {
	mu           sync.Mutex
	transactions map[uuid.UUID]*entity.Transaction
	versions     map[uuid.UUID]int64
	failWrites   error
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{
		transactions: make(map[uuid.UUID]*entity.Transaction),
		versions:     make(map[uuid.UUID]int64),
	}
}

func (r *fakeTransactionRepo) Create(_ context.Context, transaction *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites != nil {
		return r.failWrites
	}
	copied := *transaction
	r.transactions[transaction.ID] = &copied
	r.versions[transaction.UserID]++
	return nil
}

func (r *fakeTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction, ok := r.transactions[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	copied := *transaction
	return &copied, nil
}

func (r *fakeTransactionRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	return r.FindByFilter(ctx, adapter.TransactionFilter{UserID: userID})
}

func (r *fakeTransactionRepo) FindByFilter(_ context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Transaction
	for _, txn := range r.transactions {
		if txn.UserID != filter.UserID {
			continue
		}
		if filter.Type != nil && txn.Type != *filter.Type {
			continue
		}
		if filter.Category != "" && txn.Category != filter.Category {
			continue
		}
		if filter.StartDate != nil && txn.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && txn.Date.After(*filter.EndDate) {
			continue
		}
		copied := *txn
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

func (r *fakeTransactionRepo) FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error) {
	all, _ := r.FindByUser(ctx, userID)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, transaction *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites != nil {
		return r.failWrites
	}
	if _, ok := r.transactions[transaction.ID]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	copied := *transaction
	r.transactions[transaction.ID] = &copied
	r.versions[transaction.UserID]++
	return nil
}

func (r *fakeTransactionRepo) Delete(_ context.Context, transaction *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites != nil {
		return r.failWrites
	}
	if _, ok := r.transactions[transaction.ID]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	delete(r.transactions, transaction.ID)
	r.versions[transaction.UserID]++
	return nil
}

func (r *fakeTransactionRepo) SumExpensesByCategory(_ context.Context, userID uuid.UUID, category string) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, txn := range r.transactions {
		if txn.UserID == userID && txn.IsExpense() && txn.Category == category {
			sum = sum.Add(txn.Amount)
		}
	}
	return sum, nil
}

func (r *fakeTransactionRepo) ListCategories(_ context.Context, userID uuid.UUID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{})
	var categories []string
	for _, txn := range r.transactions {
		if txn.UserID != userID {
			continue
		}
		if _, ok := seen[txn.Category]; !ok {
			seen[txn.Category] = struct{}{}
			categories = append(categories, txn.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *fakeTransactionRepo) LedgerVersion(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.versions[userID], nil
}

func (r *fakeTransactionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.transactions)
}

type reconcileCall struct {
	userID   uuid.UUID
	category string
}

type fakeTracker struct {
	added      []*entity.Transaction
	reconciled []reconcileCall
	err        error
}

func (t *fakeTracker) OnTransactionAdded(_ context.Context, transaction *entity.Transaction) error {
	t.added = append(t.added, transaction)
	return t.err
}

func (t *fakeTracker) Reconcile(_ context.Context, userID uuid.UUID, category string) error {
	t.reconciled = append(t.reconciled, reconcileCall{userID, category})
	return t.err
}

type fakePublisher struct {
	events []adapter.LedgerEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event adapter.LedgerEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

var errDatabase = errors.New("database unavailable")
