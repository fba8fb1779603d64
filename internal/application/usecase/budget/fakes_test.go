// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
	"github.com/personal-finance/tracker-api/internal/domain/entity"
	domainerror "github.com/personal-finance/tracker-api/internal/domain/error"
)

type budgetKey struct {
	userID   uuid.UUID
	category string
}

type fakeBudgetRepo struct {
	mu      sync.Mutex
	budgets map[budgetKey]*entity.Budget
	writes  int
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{budgets: make(map[budgetKey]*entity.Budget)}
}

func (r *fakeBudgetRepo) Create(_ context.Context, budget *entity.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *budget
	r.budgets[budgetKey{budget.UserID, budget.Category}] = &copied
	r.writes++
	return nil
}

func (r *fakeBudgetRepo) Update(_ context.Context, budget *entity.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := budgetKey{budget.UserID, budget.Category}
	if _, ok := r.budgets[key]; !ok {
		return domainerror.ErrBudgetNotFound
	}
	copied := *budget
	r.budgets[key] = &copied
	r.writes++
	return nil
}

func (r *fakeBudgetRepo) UpdateSpent(_ context.Context, id uuid.UUID, spent decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, budget := range r.budgets {
		if budget.ID == id {
			budget.Spent = spent
			r.writes++
			return nil
		}
	}
	return domainerror.ErrBudgetNotFound
}

func (r *fakeBudgetRepo) FindByUserAndCategory(_ context.Context, userID uuid.UUID, category string) (*entity.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	budget, ok := r.budgets[budgetKey{userID, category}]
	if !ok {
		return nil, domainerror.ErrBudgetNotFound
	}
	copied := *budget
	return &copied, nil
}

func (r *fakeBudgetRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Budget
	for key, budget := range r.budgets {
		if key.userID == userID {
			copied := *budget
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Category < result[j].Category })
	return result, nil
}

func (r *fakeBudgetRepo) Delete(_ context.Context, userID uuid.UUID, category string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := budgetKey{userID, category}
	if _, ok := r.budgets[key]; !ok {
		return domainerror.ErrBudgetNotFound
	}
	delete(r.budgets, key)
	return nil
}

func (r *fakeBudgetRepo) stored(userID uuid.UUID, category string) *entity.Budget {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.budgets[budgetKey{userID, category}]
}

// fakeLedger implements only the ledger sum used by the tracker.
type fakeLedger struct {
	adapter.TransactionRepository
	transactions []*entity.Transaction
}

func (l *fakeLedger) add(userID uuid.UUID, txnType entity.TransactionType, amount, category string) *entity.Transaction {
	txn := entity.NewTransaction(userID, txnType, decimal.RequireFromString(amount), category, "", time.Time{})
	l.transactions = append(l.transactions, txn)
	return txn
}

func (l *fakeLedger) SumExpensesByCategory(_ context.Context, userID uuid.UUID, category string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, txn := range l.transactions {
		if txn.UserID == userID && txn.IsExpense() && txn.Category == category {
			sum = sum.Add(txn.Amount)
		}
	}
	return sum, nil
}

type fakeUserRepo struct {
	adapter.UserRepository
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindAllIDs(_ context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeNotifier struct {
	alerts []adapter.BudgetAlert
	err    error
}

func (n *fakeNotifier) NotifyBudgetExceeded(_ context.Context, alert adapter.BudgetAlert) error {
	n.alerts = append(n.alerts, alert)
	return n.err
}
