// Package statistics contains statistics-related use cases.
package statistics

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
	"github.com/personal-finance/tracker-api/internal/domain/entity"
	domainerror "github.com/personal-finance/tracker-api/internal/domain/error"
	"github.com/personal-finance/tracker-api/internal/domain/service"
)

type fakeLedger struct {
	adapter.TransactionRepository
	mu           sync.Mutex
	transactions []*entity.Transaction
	version      int64
	loads        int
	// started and release, when set, hold FindByUser until the test lets it continue.
	started chan struct{}
	release chan struct{}
}

func (l *fakeLedger) add(userID uuid.UUID, txnType entity.TransactionType, amount, category string, date time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = append(l.transactions, entity.NewTransaction(userID, txnType, decimal.RequireFromString(amount), category, "", date))
	l.version++
}

func (l *fakeLedger) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	if l.release != nil {
		l.started <- struct{}{}
		<-l.release
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loads++
	var result []*entity.Transaction
	for _, txn := range l.transactions {
		if txn.UserID == userID {
			result = append(result, txn)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

func (l *fakeLedger) FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error) {
	all, _ := l.FindByUser(ctx, userID)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (l *fakeLedger) LedgerVersion(_ context.Context, _ uuid.UUID) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version, nil
}

func (l *fakeLedger) loadCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads
}

type cacheKey struct {
	userID  uuid.UUID
	version int64
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[cacheKey]*entity.Statistics
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[cacheKey]*entity.Statistics)}
}

func (c *fakeCache) Get(_ context.Context, userID uuid.UUID, version int64) (*entity.Statistics, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[cacheKey{userID, version}], nil
}

func (c *fakeCache) Set(_ context.Context, userID uuid.UUID, version int64, stats *entity.Statistics) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{userID, version}] = stats
	return nil
}

func (c *fakeCache) Ping(context.Context) error { return nil }

func seededLedger(userID uuid.UUID) *fakeLedger {
	ledger := &fakeLedger{}
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	ledger.add(userID, entity.TransactionTypeIncome, "1000", "salary", day)
	ledger.add(userID, entity.TransactionTypeExpense, "200", "food", day.Add(time.Hour))
	ledger.add(userID, entity.TransactionTypeExpense, "50", "food", day.Add(2*time.Hour))
	ledger.add(userID, entity.TransactionTypeExpense, "100", "transport", day.Add(3*time.Hour))
	return ledger
}

func TestSnapshotLoader_CachesPerVersion(t *testing.T) {
	userID := uuid.New()
	ledger := seededLedger(userID)
	loader := NewSnapshotLoader(ledger, newFakeCache())
	ctx := context.Background()

	first, err := loader.Load(ctx, userID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := loader.Load(ctx, userID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ledger.loadCount() != 1 {
		t.Errorf("expected 1 ledger load for an unchanged version, got %d", ledger.loadCount())
	}
	if !first.Balance.Equal(decimal.NewFromInt(650)) {
		t.Errorf("expected balance 650, got %s", first.Balance)
	}

	// A write bumps the version and must be visible immediately.
	ledger.add(userID, entity.TransactionTypeExpense, "25", "food", time.Now())
	second, err := loader.Load(ctx, userID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ledger.loadCount() != 2 {
		t.Errorf("expected a fresh load after a write, got %d loads", ledger.loadCount())
	}
	if !second.CategoryTotals["food"].Equal(decimal.NewFromInt(275)) {
		t.Errorf("expected food 275, got %s", second.CategoryTotals["food"])
	}
}

func TestSnapshotLoader_SharedLoadOutlivesCanceledCaller(t *testing.T) {
	userID := uuid.New()
	ledger := seededLedger(userID)
	ledger.started = make(chan struct{}, 1)
	ledger.release = make(chan struct{})
	loader := NewSnapshotLoader(ledger, newFakeCache())

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := loader.Load(ctx, userID)
		firstErr <- err
	}()
	<-ledger.started

	type result struct {
		stats *entity.Statistics
		err   error
	}
	waiter := make(chan result, 1)
	go func() {
		stats, err := loader.Load(context.Background(), userID)
		waiter <- result{stats: stats, err: err}
	}()

	cancel()
	time.Sleep(20 * time.Millisecond)
	close(ledger.release)

	if err := <-firstErr; err != nil {
		t.Errorf("expected the shared load to finish despite cancellation, got %v", err)
	}
	got := <-waiter
	if got.err != nil {
		t.Fatalf("expected waiter to receive statistics, got %v", got.err)
	}
	if !got.stats.Balance.Equal(decimal.NewFromInt(650)) {
		t.Errorf("expected balance 650, got %s", got.stats.Balance)
	}
}

func TestSnapshotLoader_CacheErrorFallsBack(t *testing.T) {
	userID := uuid.New()
	ledger := seededLedger(userID)
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")

	stats, err := NewSnapshotLoader(ledger, cache).Load(context.Background(), userID)
	if err != nil {
		t.Fatalf("expected cache failure to be tolerated, got %v", err)
	}
	if !stats.TotalExpense.Equal(decimal.NewFromInt(350)) {
		t.Errorf("expected total expense 350, got %s", stats.TotalExpense)
	}
}

func TestGetStatistics(t *testing.T) {
	userID := uuid.New()
	ledger := seededLedger(userID)
	day := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		ledger.add(userID, entity.TransactionTypeIncome, "1", "misc", day.Add(time.Duration(i)*time.Hour))
	}
	uc := NewGetStatisticsUseCase(NewSnapshotLoader(ledger, newFakeCache()), ledger)

	output, err := uc.Execute(context.Background(), GetStatisticsInput{UserID: userID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !output.TotalIncome.Equal(decimal.NewFromInt(1004)) {
		t.Errorf("expected income 1004, got %s", output.TotalIncome)
	}
	if len(output.RecentTransactions) != RecentTransactionsLimit {
		t.Fatalf("expected %d recent transactions, got %d", RecentTransactionsLimit, len(output.RecentTransactions))
	}
	if output.RecentTransactions[0].Date.Before(output.RecentTransactions[1].Date) {
		t.Error("expected recent transactions newest first")
	}
	if len(output.CategoryTotals) != 2 || output.CategoryTotals[0].Category != "food" {
		t.Errorf("expected food first of 2 categories, got %+v", output.CategoryTotals)
	}
	if len(output.Chart) != 2 {
		t.Errorf("expected 2 chart slices, got %d", len(output.Chart))
	}
}

func TestGetStatistics_EmptyLedger(t *testing.T) {
	ledger := &fakeLedger{}
	uc := NewGetStatisticsUseCase(NewSnapshotLoader(ledger, newFakeCache()), ledger)

	output, err := uc.Execute(context.Background(), GetStatisticsInput{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !output.Balance.IsZero() || len(output.CategoryTotals) != 0 {
		t.Errorf("expected zero statistics, got %+v", output)
	}
	if len(output.Chart) != 1 || output.Chart[0].Label != service.NoDataLabel {
		t.Errorf("expected placeholder chart, got %+v", output.Chart)
	}
}

func TestGetMonthlyStatistics_Paging(t *testing.T) {
	userID := uuid.New()
	ledger := &fakeLedger{}
	for month := 1; month <= 8; month++ {
		date := time.Date(2023, time.Month(month), 3, 0, 0, 0, 0, time.UTC)
		ledger.add(userID, entity.TransactionTypeIncome, "100", "salary", date)
		ledger.add(userID, entity.TransactionTypeExpense, "40", "food", date)
	}
	uc := NewGetMonthlyStatisticsUseCase(NewSnapshotLoader(ledger, newFakeCache()))

	tests := []struct {
		name    string
		page    int
		limit   int
		first   string
		count   int
		hasMore bool
	}{
		{name: "defaults", page: 0, limit: 0, first: "2023-01", count: 6, hasMore: true},
		{name: "second page", page: 2, limit: 6, first: "2023-07", count: 2, hasMore: false},
		{name: "past the end", page: 5, limit: 6, count: 0, hasMore: false},
		{name: "custom limit", page: 1, limit: 3, first: "2023-01", count: 3, hasMore: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := uc.Execute(context.Background(), GetMonthlyStatisticsInput{UserID: userID, Page: tt.page, Limit: tt.limit})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(output.Months) != tt.count {
				t.Fatalf("expected %d months, got %d", tt.count, len(output.Months))
			}
			if tt.count > 0 && output.Months[0].Month != tt.first {
				t.Errorf("expected first month %s, got %s", tt.first, output.Months[0].Month)
			}
			if output.HasMore != tt.hasMore {
				t.Errorf("expected hasMore %v, got %v", tt.hasMore, output.HasMore)
			}
			if output.TotalMonths != 8 || len(output.AllMonths) != 8 {
				t.Errorf("expected 8 months in total, got %d", output.TotalMonths)
			}
		})
	}

	output, _ := uc.Execute(context.Background(), GetMonthlyStatisticsInput{UserID: userID})
	if !output.Months[0].Net.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected net 60, got %s", output.Months[0].Net)
	}
}

func TestGetMonthlyStatistics_InvalidPaging(t *testing.T) {
	uc := NewGetMonthlyStatisticsUseCase(NewSnapshotLoader(&fakeLedger{}, newFakeCache()))

	tests := []struct {
		name  string
		page  int
		limit int
		code  domainerror.StatisticsErrorCode
	}{
		{name: "negative page", page: -1, limit: 6, code: domainerror.ErrCodeInvalidPage},
		{name: "negative limit", page: 1, limit: -6, code: domainerror.ErrCodeInvalidPageSize},
		{name: "limit too large", page: 1, limit: MaxMonthsPerPage + 1, code: domainerror.ErrCodeInvalidPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), GetMonthlyStatisticsInput{UserID: uuid.New(), Page: tt.page, Limit: tt.limit})
			var statsErr *domainerror.StatisticsError
			if !errors.As(err, &statsErr) {
				t.Fatalf("expected StatisticsError, got %v", err)
			}
			if statsErr.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, statsErr.Code)
			}
		})
	}
}

func TestGetCategorySummary(t *testing.T) {
	userID := uuid.New()
	ledger := seededLedger(userID)
	uc := NewGetCategorySummaryUseCase(NewSnapshotLoader(ledger, newFakeCache()))

	output, err := uc.Execute(context.Background(), GetCategorySummaryInput{UserID: userID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output.Summary != "food: $250.00, transport: $100.00" {
		t.Errorf("unexpected summary %q", output.Summary)
	}
	if len(output.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(output.Categories))
	}
	if got := output.Categories[1].Percentage.StringFixed(2); got != "28.57" {
		t.Errorf("expected transport share 28.57, got %s", got)
	}
}
