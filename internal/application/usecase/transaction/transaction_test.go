// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
	"github.com/personal-finance/tracker-api/internal/domain/entity"
	domainerror "github.com/personal-finance/tracker-api/internal/domain/error"
	"github.com/personal-finance/tracker-api/internal/infra/lock"
)

type fixture struct {
	repo      *fakeTransactionRepo
	tracker   *fakeTracker
	publisher *fakePublisher
	locker    *lock.UserLocker
	userID    uuid.UUID
}

func newFixture() *fixture {
	return &fixture{
		repo:      newFakeTransactionRepo(),
		tracker:   &fakeTracker{},
		publisher: &fakePublisher{},
		locker:    lock.NewUserLocker(),
		userID:    uuid.New(),
	}
}

func (f *fixture) create(t *testing.T, input CreateTransactionInput) *TransactionOutput {
	t.Helper()
	if input.UserID == uuid.Nil {
		input.UserID = f.userID
	}
	uc := NewCreateTransactionUseCase(f.repo, f.tracker, f.publisher, f.locker)
	output, err := uc.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("expected no error creating transaction, got %v", err)
	}
	return output.Transaction
}

func expectTransactionError(t *testing.T, err error, code domainerror.TransactionErrorCode) {
	t.Helper()
	var txnErr *domainerror.TransactionError
	if !errors.As(err, &txnErr) {
		t.Fatalf("expected TransactionError, got %v", err)
	}
	if txnErr.Code != code {
		t.Errorf("expected code %s, got %s", code, txnErr.Code)
	}
}

func TestCreateTransaction(t *testing.T) {
	f := newFixture()
	date := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	output := f.create(t, CreateTransactionInput{
		Type:        entity.TransactionTypeExpense,
		Amount:      decimal.RequireFromString("12.50"),
		Category:    "  Food ",
		Description: "lunch",
		Date:        date,
	})

	if output.Category != "food" {
		t.Errorf("expected normalized category food, got %q", output.Category)
	}
	if !output.Date.Equal(date) {
		t.Errorf("expected date %s, got %s", date, output.Date)
	}
	if output.UserID != f.userID {
		t.Errorf("expected owner %s, got %s", f.userID, output.UserID)
	}
	if f.repo.count() != 1 {
		t.Errorf("expected 1 stored transaction, got %d", f.repo.count())
	}
	if len(f.tracker.added) != 1 {
		t.Errorf("expected budget tracker to be notified once, got %d", len(f.tracker.added))
	}
	if len(f.publisher.events) != 1 || f.publisher.events[0].Type != adapter.LedgerEventTransactionCreated {
		t.Errorf("expected one created event, got %+v", f.publisher.events)
	}
}

func TestCreateTransaction_DefaultsDateToNow(t *testing.T) {
	f := newFixture()
	before := time.Now().UTC().Add(-time.Second)

	output := f.create(t, CreateTransactionInput{
		Type:     entity.TransactionTypeIncome,
		Amount:   decimal.NewFromInt(1000),
		Category: "salary",
	})

	if output.Date.Before(before) {
		t.Errorf("expected date to default to now, got %s", output.Date)
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateTransactionInput
		code  domainerror.TransactionErrorCode
	}{
		{
			name:  "invalid type",
			input: CreateTransactionInput{Type: "transfer", Amount: decimal.NewFromInt(1), Category: "x"},
			code:  domainerror.ErrCodeInvalidTransactionType,
		},
		{
			name:  "negative amount",
			input: CreateTransactionInput{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(-1), Category: "x"},
			code:  domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:  "sub-cent amount",
			input: CreateTransactionInput{Type: entity.TransactionTypeExpense, Amount: decimal.RequireFromString("1.005"), Category: "x"},
			code:  domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:  "amount over 13 integer digits",
			input: CreateTransactionInput{Type: entity.TransactionTypeExpense, Amount: decimal.RequireFromString("12345678901234.00"), Category: "x"},
			code:  domainerror.ErrCodeAmountTooLarge,
		},
		{
			name:  "amount far beyond column",
			input: CreateTransactionInput{Type: entity.TransactionTypeIncome, Amount: decimal.RequireFromString("1e20"), Category: "x"},
			code:  domainerror.ErrCodeAmountTooLarge,
		},
		{
			name:  "category too long",
			input: CreateTransactionInput{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(1), Category: strings.Repeat("c", MaxCategoryLength+1)},
			code:  domainerror.ErrCodeCategoryTooLong,
		},
		{
			name:  "blank category",
			input: CreateTransactionInput{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(1), Category: "  "},
			code:  domainerror.ErrCodeCategoryRequired,
		},
		{
			name: "description too long",
			input: CreateTransactionInput{
				Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(1), Category: "x",
				Description: strings.Repeat("a", MaxDescriptionLength+1),
			},
			code: domainerror.ErrCodeDescriptionTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.input.UserID = f.userID
			uc := NewCreateTransactionUseCase(f.repo, f.tracker, f.publisher, f.locker)

			_, err := uc.Execute(context.Background(), tt.input)

			expectTransactionError(t, err, tt.code)
			if f.repo.count() != 0 {
				t.Error("expected no transaction to be stored")
			}
			if len(f.publisher.events) != 0 {
				t.Error("expected no event to be published")
			}
		})
	}
}

func TestCreateTransaction_HookFailuresDoNotFailWrite(t *testing.T) {
	f := newFixture()
	f.tracker.err = errors.New("budget store down")
	f.publisher.err = errors.New("broker down")

	f.create(t, CreateTransactionInput{
		Type:     entity.TransactionTypeExpense,
		Amount:   decimal.NewFromInt(3),
		Category: "coffee",
	})

	if f.repo.count() != 1 {
		t.Errorf("expected transaction to be stored, got %d", f.repo.count())
	}
}

func TestCreateTransaction_RepositoryError(t *testing.T) {
	f := newFixture()
	f.repo.failWrites = errDatabase
	uc := NewCreateTransactionUseCase(f.repo, f.tracker, f.publisher, f.locker)

	_, err := uc.Execute(context.Background(), CreateTransactionInput{
		UserID: f.userID, Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(1), Category: "x",
	})

	if !errors.Is(err, errDatabase) {
		t.Errorf("expected wrapped database error, got %v", err)
	}
	if len(f.tracker.added) != 0 || len(f.publisher.events) != 0 {
		t.Error("expected no side effects after a failed write")
	}
}

func TestUpdateTransaction(t *testing.T) {
	f := newFixture()
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	created := f.create(t, CreateTransactionInput{
		Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(200), Category: "food", Date: date,
	})

	amount := decimal.NewFromInt(120)
	category := "Groceries"
	uc := NewUpdateTransactionUseCase(f.repo, f.tracker, f.publisher, f.locker)
	output, err := uc.Execute(context.Background(), UpdateTransactionInput{
		TransactionID: created.ID,
		UserID:        f.userID,
		Amount:        &amount,
		Category:      &category,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	updated := output.Transaction
	if !updated.Amount.Equal(amount) || updated.Category != "groceries" {
		t.Errorf("expected 120 groceries, got %s %s", updated.Amount, updated.Category)
	}
	if updated.ID != created.ID || !updated.Date.Equal(date) {
		t.Error("expected id and date to be preserved")
	}
	if updated.Type != entity.TransactionTypeExpense {
		t.Errorf("expected type to be unchanged, got %s", updated.Type)
	}

	reconciled := map[string]bool{}
	for _, call := range f.tracker.reconciled {
		reconciled[call.category] = true
	}
	if !reconciled["food"] || !reconciled["groceries"] {
		t.Errorf("expected old and new categories to be reconciled, got %+v", f.tracker.reconciled)
	}
	if last := f.publisher.events[len(f.publisher.events)-1]; last.Type != adapter.LedgerEventTransactionUpdated {
		t.Errorf("expected updated event, got %s", last.Type)
	}
}

func TestUpdateTransaction_Errors(t *testing.T) {
	f := newFixture()
	created := f.create(t, CreateTransactionInput{
		Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(10), Category: "food",
	})
	negative := decimal.NewFromInt(-5)
	huge := decimal.RequireFromString("1e20")
	badType := entity.TransactionType("refund")

	tests := []struct {
		name  string
		input UpdateTransactionInput
		code  domainerror.TransactionErrorCode
	}{
		{
			name:  "empty patch",
			input: UpdateTransactionInput{TransactionID: created.ID, UserID: f.userID},
			code:  domainerror.ErrCodeNoFieldsToUpdate,
		},
		{
			name:  "negative amount",
			input: UpdateTransactionInput{TransactionID: created.ID, UserID: f.userID, Amount: &negative},
			code:  domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:  "amount beyond column",
			input: UpdateTransactionInput{TransactionID: created.ID, UserID: f.userID, Amount: &huge},
			code:  domainerror.ErrCodeAmountTooLarge,
		},
		{
			name:  "invalid type",
			input: UpdateTransactionInput{TransactionID: created.ID, UserID: f.userID, Type: &badType},
			code:  domainerror.ErrCodeInvalidTransactionType,
		},
		{
			name:  "validation precedes lookup",
			input: UpdateTransactionInput{TransactionID: uuid.New(), UserID: f.userID, Amount: &negative},
			code:  domainerror.ErrCodeInvalidTransactionAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUpdateTransactionUseCase(f.repo, f.tracker, f.publisher, f.locker)
			_, err := uc.Execute(context.Background(), tt.input)
			expectTransactionError(t, err, tt.code)
		})
	}

	stored, _ := f.repo.FindByID(context.Background(), created.ID)
	if !stored.Amount.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected stored amount to be unchanged, got %s", stored.Amount)
	}
}

func TestUpdateTransaction_ForeignOrMissingIsNotFound(t *testing.T) {
	f := newFixture()
	created := f.create(t, CreateTransactionInput{
		Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(10), Category: "food",
	})
	description := "hijack"
	uc := NewUpdateTransactionUseCase(f.repo, f.tracker, f.publisher, f.locker)

	for name, input := range map[string]UpdateTransactionInput{
		"foreign": {TransactionID: created.ID, UserID: uuid.New(), Description: &description},
		"missing": {TransactionID: uuid.New(), UserID: f.userID, Description: &description},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), input)
			expectTransactionError(t, err, domainerror.ErrCodeTransactionNotFound)
		})
	}

	stored, _ := f.repo.FindByID(context.Background(), created.ID)
	if stored.Description != "" {
		t.Errorf("expected description to be unchanged, got %q", stored.Description)
	}
}

func TestDeleteTransaction(t *testing.T) {
	f := newFixture()
	created := f.create(t, CreateTransactionInput{
		Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(10), Category: "food",
	})
	uc := NewDeleteTransactionUseCase(f.repo, f.tracker, f.publisher, f.locker)

	t.Run("foreign user cannot delete", func(t *testing.T) {
		err := uc.Execute(context.Background(), DeleteTransactionInput{TransactionID: created.ID, UserID: uuid.New()})
		expectTransactionError(t, err, domainerror.ErrCodeTransactionNotFound)
		if f.repo.count() != 1 {
			t.Error("expected transaction to be kept")
		}
	})

	t.Run("owner deletes", func(t *testing.T) {
		err := uc.Execute(context.Background(), DeleteTransactionInput{TransactionID: created.ID, UserID: f.userID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if f.repo.count() != 0 {
			t.Error("expected transaction to be removed")
		}
		last := f.tracker.reconciled[len(f.tracker.reconciled)-1]
		if last.category != "food" || last.userID != f.userID {
			t.Errorf("expected food budget of owner to be reconciled, got %+v", last)
		}
	})

	t.Run("second delete is not found", func(t *testing.T) {
		err := uc.Execute(context.Background(), DeleteTransactionInput{TransactionID: created.ID, UserID: f.userID})
		expectTransactionError(t, err, domainerror.ErrCodeTransactionNotFound)
	})
}

func TestListTransactions_Filters(t *testing.T) {
	f := newFixture()
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	f.create(t, CreateTransactionInput{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(1), Category: "food", Date: jan})
	f.create(t, CreateTransactionInput{Type: entity.TransactionTypeIncome, Amount: decimal.NewFromInt(2), Category: "salary", Date: feb})
	f.create(t, CreateTransactionInput{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(3), Category: "food", Date: mar})
	f.create(t, CreateTransactionInput{UserID: uuid.New(), Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(4), Category: "food", Date: mar})

	expense := entity.TransactionTypeExpense
	uc := NewListTransactionsUseCase(f.repo)

	tests := []struct {
		name     string
		input    ListTransactionsInput
		expected []string
	}{
		{name: "all newest first", input: ListTransactionsInput{}, expected: []string{"3", "2", "1"}},
		{name: "by type", input: ListTransactionsInput{Type: &expense}, expected: []string{"3", "1"}},
		{name: "by category normalized", input: ListTransactionsInput{Category: " FOOD"}, expected: []string{"3", "1"}},
		{name: "by date range", input: ListTransactionsInput{StartDate: &feb, EndDate: &mar}, expected: []string{"3", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.UserID = f.userID
			output, err := uc.Execute(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(output.Transactions) != len(tt.expected) {
				t.Fatalf("expected %d transactions, got %d", len(tt.expected), len(output.Transactions))
			}
			for i, amount := range tt.expected {
				if got := output.Transactions[i].Amount.String(); got != amount {
					t.Errorf("expected amount %s at %d, got %s", amount, i, got)
				}
			}
		})
	}

	t.Run("inverted date range", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: f.userID, StartDate: &mar, EndDate: &jan})
		expectTransactionError(t, err, domainerror.ErrCodeInvalidDateRange)
	})
}

func TestExportTransactions(t *testing.T) {
	f := newFixture()
	f.create(t, CreateTransactionInput{
		Type: entity.TransactionTypeExpense, Amount: decimal.RequireFromString("12.5"), Category: "food",
		Description: "pizza, large", Date: time.Date(2024, 3, 2, 18, 0, 0, 0, time.UTC),
	})
	f.create(t, CreateTransactionInput{
		Type: entity.TransactionTypeIncome, Amount: decimal.NewFromInt(1000), Category: "salary",
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	uc := NewExportTransactionsUseCase(f.repo)
	output, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: f.userID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output.Filename != ExportFilename {
		t.Errorf("expected filename %s, got %s", ExportFilename, output.Filename)
	}
	records, err := csv.NewReader(strings.NewReader(string(output.Content))).ReadAll()
	if err != nil {
		t.Fatalf("expected valid csv, got %v", err)
	}

	expected := [][]string{
		{"Date", "Type", "Category", "Description", "Amount"},
		{"2024-03-02", "expense", "food", "pizza, large", "12.50"},
		{"2024-03-01", "income", "salary", "", "1000.00"},
	}
	if len(records) != len(expected) {
		t.Fatalf("expected %d rows, got %d", len(expected), len(records))
	}
	for i := range expected {
		if strings.Join(records[i], "|") != strings.Join(expected[i], "|") {
			t.Errorf("expected row %d to be %v, got %v", i, expected[i], records[i])
		}
	}
}

func TestListCategories(t *testing.T) {
	f := newFixture()
	for _, category := range []string{"Transport", "food", " FOOD ", "books"} {
		f.create(t, CreateTransactionInput{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(1), Category: category})
	}

	categories, err := NewListCategoriesUseCase(f.repo).Execute(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := "books,food,transport"
	if got := strings.Join(categories, ","); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}

	empty, _ := NewListCategoriesUseCase(f.repo).Execute(context.Background(), uuid.New())
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", empty)
	}
}
