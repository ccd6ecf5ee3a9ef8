package planning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"pocketledger/internal/errs"
	"pocketledger/internal/ledger"
	"pocketledger/internal/storage/memory"
)

func setup(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	return New(store, store), store
}

func TestAddCategory(t *testing.T) {
	svc, _ := setup(t)
	c, err := svc.AddCategory(context.Background(), ledger.Category{Name: "Food & Dining", Icon: "🍔", Color: "#FF5733"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.ID == uuid.Nil {
		t.Fatal("expected a generated id")
	}
	if _, err := svc.AddCategory(context.Background(), ledger.Category{}); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("empty name: got %v", err)
	}
}

func TestUpdateCategory_EmptyNameRejected(t *testing.T) {
	svc, _ := setup(t)
	c, err := svc.AddCategory(context.Background(), ledger.Category{Name: "Travel"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	empty := ""
	if _, err := svc.UpdateCategory(context.Background(), c.ID, ledger.CategoryPatch{Name: &empty}); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("empty name: got %v", err)
	}
	name := "Trips"
	got, err := svc.UpdateCategory(context.Background(), c.ID, ledger.CategoryPatch{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Trips" {
		t.Fatalf("name = %q", got.Name)
	}
}

func TestAddBudget(t *testing.T) {
	svc, _ := setup(t)
	cat, err := svc.AddCategory(context.Background(), ledger.Category{Name: "Groceries"})
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	amount, _ := decimal.New(500, 0)

	b, err := svc.AddBudget(context.Background(), ledger.Budget{
		CategoryID: cat.ID,
		Amount:     amount,
		Period:     ledger.PeriodMonthly,
	})
	if err != nil {
		t.Fatalf("add budget: %v", err)
	}
	if b.ID == uuid.Nil {
		t.Fatal("expected a generated id")
	}
	if b.StartDate.IsZero() {
		t.Fatal("expected a defaulted start date")
	}
}

func TestAddBudget_Rejections(t *testing.T) {
	svc, _ := setup(t)
	cat, err := svc.AddCategory(context.Background(), ledger.Category{Name: "Groceries"})
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	amount, _ := decimal.New(500, 0)

	cases := []struct {
		name string
		in   ledger.Budget
		want error
	}{
		{
			name: "zero amount",
			in:   ledger.Budget{CategoryID: cat.ID, Amount: decimal.Zero, Period: ledger.PeriodMonthly},
			want: errs.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			in:   ledger.Budget{CategoryID: cat.ID, Amount: amount.Neg(), Period: ledger.PeriodMonthly},
			want: errs.ErrInvalidAmount,
		},
		{
			name: "bad period",
			in:   ledger.Budget{CategoryID: cat.ID, Amount: amount, Period: "fortnightly"},
			want: errs.ErrInvalid,
		},
		{
			name: "unknown category",
			in:   ledger.Budget{CategoryID: uuid.New(), Amount: amount, Period: ledger.PeriodMonthly},
			want: errs.ErrUnknownCategory,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddBudget(context.Background(), tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestUpdateBudget_CategoryMustExist(t *testing.T) {
	svc, _ := setup(t)
	cat, err := svc.AddCategory(context.Background(), ledger.Category{Name: "Groceries"})
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	amount, _ := decimal.New(300, 0)
	b, err := svc.AddBudget(context.Background(), ledger.Budget{
		CategoryID: cat.ID,
		Amount:     amount,
		Period:     ledger.PeriodWeekly,
		StartDate:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("add budget: %v", err)
	}

	bogus := uuid.New()
	if _, err := svc.UpdateBudget(context.Background(), b.ID, ledger.BudgetPatch{CategoryID: &bogus}); !errors.Is(err, errs.ErrUnknownCategory) {
		t.Fatalf("dangling category: got %v", err)
	}
	bigger, _ := decimal.New(450, 0)
	got, err := svc.UpdateBudget(context.Background(), b.ID, ledger.BudgetPatch{Amount: &bigger})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Amount.Cmp(bigger) != 0 {
		t.Fatalf("amount = %s, want 450", got.Amount)
	}
}

func TestDeleteBudget(t *testing.T) {
	svc, store := setup(t)
	cat, err := svc.AddCategory(context.Background(), ledger.Category{Name: "Groceries"})
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	amount, _ := decimal.New(200, 0)
	b, err := svc.AddBudget(context.Background(), ledger.Budget{CategoryID: cat.ID, Amount: amount, Period: ledger.PeriodDaily})
	if err != nil {
		t.Fatalf("add budget: %v", err)
	}

	if err := svc.DeleteBudget(context.Background(), b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetBudget(context.Background(), b.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("budget should be gone, got %v", err)
	}
	if err := svc.DeleteBudget(context.Background(), uuid.Nil); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("nil id: got %v", err)
	}
}
