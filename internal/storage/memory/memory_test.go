package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"pocketledger/internal/errs"
	"pocketledger/internal/ledger"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func seedAccount(t *testing.T, s *Store, name string, balance string) ledger.Account {
	t.Helper()
	a, err := s.CreateAccount(context.Background(), ledger.Account{
		ID:      uuid.New(),
		Name:    name,
		Type:    ledger.AccountTypeBank,
		Balance: dec(t, balance),
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return a
}

func seedCategory(t *testing.T, s *Store, name string) ledger.Category {
	t.Helper()
	c, err := s.CreateCategory(context.Background(), ledger.Category{ID: uuid.New(), Name: name})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return c
}

func addTx(t *testing.T, s *Store, acc ledger.Account, cat ledger.Category, typ ledger.TransactionType, amount string) ledger.Transaction {
	t.Helper()
	tx, err := s.CreateTransaction(context.Background(), ledger.Transaction{
		ID:          uuid.New(),
		Description: "test",
		Amount:      dec(t, amount),
		Date:        time.Now().UTC(),
		Type:        typ,
		CategoryID:  cat.ID,
		AccountID:   acc.ID,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	return tx
}

// checkBooks asserts that every account balance equals its opening balance
// plus the net effect of the current transaction log.
func checkBooks(t *testing.T, s *Store, openings map[uuid.UUID]decimal.Decimal) {
	t.Helper()
	ctx := context.Background()
	accounts, _ := s.ListAccounts(ctx)
	txs, _ := s.ListTransactions(ctx)
	for _, a := range accounts {
		want, ok := openings[a.ID]
		if !ok {
			t.Fatalf("no opening balance recorded for %s", a.Name)
		}
		for _, tx := range txs {
			if tx.AccountID != a.ID {
				continue
			}
			v, err := want.Add(tx.Signed())
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			want = v
		}
		if a.Balance.Cmp(want) != 0 {
			t.Fatalf("account %s: balance %s, want %s", a.Name, a.Balance, want)
		}
	}
}

func TestCreateTransaction_AdjustsOnlyReferencedAccount(t *testing.T) {
	s := New()
	ctx := context.Background()
	cash := seedAccount(t, s, "Cash", "500")
	bank := seedAccount(t, s, "Bank Account", "2500")
	groceries := seedCategory(t, s, "Groceries")

	tx := addTx(t, s, cash, groceries, ledger.TypeExpense, "100")
	if tx.ID == uuid.Nil {
		t.Fatal("expected a fresh id on the stored transaction")
	}

	got, err := s.GetAccount(ctx, cash.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.Balance.Cmp(dec(t, "400")) != 0 {
		t.Fatalf("cash balance = %s, want 400", got.Balance)
	}
	other, _ := s.GetAccount(ctx, bank.ID)
	if other.Balance.Cmp(dec(t, "2500")) != 0 {
		t.Fatalf("bank balance = %s, want unchanged 2500", other.Balance)
	}
	txs, _ := s.ListTransactions(ctx)
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
}

func TestCreateTransaction_UnknownAccount(t *testing.T) {
	s := New()
	seedAccount(t, s, "Cash", "500")
	cat := seedCategory(t, s, "Misc")

	_, err := s.CreateTransaction(context.Background(), ledger.Transaction{
		ID:         uuid.New(),
		Amount:     dec(t, "10"),
		Type:       ledger.TypeExpense,
		CategoryID: cat.ID,
		AccountID:  uuid.New(),
	})
	if !errors.Is(err, errs.ErrUnknownAccount) {
		t.Fatalf("expected ErrUnknownAccount, got %v", err)
	}
	txs, _ := s.ListTransactions(context.Background())
	if len(txs) != 0 {
		t.Fatal("transaction must not be recorded when the balance move is impossible")
	}
}

func TestDeleteTransaction_IsExactInverseOfCreate(t *testing.T) {
	s := New()
	ctx := context.Background()
	cash := seedAccount(t, s, "Cash", "500")
	cat := seedCategory(t, s, "Misc")

	tx := addTx(t, s, cash, cat, ledger.TypeIncome, "75.25")
	if err := s.DeleteTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ := s.GetAccount(ctx, cash.ID)
	if got.Balance.Cmp(dec(t, "500")) != 0 {
		t.Fatalf("balance = %s, want restored 500", got.Balance)
	}
	txs, _ := s.ListTransactions(ctx)
	if len(txs) != 0 {
		t.Fatal("transaction should be gone")
	}
	if err := s.DeleteTransaction(ctx, tx.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestUpdateTransaction_DescriptionOnlyKeepsBalances(t *testing.T) {
	s := New()
	ctx := context.Background()
	cash := seedAccount(t, s, "Cash", "500")
	cat := seedCategory(t, s, "Misc")
	tx := addTx(t, s, cash, cat, ledger.TypeExpense, "100")

	desc := "renamed"
	notes := "some notes"
	if _, err := s.UpdateTransaction(ctx, tx.ID, ledger.TransactionPatch{Description: &desc, Notes: &notes}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := s.GetAccount(ctx, cash.ID)
	if got.Balance.Cmp(dec(t, "400")) != 0 {
		t.Fatalf("balance = %s, want untouched 400", got.Balance)
	}
	updated, _ := s.GetTransaction(ctx, tx.ID)
	if updated.Description != "renamed" || updated.Notes != "some notes" {
		t.Fatalf("patch not applied: %+v", updated)
	}
}

func TestUpdateTransaction_AmountChangeMovesBalanceByDelta(t *testing.T) {
	s := New()
	ctx := context.Background()
	cash := seedAccount(t, s, "Cash", "500")
	cat := seedCategory(t, s, "Misc")
	tx := addTx(t, s, cash, cat, ledger.TypeExpense, "100") // balance 400

	amount := dec(t, "160")
	if _, err := s.UpdateTransaction(ctx, tx.ID, ledger.TransactionPatch{Amount: &amount}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := s.GetAccount(ctx, cash.ID)
	// expense delta of +60 moves the balance by -60
	if got.Balance.Cmp(dec(t, "340")) != 0 {
		t.Fatalf("balance = %s, want 340", got.Balance)
	}
}

func TestUpdateTransaction_MoveAcrossAccounts(t *testing.T) {
	s := New()
	ctx := context.Background()
	cash := seedAccount(t, s, "Cash", "500")
	bank := seedAccount(t, s, "Bank Account", "2500")
	cat := seedCategory(t, s, "Misc")
	tx := addTx(t, s, cash, cat, ledger.TypeExpense, "100") // cash 400

	income := ledger.TypeIncome
	amount := dec(t, "50")
	if _, err := s.UpdateTransaction(ctx, tx.ID, ledger.TransactionPatch{
		Amount:    &amount,
		Type:      &income,
		AccountID: &bank.ID,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	gotCash, _ := s.GetAccount(ctx, cash.ID)
	if gotCash.Balance.Cmp(dec(t, "500")) != 0 {
		t.Fatalf("cash = %s, want reversed to 500", gotCash.Balance)
	}
	gotBank, _ := s.GetAccount(ctx, bank.ID)
	if gotBank.Balance.Cmp(dec(t, "2550")) != 0 {
		t.Fatalf("bank = %s, want 2550", gotBank.Balance)
	}
}

func TestUpdateTransaction_UnknownTargetAccountIsNoOp(t *testing.T) {
	s := New()
	ctx := context.Background()
	cash := seedAccount(t, s, "Cash", "500")
	cat := seedCategory(t, s, "Misc")
	tx := addTx(t, s, cash, cat, ledger.TypeExpense, "100")

	bogus := uuid.New()
	if _, err := s.UpdateTransaction(ctx, tx.ID, ledger.TransactionPatch{AccountID: &bogus}); !errors.Is(err, errs.ErrUnknownAccount) {
		t.Fatalf("expected ErrUnknownAccount, got %v", err)
	}
	got, _ := s.GetAccount(ctx, cash.ID)
	if got.Balance.Cmp(dec(t, "400")) != 0 {
		t.Fatalf("failed update must leave balances alone, got %s", got.Balance)
	}
	kept, _ := s.GetTransaction(ctx, tx.ID)
	if kept.AccountID != cash.ID {
		t.Fatal("failed update must leave the transaction alone")
	}
}

func TestUpdateTransaction_UnknownID(t *testing.T) {
	s := New()
	seedAccount(t, s, "Cash", "500")
	if _, err := s.UpdateTransaction(context.Background(), uuid.New(), ledger.TransactionPatch{}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBooksStayBalancedThroughMixedMutations(t *testing.T) {
	s := New()
	ctx := context.Background()
	cash := seedAccount(t, s, "Cash", "500")
	bank := seedAccount(t, s, "Bank Account", "2500")
	card := seedAccount(t, s, "Credit Card", "-350")
	cat := seedCategory(t, s, "Misc")
	openings := map[uuid.UUID]decimal.Decimal{
		cash.ID: dec(t, "500"),
		bank.ID: dec(t, "2500"),
		card.ID: dec(t, "-350"),
	}

	t1 := addTx(t, s, cash, cat, ledger.TypeExpense, "100")
	checkBooks(t, s, openings)
	t2 := addTx(t, s, bank, cat, ledger.TypeIncome, "1200.50")
	checkBooks(t, s, openings)
	addTx(t, s, card, cat, ledger.TypeExpense, "80.99")
	checkBooks(t, s, openings)

	amount := dec(t, "45")
	if _, err := s.UpdateTransaction(ctx, t1.ID, ledger.TransactionPatch{Amount: &amount, AccountID: &bank.ID}); err != nil {
		t.Fatalf("update: %v", err)
	}
	checkBooks(t, s, openings)

	if err := s.DeleteTransaction(ctx, t2.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	checkBooks(t, s, openings)
}

func TestDeleteCategory_Cascades(t *testing.T) {
	s := New()
	ctx := context.Background()
	cash := seedAccount(t, s, "Cash", "500")
	food := seedCategory(t, s, "Food & Dining")
	travel := seedCategory(t, s, "Travel")
	tx := addTx(t, s, cash, food, ledger.TypeExpense, "30")
	other := addTx(t, s, cash, travel, ledger.TypeExpense, "10")

	amount := dec(t, "500")
	if _, err := s.CreateBudget(ctx, ledger.Budget{ID: uuid.New(), CategoryID: food.ID, Amount: amount, Period: ledger.PeriodMonthly, StartDate: time.Now()}); err != nil {
		t.Fatalf("create budget: %v", err)
	}
	keep, _ := s.CreateBudget(ctx, ledger.Budget{ID: uuid.New(), CategoryID: travel.ID, Amount: amount, Period: ledger.PeriodMonthly, StartDate: time.Now()})

	if err := s.DeleteCategory(ctx, food.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	if _, err := s.GetCategory(ctx, food.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatal("category should be gone")
	}
	got, _ := s.GetTransaction(ctx, tx.ID)
	if got.CategoryID != ledger.UncategorizedID {
		t.Fatalf("transaction should fall back to the uncategorized placeholder, got %s", got.CategoryID)
	}
	untouched, _ := s.GetTransaction(ctx, other.ID)
	if untouched.CategoryID != travel.ID {
		t.Fatal("unrelated transaction must keep its category")
	}
	budgets, _ := s.ListBudgets(ctx)
	if len(budgets) != 1 || budgets[0].ID != keep.ID {
		t.Fatalf("budgets on the deleted category must be removed, got %+v", budgets)
	}
}

func TestResolveFallbacks(t *testing.T) {
	s := New()
	ctx := context.Background()
	c := s.ResolveCategory(ctx, uuid.New())
	if c.Name != "Uncategorized" || c.ID != ledger.UncategorizedID {
		t.Fatalf("unexpected category fallback: %+v", c)
	}
	a := s.ResolveAccount(ctx, uuid.New())
	if a.Name != "Unknown Account" {
		t.Fatalf("unexpected account fallback: %+v", a)
	}
}

func TestDeleteAccount_LastAccountIsRefused(t *testing.T) {
	s := New()
	ctx := context.Background()
	only := seedAccount(t, s, "Cash", "500")
	if err := s.DeleteAccount(ctx, only.ID); !errors.Is(err, errs.ErrLastAccount) {
		t.Fatalf("expected ErrLastAccount, got %v", err)
	}
	accounts, _ := s.ListAccounts(ctx)
	if len(accounts) != 1 || accounts[0].ID != only.ID {
		t.Fatal("sole account must survive the refused delete")
	}
}

func TestDeleteAccount_ReassignsTransactions(t *testing.T) {
	s := New()
	ctx := context.Background()
	cash := seedAccount(t, s, "Cash", "500")
	bank := seedAccount(t, s, "Bank Account", "2500")
	cat := seedCategory(t, s, "Misc")
	tx := addTx(t, s, cash, cat, ledger.TypeExpense, "100")

	if err := s.DeleteAccount(ctx, cash.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}
	moved, _ := s.GetTransaction(ctx, tx.ID)
	if moved.AccountID != bank.ID {
		t.Fatal("transaction should move to the surviving account")
	}
	// the moved expense now weighs on the receiving balance
	got, _ := s.GetAccount(ctx, bank.ID)
	if got.Balance.Cmp(dec(t, "2400")) != 0 {
		t.Fatalf("bank = %s, want 2400 after absorbing the moved expense", got.Balance)
	}
	if _, err := s.GetAccount(ctx, cash.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatal("deleted account should be gone")
	}
}

func TestListSnapshotsKeepInsertionOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	first := seedAccount(t, s, "First", "0")
	second := seedAccount(t, s, "Second", "0")
	third := seedAccount(t, s, "Third", "0")

	accounts, _ := s.ListAccounts(ctx)
	want := []uuid.UUID{first.ID, second.ID, third.ID}
	for i, a := range accounts {
		if a.ID != want[i] {
			t.Fatalf("position %d: got %s", i, a.Name)
		}
	}
}
