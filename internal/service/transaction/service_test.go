package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"pocketledger/internal/errs"
	"pocketledger/internal/ledger"
	"pocketledger/internal/storage/memory"
)

func setup(t *testing.T) (Service, *memory.Store, ledger.Account) {
	t.Helper()
	store := memory.New()
	acc, err := store.CreateAccount(context.Background(), ledger.Account{
		ID:      uuid.New(),
		Name:    "Cash",
		Type:    ledger.AccountTypeCash,
		Balance: decimal.Zero,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return New(store, store), store, acc
}

func TestAdd_AssignsIDAndDefaults(t *testing.T) {
	svc, store, acc := setup(t)
	amount, _ := decimal.New(100, 0)

	got, err := svc.Add(context.Background(), ledger.Transaction{
		Description: "Groceries",
		Amount:      amount,
		Type:        ledger.TypeExpense,
		CategoryID:  uuid.New(),
		AccountID:   acc.ID,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if got.ID == uuid.Nil {
		t.Fatal("expected a generated id")
	}
	if got.Date.IsZero() {
		t.Fatal("expected a defaulted date")
	}
	stored, err := store.GetTransaction(context.Background(), got.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Description != "Groceries" {
		t.Fatalf("stored %+v", stored)
	}
}

func TestAdd_Rejections(t *testing.T) {
	svc, _, acc := setup(t)
	amount, _ := decimal.New(10, 0)
	negative := amount.Neg()

	cases := []struct {
		name string
		in   ledger.Transaction
		want error
	}{
		{
			name: "negative amount",
			in:   ledger.Transaction{Amount: negative, Type: ledger.TypeExpense, AccountID: acc.ID},
			want: errs.ErrInvalidAmount,
		},
		{
			name: "bad type",
			in:   ledger.Transaction{Amount: amount, Type: "transfer", AccountID: acc.ID},
			want: errs.ErrInvalid,
		},
		{
			name: "missing account",
			in:   ledger.Transaction{Amount: amount, Type: ledger.TypeExpense},
			want: errs.ErrInvalid,
		},
		{
			name: "unknown account",
			in:   ledger.Transaction{Amount: amount, Type: ledger.TypeExpense, AccountID: uuid.New()},
			want: errs.ErrUnknownAccount,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Add(context.Background(), tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestUpdate_PatchValidation(t *testing.T) {
	svc, _, acc := setup(t)
	amount, _ := decimal.New(50, 0)
	tx, err := svc.Add(context.Background(), ledger.Transaction{
		Amount:     amount,
		Type:       ledger.TypeExpense,
		CategoryID: uuid.New(),
		AccountID:  acc.ID,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	negative := amount.Neg()
	if _, err := svc.Update(context.Background(), tx.ID, ledger.TransactionPatch{Amount: &negative}); !errors.Is(err, errs.ErrInvalidAmount) {
		t.Fatalf("negative amount: got %v", err)
	}
	bad := ledger.TransactionType("transfer")
	if _, err := svc.Update(context.Background(), tx.ID, ledger.TransactionPatch{Type: &bad}); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("bad type: got %v", err)
	}
	nilID := uuid.Nil
	if _, err := svc.Update(context.Background(), tx.ID, ledger.TransactionPatch{AccountID: &nilID}); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("nil account: got %v", err)
	}
	if _, err := svc.Update(context.Background(), uuid.Nil, ledger.TransactionPatch{}); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("nil id: got %v", err)
	}
}

func TestDeleteAndGetGuards(t *testing.T) {
	svc, _, _ := setup(t)
	if err := svc.Delete(context.Background(), uuid.Nil); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("delete nil id: got %v", err)
	}
	if _, err := svc.Get(context.Background(), uuid.Nil); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("get nil id: got %v", err)
	}
	if _, err := svc.Get(context.Background(), uuid.New()); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("get missing id: got %v", err)
	}
}
