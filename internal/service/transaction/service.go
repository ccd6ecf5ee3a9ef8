// Package transaction implements the transaction rules: non-negative
// magnitudes, a valid direction, and an account that actually exists. The
// store does the balance bookkeeping; this layer rejects bad input before it
// gets there.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pocketledger/internal/errs"
	"pocketledger/internal/ledger"
)

// Repo defines read operations needed by the service.
type Repo interface {
	ListTransactions(ctx context.Context) ([]ledger.Transaction, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (ledger.Transaction, error)
}

// Writer defines write operations needed by the service. Implementations
// must keep account balances consistent with the transaction log across
// every call.
type Writer interface {
	CreateTransaction(ctx context.Context, t ledger.Transaction) (ledger.Transaction, error)
	UpdateTransaction(ctx context.Context, id uuid.UUID, patch ledger.TransactionPatch) (ledger.Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

// Service exposes validation and CRUD over the transaction log.
type Service interface {
	Add(ctx context.Context, t ledger.Transaction) (ledger.Transaction, error)
	Update(ctx context.Context, id uuid.UUID, patch ledger.TransactionPatch) (ledger.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]ledger.Transaction, error)
	Get(ctx context.Context, id uuid.UUID) (ledger.Transaction, error)
}

type service struct {
	repo   Repo
	writer Writer
}

// New constructs the transaction service.
func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

// Add validates the input, assigns a fresh id and appends the transaction.
// The stored transaction is returned with its identifier set.
func (s *service) Add(ctx context.Context, t ledger.Transaction) (ledger.Transaction, error) {
	if t.Amount.IsNeg() {
		return ledger.Transaction{}, fmt.Errorf("%w: amount must not be negative", errs.ErrInvalidAmount)
	}
	if !t.Type.Valid() {
		return ledger.Transaction{}, fmt.Errorf("%w: type must be income or expense", errs.ErrInvalid)
	}
	if t.AccountID == uuid.Nil {
		return ledger.Transaction{}, fmt.Errorf("%w: account_id is required", errs.ErrInvalid)
	}
	if t.Date.IsZero() {
		t.Date = time.Now().UTC()
	}
	t.ID = uuid.New()
	return s.writer.CreateTransaction(ctx, t)
}

// Update validates the patch and delegates the reverse-then-apply step to
// the store.
func (s *service) Update(ctx context.Context, id uuid.UUID, patch ledger.TransactionPatch) (ledger.Transaction, error) {
	if id == uuid.Nil {
		return ledger.Transaction{}, errs.ErrInvalid
	}
	if patch.Amount != nil && patch.Amount.IsNeg() {
		return ledger.Transaction{}, fmt.Errorf("%w: amount must not be negative", errs.ErrInvalidAmount)
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return ledger.Transaction{}, fmt.Errorf("%w: type must be income or expense", errs.ErrInvalid)
	}
	if patch.AccountID != nil && *patch.AccountID == uuid.Nil {
		return ledger.Transaction{}, fmt.Errorf("%w: account_id must not be empty", errs.ErrInvalid)
	}
	return s.writer.UpdateTransaction(ctx, id, patch)
}

// Delete removes the transaction and its balance effect.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errs.ErrInvalid
	}
	return s.writer.DeleteTransaction(ctx, id)
}

func (s *service) List(ctx context.Context) ([]ledger.Transaction, error) {
	return s.repo.ListTransactions(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (ledger.Transaction, error) {
	if id == uuid.Nil {
		return ledger.Transaction{}, errs.ErrInvalid
	}
	return s.repo.GetTransaction(ctx, id)
}
