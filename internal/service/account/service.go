// Package account implements the account rules: a named account of a known
// kind, an opening balance fixed at creation, and deletion that refuses to
// orphan the transaction log.
package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"pocketledger/internal/errs"
	"pocketledger/internal/ledger"
)

// Repo defines read operations needed by the service.
type Repo interface {
	ListAccounts(ctx context.Context) ([]ledger.Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (ledger.Account, error)
}

// Writer defines write operations needed by the service.
type Writer interface {
	CreateAccount(ctx context.Context, a ledger.Account) (ledger.Account, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, patch ledger.AccountPatch) (ledger.Account, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

// Service exposes validation and CRUD over accounts.
type Service interface {
	Create(ctx context.Context, a ledger.Account) (ledger.Account, error)
	Update(ctx context.Context, id uuid.UUID, patch ledger.AccountPatch) (ledger.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]ledger.Account, error)
	Get(ctx context.Context, id uuid.UUID) (ledger.Account, error)
}

type service struct {
	repo   Repo
	writer Writer
}

// New constructs the account service.
func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

// Create validates and persists a new account. The balance supplied here is
// the opening balance; it may be negative (a carried-over card debt).
func (s *service) Create(ctx context.Context, a ledger.Account) (ledger.Account, error) {
	if a.Name == "" {
		return ledger.Account{}, fmt.Errorf("%w: name is required", errs.ErrInvalid)
	}
	if !a.Type.Valid() {
		return ledger.Account{}, fmt.Errorf("%w: type must be one of cash, bank, card, investment", errs.ErrInvalid)
	}
	a.ID = uuid.New()
	return s.writer.CreateAccount(ctx, a)
}

// Update applies descriptive field changes. Balances cannot be edited here;
// they only move with the transaction log.
func (s *service) Update(ctx context.Context, id uuid.UUID, patch ledger.AccountPatch) (ledger.Account, error) {
	if id == uuid.Nil {
		return ledger.Account{}, errs.ErrInvalid
	}
	if patch.Name != nil && *patch.Name == "" {
		return ledger.Account{}, fmt.Errorf("%w: name must not be empty", errs.ErrInvalid)
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return ledger.Account{}, fmt.Errorf("%w: type must be one of cash, bank, card, investment", errs.ErrInvalid)
	}
	return s.writer.UpdateAccount(ctx, id, patch)
}

// Delete removes the account, letting the store reassign any referencing
// transactions. Deleting the last account surfaces errs.ErrLastAccount.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errs.ErrInvalid
	}
	return s.writer.DeleteAccount(ctx, id)
}

func (s *service) List(ctx context.Context) ([]ledger.Account, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (ledger.Account, error) {
	if id == uuid.Nil {
		return ledger.Account{}, errs.ErrInvalid
	}
	return s.repo.GetAccount(ctx, id)
}
