// Package planning implements the rules for categories and budgets: budgets
// must point at a live category with a positive ceiling and a known period,
// and deleting a category must never lose transactions.
package planning

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
	ListCategories(ctx context.Context) ([]ledger.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (ledger.Category, error)
	ListBudgets(ctx context.Context) ([]ledger.Budget, error)
	GetBudget(ctx context.Context, id uuid.UUID) (ledger.Budget, error)
}

// Writer defines write operations needed by the service. DeleteCategory
// implementations carry the cascade: transactions fall back to the
// uncategorized placeholder and budgets on the category are removed.
type Writer interface {
	CreateCategory(ctx context.Context, c ledger.Category) (ledger.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, patch ledger.CategoryPatch) (ledger.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CreateBudget(ctx context.Context, b ledger.Budget) (ledger.Budget, error)
	UpdateBudget(ctx context.Context, id uuid.UUID, patch ledger.BudgetPatch) (ledger.Budget, error)
	DeleteBudget(ctx context.Context, id uuid.UUID) error
}

// Service exposes validation and CRUD over categories and budgets.
type Service interface {
	AddCategory(ctx context.Context, c ledger.Category) (ledger.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, patch ledger.CategoryPatch) (ledger.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]ledger.Category, error)

	AddBudget(ctx context.Context, b ledger.Budget) (ledger.Budget, error)
	UpdateBudget(ctx context.Context, id uuid.UUID, patch ledger.BudgetPatch) (ledger.Budget, error)
	DeleteBudget(ctx context.Context, id uuid.UUID) error
	ListBudgets(ctx context.Context) ([]ledger.Budget, error)
	GetBudget(ctx context.Context, id uuid.UUID) (ledger.Budget, error)
}

type service struct {
	repo   Repo
	writer Writer
}

// New constructs the planning service.
func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

// AddCategory validates and persists a new category.
func (s *service) AddCategory(ctx context.Context, c ledger.Category) (ledger.Category, error) {
	if c.Name == "" {
		return ledger.Category{}, fmt.Errorf("%w: name is required", errs.ErrInvalid)
	}
	c.ID = uuid.New()
	return s.writer.CreateCategory(ctx, c)
}

// UpdateCategory applies field changes to an existing category.
func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, patch ledger.CategoryPatch) (ledger.Category, error) {
	if id == uuid.Nil {
		return ledger.Category{}, errs.ErrInvalid
	}
	if patch.Name != nil && *patch.Name == "" {
		return ledger.Category{}, fmt.Errorf("%w: name must not be empty", errs.ErrInvalid)
	}
	return s.writer.UpdateCategory(ctx, id, patch)
}

// DeleteCategory removes the category; the store reassigns referencing
// transactions and drops dependent budgets.
func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errs.ErrInvalid
	}
	return s.writer.DeleteCategory(ctx, id)
}

func (s *service) ListCategories(ctx context.Context) ([]ledger.Category, error) {
	return s.repo.ListCategories(ctx)
}

// AddBudget validates and persists a new budget. The category must exist at
// creation time; unlike transactions there is no read-time fallback that
// would make a dangling budget meaningful.
func (s *service) AddBudget(ctx context.Context, b ledger.Budget) (ledger.Budget, error) {
	if !b.Amount.IsPos() {
		return ledger.Budget{}, fmt.Errorf("%w: budget amount must be positive", errs.ErrInvalidAmount)
	}
	if !b.Period.Valid() {
		return ledger.Budget{}, fmt.Errorf("%w: period must be one of daily, weekly, monthly, yearly", errs.ErrInvalid)
	}
	if _, err := s.repo.GetCategory(ctx, b.CategoryID); err != nil {
		return ledger.Budget{}, fmt.Errorf("%w: %s", errs.ErrUnknownCategory, b.CategoryID)
	}
	if b.StartDate.IsZero() {
		b.StartDate = time.Now().UTC()
	}
	b.ID = uuid.New()
	return s.writer.CreateBudget(ctx, b)
}

// UpdateBudget applies field changes to an existing budget.
func (s *service) UpdateBudget(ctx context.Context, id uuid.UUID, patch ledger.BudgetPatch) (ledger.Budget, error) {
	if id == uuid.Nil {
		return ledger.Budget{}, errs.ErrInvalid
	}
	if patch.Amount != nil && !patch.Amount.IsPos() {
		return ledger.Budget{}, fmt.Errorf("%w: budget amount must be positive", errs.ErrInvalidAmount)
	}
	if patch.Period != nil && !patch.Period.Valid() {
		return ledger.Budget{}, fmt.Errorf("%w: period must be one of daily, weekly, monthly, yearly", errs.ErrInvalid)
	}
	if patch.CategoryID != nil {
		if _, err := s.repo.GetCategory(ctx, *patch.CategoryID); err != nil {
			return ledger.Budget{}, fmt.Errorf("%w: %s", errs.ErrUnknownCategory, *patch.CategoryID)
		}
	}
	return s.writer.UpdateBudget(ctx, id, patch)
}

// DeleteBudget removes a budget.
func (s *service) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errs.ErrInvalid
	}
	return s.writer.DeleteBudget(ctx, id)
}

func (s *service) ListBudgets(ctx context.Context) ([]ledger.Budget, error) {
	return s.repo.ListBudgets(ctx)
}

func (s *service) GetBudget(ctx context.Context, id uuid.UUID) (ledger.Budget, error) {
	if id == uuid.Nil {
		return ledger.Budget{}, errs.ErrInvalid
	}
	return s.repo.GetBudget(ctx, id)
}
