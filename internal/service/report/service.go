// Package report derives the read-only aggregates the presentation layer
// shows: total balance, period totals, daily series, per-category spending
// and budget progress. Everything is recomputed from the current snapshot on
// every call; nothing here is stored.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"pocketledger/internal/errs"
	"pocketledger/internal/ledger"
)

// Repo defines the snapshot reads the reports are computed from.
type Repo interface {
	ListAccounts(ctx context.Context) ([]ledger.Account, error)
	ListTransactions(ctx context.Context) ([]ledger.Transaction, error)
	ListCategories(ctx context.Context) ([]ledger.Category, error)
	GetBudget(ctx context.Context, id uuid.UUID) (ledger.Budget, error)
}

// Summary is the dashboard headline: overall balance plus the income and
// expense totals of the month containing the reference instant.
type Summary struct {
	TotalBalance decimal.Decimal
	Income       decimal.Decimal
	Expenses     decimal.Decimal
	From         time.Time
	To           time.Time
}

// CategorySpend is a category's expense total with its display attributes
// resolved (falling back to the uncategorized placeholder).
type CategorySpend struct {
	Category ledger.Category
	Amount   decimal.Decimal
}

// BudgetStatus pairs a budget with its recomputed progress for the current
// window.
type BudgetStatus struct {
	Budget     ledger.Budget
	From       time.Time
	To         time.Time
	Spent      decimal.Decimal
	Percentage decimal.Decimal
}

// Service exposes the derived read helpers.
type Service interface {
	Summary(ctx context.Context, at time.Time) (Summary, error)
	DailyNet(ctx context.Context, from, to time.Time) ([]ledger.DayGroup, error)
	SpendingByCategory(ctx context.Context, from, to time.Time) ([]CategorySpend, error)
	BudgetProgress(ctx context.Context, budgetID uuid.UUID, at time.Time) (BudgetStatus, error)
}

type service struct {
	repo Repo
}

// New constructs the report service.
func New(repo Repo) Service { return &service{repo: repo} }

// Summary computes the dashboard totals for the month containing at.
func (s *service) Summary(ctx context.Context, at time.Time) (Summary, error) {
	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return Summary{}, err
	}
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return Summary{}, err
	}
	from, to := ledger.PeriodWindow(ledger.PeriodMonthly, at)
	return Summary{
		TotalBalance: ledger.TotalBalance(accounts),
		Income:       ledger.PeriodTotals(txs, ledger.TypeIncome, from, to),
		Expenses:     ledger.PeriodTotals(txs, ledger.TypeExpense, from, to),
		From:         from,
		To:           to,
	}, nil
}

// DailyNet buckets the transactions dated within [from, to] per calendar
// day with a signed net total per day.
func (s *service) DailyNet(ctx context.Context, from, to time.Time) ([]ledger.DayGroup, error) {
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	inWindow := txs[:0:0]
	for _, t := range txs {
		if !t.Date.Before(from) && !t.Date.After(to) {
			inWindow = append(inWindow, t)
		}
	}
	return ledger.GroupByDay(inWindow), nil
}

// SpendingByCategory sums expenses per category over [from, to], resolving
// each category for display. Dangling references come back as the
// uncategorized placeholder rather than an error.
func (s *service) SpendingByCategory(ctx context.Context, from, to time.Time) ([]CategorySpend, error) {
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]ledger.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	totals := ledger.SpendingByCategory(txs, from, to)
	out := make([]CategorySpend, 0, len(totals))
	for _, ct := range totals {
		c, ok := byID[ct.CategoryID]
		if !ok {
			c = ledger.Uncategorized()
		}
		out = append(out, CategorySpend{Category: c, Amount: ct.Amount})
	}
	return out, nil
}

// BudgetProgress recomputes spent and percentage for the budget's period
// window containing at.
func (s *service) BudgetProgress(ctx context.Context, budgetID uuid.UUID, at time.Time) (BudgetStatus, error) {
	if budgetID == uuid.Nil {
		return BudgetStatus{}, errs.ErrInvalid
	}
	b, err := s.repo.GetBudget(ctx, budgetID)
	if err != nil {
		return BudgetStatus{}, err
	}
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return BudgetStatus{}, err
	}
	from, to := ledger.PeriodWindow(b.Period, at)
	p := ledger.BudgetProgress(b, txs, from, to)
	return BudgetStatus{Budget: b, From: from, To: to, Spent: p.Spent, Percentage: p.Percentage}, nil
}
