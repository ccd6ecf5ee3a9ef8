package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

// TransactionType carries the direction of a transaction. Amounts are stored
// as non-negative magnitudes; the sign of their effect on a balance comes
// from the type, never from the amount itself.
type TransactionType string

const (
	// TypeIncome increases the balance of the referenced account.
	TypeIncome TransactionType = "income"
	// TypeExpense decreases the balance of the referenced account.
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool { return t == TypeIncome || t == TypeExpense }

// AccountType enumerates the kinds of accounts a user can hold.
type AccountType string

const (
	AccountTypeCash       AccountType = "cash"
	AccountTypeBank       AccountType = "bank"
	AccountTypeCard       AccountType = "card"
	AccountTypeInvestment AccountType = "investment"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeCash, AccountTypeBank, AccountTypeCard, AccountTypeInvestment:
		return true
	}
	return false
}

// BudgetPeriod is the recurring window a budget is evaluated against.
type BudgetPeriod string

const (
	PeriodDaily   BudgetPeriod = "daily"
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// Valid reports whether p is a known budget period.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Account represents a place money lives. Balance is a signed running total:
// the opening balance set at creation plus the net effect of every
// transaction referencing the account. Card accounts routinely go negative.
type Account struct {
	ID      uuid.UUID
	Name    string
	Type    AccountType
	Balance decimal.Decimal
	Color   string
	Icon    string
}

// Category labels transactions for reporting and budgeting.
// ParentID is carried for future hierarchies; nothing rolls up yet.
type Category struct {
	ID       uuid.UUID
	Name     string
	Icon     string
	Color    string
	ParentID *uuid.UUID
}

// Transaction records a single movement of money in or out of an account.
type Transaction struct {
	ID          uuid.UUID
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Type        TransactionType
	CategoryID  uuid.UUID
	AccountID   uuid.UUID
	Notes       string
}

// Signed returns the amount with the sign implied by the transaction type:
// positive for income, negative for expense.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Budget caps spending for a category over a recurring period. Spent and
// percentage are never stored; they are recomputed from the transaction set
// for the window under evaluation.
type Budget struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	Amount     decimal.Decimal
	Period     BudgetPeriod
	StartDate  time.Time
	EndDate    *time.Time
}

// UncategorizedID is the well-known category id transactions are reassigned
// to when their real category is deleted.
var UncategorizedID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Uncategorized is the read-time placeholder returned when a transaction's
// category reference cannot be resolved. It is not a stored category.
func Uncategorized() Category {
	return Category{ID: UncategorizedID, Name: "Uncategorized", Icon: "question", Color: "#9E9E9E"}
}

// UnknownAccount is the read-time placeholder for a dangling account
// reference. Lookups for display must never fail on unknown ids.
func UnknownAccount() Account {
	return Account{Name: "Unknown Account"}
}

// TransactionPatch carries optional field changes for a transaction update.
// Nil fields are left untouched.
type TransactionPatch struct {
	Description *string
	Amount      *decimal.Decimal
	Date        *time.Time
	Type        *TransactionType
	CategoryID  *uuid.UUID
	AccountID   *uuid.UUID
	Notes       *string
}

// Apply returns a copy of t with the non-nil patch fields applied.
func (p TransactionPatch) Apply(t Transaction) Transaction {
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.AccountID != nil {
		t.AccountID = *p.AccountID
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	return t
}

// MovesBalance reports whether applying the patch changes how the
// transaction affects account balances (amount, type, or account).
func (p TransactionPatch) MovesBalance(t Transaction) bool {
	if p.Amount != nil && p.Amount.Cmp(t.Amount) != 0 {
		return true
	}
	if p.Type != nil && *p.Type != t.Type {
		return true
	}
	if p.AccountID != nil && *p.AccountID != t.AccountID {
		return true
	}
	return false
}

// AccountPatch carries optional field changes for an account update. The
// balance is deliberately absent: it is owned by the store's balance
// maintenance and is only set directly once, as the opening balance at
// creation.
type AccountPatch struct {
	Name  *string
	Type  *AccountType
	Color *string
	Icon  *string
}

// Apply returns a copy of a with the non-nil patch fields applied.
func (p AccountPatch) Apply(a Account) Account {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Color != nil {
		a.Color = *p.Color
	}
	if p.Icon != nil {
		a.Icon = *p.Icon
	}
	return a
}

// CategoryPatch carries optional field changes for a category update.
type CategoryPatch struct {
	Name     *string
	Icon     *string
	Color    *string
	ParentID *uuid.UUID
}

// Apply returns a copy of c with the non-nil patch fields applied.
func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.ParentID != nil {
		c.ParentID = p.ParentID
	}
	return c
}

// BudgetPatch carries optional field changes for a budget update.
type BudgetPatch struct {
	CategoryID *uuid.UUID
	Amount     *decimal.Decimal
	Period     *BudgetPeriod
	StartDate  *time.Time
	EndDate    *time.Time
}

// Apply returns a copy of b with the non-nil patch fields applied.
func (p BudgetPatch) Apply(b Budget) Budget {
	if p.CategoryID != nil {
		b.CategoryID = *p.CategoryID
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.Period != nil {
		b.Period = *p.Period
	}
	if p.StartDate != nil {
		b.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		b.EndDate = p.EndDate
	}
	return b
}
