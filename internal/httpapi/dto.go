package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"pocketledger/internal/errs"
	"pocketledger/internal/ledger"
	"pocketledger/internal/service/report"
)

// Monetary values travel as decimal strings on the wire ("12.50"); the
// domain keeps them as exact decimals and formatting stays a client concern.

type postAccountRequest struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Balance string `json:"balance,omitempty"`
	Color   string `json:"color,omitempty"`
	Icon    string `json:"icon,omitempty"`
}

type patchAccountRequest struct {
	Name  *string `json:"name,omitempty"`
	Type  *string `json:"type,omitempty"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

type accountResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Balance string    `json:"balance"`
	Color   string    `json:"color,omitempty"`
	Icon    string    `json:"icon,omitempty"`
}

type postTransactionRequest struct {
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	CategoryID  uuid.UUID `json:"category_id"`
	AccountID   uuid.UUID `json:"account_id"`
	Notes       string    `json:"notes,omitempty"`
}

type patchTransactionRequest struct {
	Description *string    `json:"description,omitempty"`
	Amount      *string    `json:"amount,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Type        *string    `json:"type,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	AccountID   *uuid.UUID `json:"account_id,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// categoryRef and accountRef are the resolved display views of references.
// They always resolve: dangling ids fall back to the placeholders.
type categoryRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Icon  string    `json:"icon,omitempty"`
	Color string    `json:"color,omitempty"`
}

type accountRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type transactionResponse struct {
	ID          uuid.UUID   `json:"id"`
	Description string      `json:"description"`
	Amount      string      `json:"amount"`
	Date        time.Time   `json:"date"`
	Type        string      `json:"type"`
	CategoryID  uuid.UUID   `json:"category_id"`
	AccountID   uuid.UUID   `json:"account_id"`
	Notes       string      `json:"notes,omitempty"`
	Category    categoryRef `json:"category"`
	Account     accountRef  `json:"account"`
}

type postCategoryRequest struct {
	Name     string     `json:"name"`
	Icon     string     `json:"icon,omitempty"`
	Color    string     `json:"color,omitempty"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

type patchCategoryRequest struct {
	Name     *string    `json:"name,omitempty"`
	Icon     *string    `json:"icon,omitempty"`
	Color    *string    `json:"color,omitempty"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

type categoryResponse struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Icon     string     `json:"icon,omitempty"`
	Color    string     `json:"color,omitempty"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

type postBudgetRequest struct {
	CategoryID uuid.UUID  `json:"category_id"`
	Amount     string     `json:"amount"`
	Period     string     `json:"period"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

type patchBudgetRequest struct {
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	Amount     *string    `json:"amount,omitempty"`
	Period     *string    `json:"period,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

type budgetResponse struct {
	ID         uuid.UUID  `json:"id"`
	CategoryID uuid.UUID  `json:"category_id"`
	Amount     string     `json:"amount"`
	Period     string     `json:"period"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

type budgetProgressResponse struct {
	budgetResponse
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
	Spent      string    `json:"spent"`
	Percentage string    `json:"percentage"`
}

type summaryResponse struct {
	TotalBalance string    `json:"total_balance"`
	Income       string    `json:"income"`
	Expenses     string    `json:"expenses"`
	From         time.Time `json:"from"`
	To           time.Time `json:"to"`
}

type dayGroupResponse struct {
	Day          string                `json:"day"`
	Net          string                `json:"net"`
	Transactions []transactionResponse `json:"transactions"`
}

type categorySpendResponse struct {
	Category categoryRef `json:"category"`
	Amount   string      `json:"amount"`
}

// parseAmount converts a wire amount into an exact decimal. Anything that is
// not a finite decimal number is an invalid amount.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.Parse(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a decimal number", errs.ErrInvalidAmount, s)
	}
	return d, nil
}

func toAccountResponse(a ledger.Account) accountResponse {
	return accountResponse{
		ID:      a.ID,
		Name:    a.Name,
		Type:    string(a.Type),
		Balance: a.Balance.String(),
		Color:   a.Color,
		Icon:    a.Icon,
	}
}

func toCategoryResponse(c ledger.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Icon: c.Icon, Color: c.Color, ParentID: c.ParentID}
}

func toCategoryRef(c ledger.Category) categoryRef {
	return categoryRef{ID: c.ID, Name: c.Name, Icon: c.Icon, Color: c.Color}
}

func toBudgetResponse(b ledger.Budget) budgetResponse {
	return budgetResponse{
		ID:         b.ID,
		CategoryID: b.CategoryID,
		Amount:     b.Amount.String(),
		Period:     string(b.Period),
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
	}
}

func toBudgetProgressResponse(st report.BudgetStatus) budgetProgressResponse {
	return budgetProgressResponse{
		budgetResponse: toBudgetResponse(st.Budget),
		From:           st.From,
		To:             st.To,
		Spent:          st.Spent.String(),
		Percentage:     st.Percentage.String(),
	}
}

// toTransactionResponse resolves category and account for display; dangling
// references come back as the placeholders, never as errors.
func (s *Server) toTransactionResponse(ctx context.Context, t ledger.Transaction) transactionResponse {
	cat := s.resolver.ResolveCategory(ctx, t.CategoryID)
	acc := s.resolver.ResolveAccount(ctx, t.AccountID)
	return transactionResponse{
		ID:          t.ID,
		Description: t.Description,
		Amount:      t.Amount.String(),
		Date:        t.Date,
		Type:        string(t.Type),
		CategoryID:  t.CategoryID,
		AccountID:   t.AccountID,
		Notes:       t.Notes,
		Category:    toCategoryRef(cat),
		Account:     accountRef{ID: acc.ID, Name: acc.Name},
	}
}
