// Package demo seeds the store with a plausible sample ledger for local
// development: a handful of accounts and categories, monthly budgets, and a
// few months of randomized transactions.
package demo

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"pocketledger/internal/ledger"
	"pocketledger/internal/storage/memory"
)

type categorySpec struct {
	name  string
	icon  string
	color string
	// income categories feed the income side of the generator
	income       bool
	descriptions []string
}

var categorySpecs = []categorySpec{
	{name: "Food & Dining", icon: "🍔", color: "#FF5733", descriptions: []string{"Grocery shopping", "Restaurant", "Coffee shop", "Fast food"}},
	{name: "Transportation", icon: "🚗", color: "#33A8FF", descriptions: []string{"Gas", "Ride share", "Bus ticket", "Car maintenance"}},
	{name: "Entertainment", icon: "🎬", color: "#A833FF", descriptions: []string{"Movie tickets", "Concert", "Streaming subscription", "Video games"}},
	{name: "Shopping", icon: "🛍️", color: "#FF33A8", descriptions: []string{"Clothes", "Electronics", "Home goods", "Online shopping"}},
	{name: "Housing", icon: "🏠", color: "#33FF57", descriptions: []string{"Rent", "Mortgage", "Home repairs", "Furniture"}},
	{name: "Utilities", icon: "💡", color: "#FFD133", descriptions: []string{"Electricity bill", "Water bill", "Internet bill", "Phone bill"}},
	{name: "Healthcare", icon: "🏥", color: "#33FFF5", descriptions: []string{"Doctor visit", "Pharmacy", "Health insurance", "Gym membership"}},
	{name: "Salary", icon: "💰", color: "#5733FF", income: true, descriptions: []string{"Salary", "Bonus", "Commission"}},
	{name: "Investments", icon: "📈", color: "#33FF8A", income: true, descriptions: []string{"Dividend", "Interest", "Stock sale"}},
	{name: "Gifts", icon: "🎁", color: "#FF3357", income: true, descriptions: []string{"Birthday gift", "Holiday gift", "Cash gift"}},
}

// Seed populates the store with the sample ledger. Transactions go through
// the store's create path so account balances stay consistent with the log.
func Seed(ctx context.Context, store *memory.Store) error {
	openCash, _ := decimal.New(500, 0)
	openBank, _ := decimal.New(2500, 0)
	openCard, _ := decimal.New(-350, 0)
	accounts := []ledger.Account{
		{ID: uuid.New(), Name: "Cash", Type: ledger.AccountTypeCash, Balance: openCash},
		{ID: uuid.New(), Name: "Bank Account", Type: ledger.AccountTypeBank, Balance: openBank},
		{ID: uuid.New(), Name: "Credit Card", Type: ledger.AccountTypeCard, Balance: openCard},
	}
	for _, a := range accounts {
		if _, err := store.CreateAccount(ctx, a); err != nil {
			return fmt.Errorf("seed account %q: %w", a.Name, err)
		}
	}

	var incomeCats, expenseCats []ledger.Category
	specByID := make(map[uuid.UUID]categorySpec, len(categorySpecs))
	for _, spec := range categorySpecs {
		c := ledger.Category{ID: uuid.New(), Name: spec.name, Icon: spec.icon, Color: spec.color}
		if _, err := store.CreateCategory(ctx, c); err != nil {
			return fmt.Errorf("seed category %q: %w", spec.name, err)
		}
		specByID[c.ID] = spec
		if spec.income {
			incomeCats = append(incomeCats, c)
		} else {
			expenseCats = append(expenseCats, c)
		}
	}

	budgetCeilings := []int64{500, 300, 200}
	for i, ceiling := range budgetCeilings {
		amount, _ := decimal.New(ceiling, 0)
		b := ledger.Budget{
			ID:         uuid.New(),
			CategoryID: expenseCats[i].ID,
			Amount:     amount,
			Period:     ledger.PeriodMonthly,
			StartDate:  time.Now().UTC().AddDate(0, -3, 0),
		}
		if _, err := store.CreateBudget(ctx, b); err != nil {
			return fmt.Errorf("seed budget: %w", err)
		}
	}

	now := time.Now().UTC()
	start := now.AddDate(0, -3, 0)
	span := now.Sub(start)
	for i := 0; i < 100; i++ {
		date := start.Add(time.Duration(rand.Int63n(int64(span))))
		typ := ledger.TypeExpense
		cats := expenseCats
		var units int64
		if rand.Float64() <= 0.3 {
			typ = ledger.TypeIncome
			cats = incomeCats
			units = 500 + rand.Int63n(1000)
		} else {
			units = 10 + rand.Int63n(200)
		}
		cat := cats[rand.Intn(len(cats))]
		spec := specByID[cat.ID]
		amount, _ := decimal.New(units, 0)
		t := ledger.Transaction{
			ID:          uuid.New(),
			Description: spec.descriptions[rand.Intn(len(spec.descriptions))],
			Amount:      amount,
			Date:        date,
			Type:        typ,
			CategoryID:  cat.ID,
			AccountID:   accounts[rand.Intn(len(accounts))].ID,
		}
		if _, err := store.CreateTransaction(ctx, t); err != nil {
			return fmt.Errorf("seed transaction: %w", err)
		}
	}
	return nil
}
