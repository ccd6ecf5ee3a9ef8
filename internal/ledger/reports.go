package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

// This file holds the pure read helpers: every function derives its result
// from the snapshot it is handed and stores nothing.

// TotalBalance sums the balances of all accounts.
func TotalBalance(accounts []Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		if v, err := total.Add(a.Balance); err == nil {
			total = v
		}
	}
	return total
}

// PeriodTotals sums the amounts of transactions of the given type whose date
// falls within [from, to] inclusive.
func PeriodTotals(txs []Transaction, typ TransactionType, from, to time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.Type != typ || !inRange(t.Date, from, to) {
			continue
		}
		if v, err := total.Add(t.Amount); err == nil {
			total = v
		}
	}
	return total
}

// DayGroup is one calendar day's slice of the transaction log with its
// signed net total (income positive, expense negative).
type DayGroup struct {
	Day          time.Time
	Transactions []Transaction
	Net          decimal.Decimal
}

// GroupByDay buckets transactions per UTC calendar day, ascending by day.
func GroupByDay(txs []Transaction) []DayGroup {
	byDay := make(map[time.Time][]Transaction)
	for _, t := range txs {
		d := dayOf(t.Date)
		byDay[d] = append(byDay[d], t)
	}
	out := make([]DayGroup, 0, len(byDay))
	for day, group := range byDay {
		net := decimal.Zero
		for _, t := range group {
			if v, err := net.Add(t.Signed()); err == nil {
				net = v
			}
		}
		out = append(out, DayGroup{Day: day, Transactions: group, Net: net})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}

// Progress reports how far a budget is through its ceiling for one window.
type Progress struct {
	Spent      decimal.Decimal
	Percentage decimal.Decimal
}

// BudgetProgress recomputes spent and percentage for the budget's category
// over [from, to]. Only expenses count; the percentage is capped at 100.
func BudgetProgress(b Budget, txs []Transaction, from, to time.Time) Progress {
	spent := decimal.Zero
	for _, t := range txs {
		if t.Type != TypeExpense || t.CategoryID != b.CategoryID || !inRange(t.Date, from, to) {
			continue
		}
		if v, err := spent.Add(t.Amount); err == nil {
			spent = v
		}
	}
	return Progress{Spent: spent, Percentage: percentOf(spent, b.Amount)}
}

// PeriodWindow returns the calendar window of p that contains at, in UTC.
// Weekly windows start on Monday.
func PeriodWindow(p BudgetPeriod, at time.Time) (from, to time.Time) {
	at = at.UTC()
	switch p {
	case PeriodDaily:
		from = dayOf(at)
		to = from.AddDate(0, 0, 1).Add(-time.Nanosecond)
	case PeriodWeekly:
		weekday := int(at.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		from = dayOf(at).AddDate(0, 0, 1-weekday)
		to = from.AddDate(0, 0, 7).Add(-time.Nanosecond)
	case PeriodYearly:
		from = time.Date(at.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(1, 0, 0).Add(-time.Nanosecond)
	default: // monthly
		from = time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	}
	return from, to
}

// CategoryTotal is the expense total attributed to one category.
type CategoryTotal struct {
	CategoryID uuid.UUID
	Amount     decimal.Decimal
}

// SpendingByCategory sums expenses per category over [from, to], dropping
// categories with nothing spent. Order follows descending amount.
func SpendingByCategory(txs []Transaction, from, to time.Time) []CategoryTotal {
	sums := make(map[uuid.UUID]decimal.Decimal)
	for _, t := range txs {
		if t.Type != TypeExpense || !inRange(t.Date, from, to) {
			continue
		}
		cur, ok := sums[t.CategoryID]
		if !ok {
			cur = decimal.Zero
		}
		if v, err := cur.Add(t.Amount); err == nil {
			sums[t.CategoryID] = v
		}
	}
	out := make([]CategoryTotal, 0, len(sums))
	for id, amount := range sums {
		if amount.IsZero() {
			continue
		}
		out = append(out, CategoryTotal{CategoryID: id, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].CategoryID.String() < out[j].CategoryID.String()
	})
	return out
}

// percentOf computes spent/ceiling*100 capped at 100. A zero ceiling counts
// as exhausted as soon as anything is spent.
func percentOf(spent, ceiling decimal.Decimal) decimal.Decimal {
	if ceiling.IsZero() {
		if spent.IsPos() {
			return decimal.Hundred
		}
		return decimal.Zero
	}
	ratio, err := spent.Quo(ceiling)
	if err != nil {
		return decimal.Zero
	}
	pct, err := ratio.Mul(decimal.Hundred)
	if err != nil {
		return decimal.Hundred
	}
	if pct.Cmp(decimal.Hundred) > 0 {
		return decimal.Hundred
	}
	return pct
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
