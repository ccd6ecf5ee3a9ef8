// Package memory holds the canonical ledger state in process memory and is
// the single owner of all four collections. Every mutation runs under one
// write lock, so the reverse-then-apply balance maintenance and the delete
// cascades are atomic: no caller ever observes a transaction log that
// disagrees with the account balances.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"pocketledger/internal/errs"
	"pocketledger/internal/ledger"
)

// Store is the in-memory ledger store. Reads return copies in insertion
// order; entities are never shared by reference with callers.
type Store struct {
	mu sync.RWMutex

	accounts     map[uuid.UUID]ledger.Account
	transactions map[uuid.UUID]ledger.Transaction
	categories   map[uuid.UUID]ledger.Category
	budgets      map[uuid.UUID]ledger.Budget

	// Insertion-order indexes so list snapshots are stable.
	accountOrder     []uuid.UUID
	transactionOrder []uuid.UUID
	categoryOrder    []uuid.UUID
	budgetOrder      []uuid.UUID
}

// New constructs an empty store.
func New() *Store {
	return &Store{
		accounts:     make(map[uuid.UUID]ledger.Account),
		transactions: make(map[uuid.UUID]ledger.Transaction),
		categories:   make(map[uuid.UUID]ledger.Category),
		budgets:      make(map[uuid.UUID]ledger.Budget),
	}
}

// Reset drops all state. Used by tests and the demo seeder.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = map[uuid.UUID]ledger.Account{}
	s.transactions = map[uuid.UUID]ledger.Transaction{}
	s.categories = map[uuid.UUID]ledger.Category{}
	s.budgets = map[uuid.UUID]ledger.Budget{}
	s.accountOrder = nil
	s.transactionOrder = nil
	s.categoryOrder = nil
	s.budgetOrder = nil
}

// Ready satisfies the readiness probe; an in-memory store is always ready.
func (s *Store) Ready(context.Context) error { return nil }

// ListAccounts returns a snapshot of all accounts in insertion order.
func (s *Store) ListAccounts(_ context.Context) ([]ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Account, 0, len(s.accountOrder))
	for _, id := range s.accountOrder {
		out = append(out, s.accounts[id])
	}
	return out, nil
}

// GetAccount returns the account by id or errs.ErrNotFound.
func (s *Store) GetAccount(_ context.Context, id uuid.UUID) (ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return ledger.Account{}, errs.ErrNotFound
	}
	return a, nil
}

// ResolveAccount returns the account by id, or the UnknownAccount
// placeholder when the reference dangles. It never fails; display lookups
// depend on that.
func (s *Store) ResolveAccount(_ context.Context, id uuid.UUID) ledger.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.accounts[id]; ok {
		return a
	}
	return ledger.UnknownAccount()
}

// CreateAccount persists a new account. Its balance at this point is the
// opening balance every later invariant check is measured against.
func (s *Store) CreateAccount(_ context.Context, a ledger.Account) (ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[a.ID]; !exists {
		s.accountOrder = append(s.accountOrder, a.ID)
	}
	s.accounts[a.ID] = a
	return a, nil
}

// UpdateAccount applies descriptive field changes. The patch cannot touch
// the balance; only the store's own balance maintenance moves it.
func (s *Store) UpdateAccount(_ context.Context, id uuid.UUID, patch ledger.AccountPatch) (ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return ledger.Account{}, errs.ErrNotFound
	}
	a = patch.Apply(a)
	s.accounts[id] = a
	return a, nil
}

// DeleteAccount removes an account. Transactions referencing it are
// reassigned to another existing account, moving their net effect onto the
// receiving balance so the books still add up. Deleting the sole remaining
// account is refused with errs.ErrLastAccount.
func (s *Store) DeleteAccount(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return errs.ErrNotFound
	}
	if len(s.accounts) == 1 {
		return errs.ErrLastAccount
	}
	var fallback uuid.UUID
	for _, other := range s.accountOrder {
		if other != id {
			fallback = other
			break
		}
	}
	for _, txID := range s.transactionOrder {
		t := s.transactions[txID]
		if t.AccountID != id {
			continue
		}
		if err := s.shiftBalanceLocked(fallback, t.Signed()); err != nil {
			return err
		}
		t.AccountID = fallback
		s.transactions[txID] = t
	}
	delete(s.accounts, id)
	s.accountOrder = removeID(s.accountOrder, id)
	return nil
}

// ListTransactions returns a snapshot of the transaction log in insertion order.
func (s *Store) ListTransactions(_ context.Context) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Transaction, 0, len(s.transactionOrder))
	for _, id := range s.transactionOrder {
		out = append(out, s.transactions[id])
	}
	return out, nil
}

// GetTransaction returns the transaction by id or errs.ErrNotFound.
func (s *Store) GetTransaction(_ context.Context, id uuid.UUID) (ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.transactions[id]
	if !ok {
		return ledger.Transaction{}, errs.ErrNotFound
	}
	return t, nil
}

// CreateTransaction appends the transaction and adjusts the referenced
// account's balance in the same critical section. A nonexistent account is
// an error: recording the transaction while skipping the balance move would
// silently break the books.
func (s *Store) CreateTransaction(_ context.Context, t ledger.Transaction) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[t.AccountID]; !ok {
		return ledger.Transaction{}, fmt.Errorf("%w: %s", errs.ErrUnknownAccount, t.AccountID)
	}
	if err := s.shiftBalanceLocked(t.AccountID, t.Signed()); err != nil {
		return ledger.Transaction{}, err
	}
	if _, exists := s.transactions[t.ID]; !exists {
		s.transactionOrder = append(s.transactionOrder, t.ID)
	}
	s.transactions[t.ID] = t
	return t, nil
}

// UpdateTransaction patches an existing transaction. When the patch changes
// amount, type, or account, the old effect is reversed on the old account
// and the new effect applied on the new one, both computed from the same
// locked snapshot so nothing is double-counted.
func (s *Store) UpdateTransaction(_ context.Context, id uuid.UUID, patch ledger.TransactionPatch) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.transactions[id]
	if !ok {
		return ledger.Transaction{}, errs.ErrNotFound
	}
	next := patch.Apply(old)
	if _, ok := s.accounts[next.AccountID]; !ok {
		return ledger.Transaction{}, fmt.Errorf("%w: %s", errs.ErrUnknownAccount, next.AccountID)
	}
	if patch.MovesBalance(old) {
		if err := s.shiftBalanceLocked(old.AccountID, old.Signed().Neg()); err != nil {
			return ledger.Transaction{}, err
		}
		if err := s.shiftBalanceLocked(next.AccountID, next.Signed()); err != nil {
			// put the reversed effect back so the failed call is a no-op
			_ = s.shiftBalanceLocked(old.AccountID, old.Signed())
			return ledger.Transaction{}, err
		}
	}
	s.transactions[id] = next
	return next, nil
}

// DeleteTransaction removes the transaction and reverses its balance
// effect, the exact inverse of CreateTransaction.
func (s *Store) DeleteTransaction(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok {
		return errs.ErrNotFound
	}
	if _, ok := s.accounts[t.AccountID]; ok {
		if err := s.shiftBalanceLocked(t.AccountID, t.Signed().Neg()); err != nil {
			return err
		}
	}
	delete(s.transactions, id)
	s.transactionOrder = removeID(s.transactionOrder, id)
	return nil
}

// ListCategories returns a snapshot of all categories in insertion order.
func (s *Store) ListCategories(_ context.Context) ([]ledger.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Category, 0, len(s.categoryOrder))
	for _, id := range s.categoryOrder {
		out = append(out, s.categories[id])
	}
	return out, nil
}

// GetCategory returns the category by id or errs.ErrNotFound.
func (s *Store) GetCategory(_ context.Context, id uuid.UUID) (ledger.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return ledger.Category{}, errs.ErrNotFound
	}
	return c, nil
}

// ResolveCategory returns the category by id, or the Uncategorized
// placeholder when the reference dangles. It never fails.
func (s *Store) ResolveCategory(_ context.Context, id uuid.UUID) ledger.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.categories[id]; ok {
		return c
	}
	return ledger.Uncategorized()
}

// CreateCategory persists a new category.
func (s *Store) CreateCategory(_ context.Context, c ledger.Category) (ledger.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.categories[c.ID]; !exists {
		s.categoryOrder = append(s.categoryOrder, c.ID)
	}
	s.categories[c.ID] = c
	return c, nil
}

// UpdateCategory applies field changes to an existing category.
func (s *Store) UpdateCategory(_ context.Context, id uuid.UUID, patch ledger.CategoryPatch) (ledger.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return ledger.Category{}, errs.ErrNotFound
	}
	c = patch.Apply(c)
	s.categories[id] = c
	return c, nil
}

// DeleteCategory removes a category. Referencing transactions survive,
// reassigned to the uncategorized placeholder; budgets on the category are
// dropped.
func (s *Store) DeleteCategory(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return errs.ErrNotFound
	}
	for _, txID := range s.transactionOrder {
		t := s.transactions[txID]
		if t.CategoryID == id {
			t.CategoryID = ledger.UncategorizedID
			s.transactions[txID] = t
		}
	}
	for _, bid := range append([]uuid.UUID(nil), s.budgetOrder...) {
		if s.budgets[bid].CategoryID == id {
			delete(s.budgets, bid)
			s.budgetOrder = removeID(s.budgetOrder, bid)
		}
	}
	delete(s.categories, id)
	s.categoryOrder = removeID(s.categoryOrder, id)
	return nil
}

// ListBudgets returns a snapshot of all budgets in insertion order.
func (s *Store) ListBudgets(_ context.Context) ([]ledger.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Budget, 0, len(s.budgetOrder))
	for _, id := range s.budgetOrder {
		out = append(out, s.budgets[id])
	}
	return out, nil
}

// GetBudget returns the budget by id or errs.ErrNotFound.
func (s *Store) GetBudget(_ context.Context, id uuid.UUID) (ledger.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.budgets[id]
	if !ok {
		return ledger.Budget{}, errs.ErrNotFound
	}
	return b, nil
}

// CreateBudget persists a new budget.
func (s *Store) CreateBudget(_ context.Context, b ledger.Budget) (ledger.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.budgets[b.ID]; !exists {
		s.budgetOrder = append(s.budgetOrder, b.ID)
	}
	s.budgets[b.ID] = b
	return b, nil
}

// UpdateBudget applies field changes to an existing budget.
func (s *Store) UpdateBudget(_ context.Context, id uuid.UUID, patch ledger.BudgetPatch) (ledger.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[id]
	if !ok {
		return ledger.Budget{}, errs.ErrNotFound
	}
	b = patch.Apply(b)
	s.budgets[id] = b
	return b, nil
}

// DeleteBudget removes a budget. No cascading effects.
func (s *Store) DeleteBudget(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.budgets[id]; !ok {
		return errs.ErrNotFound
	}
	delete(s.budgets, id)
	s.budgetOrder = removeID(s.budgetOrder, id)
	return nil
}

// shiftBalanceLocked moves an account balance by delta. It is the only code
// path that writes balances after account creation. Caller holds the write
// lock.
func (s *Store) shiftBalanceLocked(accountID uuid.UUID, delta decimal.Decimal) error {
	a, ok := s.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: %s", errs.ErrUnknownAccount, accountID)
	}
	next, err := a.Balance.Add(delta)
	if err != nil {
		return fmt.Errorf("balance update for %s: %w", accountID, err)
	}
	a.Balance = next
	s.accounts[accountID] = a
	return nil
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
