// Package store owns the expense and budget collections for a session and
// mirrors every committed change to persistence.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"bizexpense/internal/core"
	"bizexpense/internal/log"
)

// Persistence is the record-level adapter the store syncs through.
type Persistence interface {
	LoadExpenses(ctx context.Context) ([]core.Expense, bool, error)
	SaveExpenses(ctx context.Context, expenses []core.Expense) error
	LoadBudgets(ctx context.Context) ([]core.Budget, bool, error)
	SaveBudgets(ctx context.Context, budgets []core.Budget) error
}

// DefaultBudgetCeiling is the per-category ceiling used when no budget record exists.
var DefaultBudgetCeiling = core.Money{Cents: 100000}

type Store struct {
	mu       sync.RWMutex
	p        Persistence
	logger   *log.Logger
	newID    func() string
	ceiling  core.Money
	expenses []core.Expense
	budgets  []core.Budget
	version  uint64
}

type Option func(*Store)

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithDefaultBudget sets the ceiling used for every category when the
// budget record is absent or unreadable.
func WithDefaultBudget(ceiling core.Money) Option {
	return func(s *Store) { s.ceiling = ceiling }
}

// New returns an empty store with default budgets. Call Load to restore
// persisted state.
func New(p Persistence, opts ...Option) *Store {
	s := &Store{
		p:       p,
		logger:  log.Discard(),
		newID:   uuid.NewString,
		ceiling: DefaultBudgetCeiling,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent(log.ComponentStore)
	s.expenses = []core.Expense{}
	s.budgets = core.DefaultBudgets(s.ceiling)
	return s
}

// Load restores both collections. An absent expense record yields an empty
// collection and an absent budget record yields the default budgets. A
// corrupt record falls back the same way and the returned error wraps
// core.ErrPersistenceCorruption; the store is usable in that case. Any
// other error leaves the store unchanged.
func (s *Store) Load(ctx context.Context) error {
	var (
		expenses              []core.Expense
		budgets               []core.Budget
		expensesOK, budgetsOK bool
		expErr, budErr        error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		expenses, expensesOK, expErr = s.p.LoadExpenses(gctx)
		if expErr != nil && !errors.Is(expErr, core.ErrPersistenceCorruption) {
			return fmt.Errorf("load expenses: %w", expErr)
		}
		return nil
	})
	g.Go(func() error {
		budgets, budgetsOK, budErr = s.p.LoadBudgets(gctx)
		if budErr != nil && !errors.Is(budErr, core.ErrPersistenceCorruption) {
			return fmt.Errorf("load budgets: %w", budErr)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.LogError(ctx, "failed to load records", err, log.OpLoad, nil)
		return err
	}

	if expErr != nil || !expensesOK {
		expenses = []core.Expense{}
	}
	if budErr != nil || !budgetsOK {
		budgets = core.DefaultBudgets(s.ceiling)
	}

	s.mu.Lock()
	s.expenses = expenses
	s.budgets = budgets
	s.version++
	version := s.version
	s.mu.Unlock()

	corruption := errors.Join(expErr, budErr)
	if corruption != nil {
		s.logger.WarnContext(ctx, "corrupt record replaced with defaults",
			log.FieldOperation, log.OpLoad,
			log.FieldError, corruption.Error())
	}
	s.logger.InfoContext(ctx, "store loaded",
		log.FieldOperation, log.OpLoad,
		log.FieldCount, len(expenses),
		log.FieldVersion, version)
	return corruption
}

// AddExpense validates the draft, assigns a fresh id and puts the expense
// first in the collection.
func (s *Store) AddExpense(ctx context.Context, draft core.ExpenseDraft) (core.Expense, error) {
	e, err := draft.Validate()
	if err != nil {
		return core.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.newID()
	if s.indexOf(e.ID) >= 0 {
		return core.Expense{}, fmt.Errorf("generated id %q already in use", e.ID)
	}

	next := make([]core.Expense, 0, len(s.expenses)+1)
	next = append(next, e)
	next = append(next, s.expenses...)
	if err := s.commitExpenses(ctx, next); err != nil {
		return core.Expense{}, err
	}

	s.logger.InfoContext(ctx, "expense added",
		log.NewFields().
			WithOperation(log.OpCreate).
			WithExpense(e.ID, string(e.Category), e.Amount.String()).
			ToSlice()...)
	return e, nil
}

// UpdateExpense replaces every field but the id, keeping the expense's
// position in the collection.
func (s *Store) UpdateExpense(ctx context.Context, id string, draft core.ExpenseDraft) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return core.Expense{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	e, err := draft.Validate()
	if err != nil {
		return core.Expense{}, err
	}
	e.ID = id

	next := slices.Clone(s.expenses)
	next[i] = e
	if err := s.commitExpenses(ctx, next); err != nil {
		return core.Expense{}, err
	}

	s.logger.InfoContext(ctx, "expense updated",
		log.NewFields().
			WithOperation(log.OpUpdate).
			WithExpense(e.ID, string(e.Category), e.Amount.String()).
			ToSlice()...)
	return e, nil
}

// DeleteExpense removes the expense with id, or reports core.ErrNotFound.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}

	next := slices.Delete(slices.Clone(s.expenses), i, i+1)
	if err := s.commitExpenses(ctx, next); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "expense deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldExpenseID, id)
	return nil
}

// ReplaceBudgets swaps in a complete budget set, one entry per category.
func (s *Store) ReplaceBudgets(ctx context.Context, budgets []core.Budget) error {
	normalized, err := core.CheckBudgetSet(budgets)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.p.SaveBudgets(ctx, normalized); err != nil {
		s.logger.LogError(ctx, "failed to persist budgets", err, log.OpReplaceBudgets, nil)
		return fmt.Errorf("persist budgets: %w", err)
	}
	s.budgets = normalized
	s.version++

	s.logger.InfoContext(ctx, "budgets replaced",
		log.FieldOperation, log.OpReplaceBudgets,
		log.FieldVersion, s.version)
	return nil
}

// BeginBudgetEdit returns a working copy of the committed budgets. Dropping
// it discards the edit; CommitBudgetEdit applies it.
func (s *Store) BeginBudgetEdit() *core.BudgetDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.NewBudgetDraft(s.budgets)
}

func (s *Store) CommitBudgetEdit(ctx context.Context, draft *core.BudgetDraft) error {
	return s.ReplaceBudgets(ctx, draft.Budgets())
}

// Snapshot returns copies of both collections tagged with the current version.
func (s *Store) Snapshot() core.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.Snapshot{
		Expenses: slices.Clone(s.expenses),
		Budgets:  slices.Clone(s.budgets),
		Version:  s.version,
	}
}

// Expense looks up a single expense by id.
func (s *Store) Expense(id string) (core.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return core.Expense{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return s.expenses[i], nil
}

// Version increases with every committed mutation and every Load.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// commitExpenses persists next and only then installs it. Callers hold mu.
func (s *Store) commitExpenses(ctx context.Context, next []core.Expense) error {
	if err := s.p.SaveExpenses(ctx, next); err != nil {
		s.logger.LogError(ctx, "failed to persist expenses", err, log.OpSave, nil)
		return fmt.Errorf("persist expenses: %w", err)
	}
	s.expenses = next
	s.version++
	return nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.expenses, func(e core.Expense) bool { return e.ID == id })
}
