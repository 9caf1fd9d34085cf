package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"bizexpense/internal/core"
	"bizexpense/internal/log"
)

// Records reads and writes the two collections as JSON arrays.
type Records struct {
	kv     KeyValue
	logger *log.Logger
}

func NewRecords(kv KeyValue, logger *log.Logger) *Records {
	if logger == nil {
		logger = log.Discard()
	}
	return &Records{kv: kv, logger: logger.WithComponent(log.ComponentStorage)}
}

// LoadExpenses returns ok=false when no record exists. A record that does
// not decode, or holds an entry without a date or with a missing or duplicate
// id, is copied under its quarantine key and reported as
// core.ErrPersistenceCorruption. Entries were validated when they entered the
// store and are not re-validated here.
func (r *Records) LoadExpenses(ctx context.Context) ([]core.Expense, bool, error) {
	raw, ok, err := r.kv.Get(ctx, ExpensesKey)
	if err != nil || !ok {
		return nil, false, err
	}
	var expenses []core.Expense
	if err := json.Unmarshal([]byte(raw), &expenses); err != nil {
		return nil, true, r.quarantine(ctx, ExpensesKey, raw, err)
	}
	seen := make(map[string]struct{}, len(expenses))
	for i, e := range expenses {
		if e.ID == "" {
			return nil, true, r.quarantine(ctx, ExpensesKey, raw, fmt.Errorf("entry %d has no id", i))
		}
		if _, dup := seen[e.ID]; dup {
			return nil, true, r.quarantine(ctx, ExpensesKey, raw, fmt.Errorf("duplicate id %q", e.ID))
		}
		seen[e.ID] = struct{}{}
		if err := e.Date.Validate(); err != nil {
			return nil, true, r.quarantine(ctx, ExpensesKey, raw, fmt.Errorf("entry %q: %w", e.ID, err))
		}
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	r.logger.DebugContext(ctx, "expenses loaded", log.FieldKey, ExpensesKey, log.FieldCount, len(expenses))
	return expenses, true, nil
}

// SaveExpenses replaces the stored expense record with the full collection.
func (r *Records) SaveExpenses(ctx context.Context, expenses []core.Expense) error {
	if expenses == nil {
		expenses = []core.Expense{}
	}
	return r.save(ctx, ExpensesKey, expenses)
}

// LoadBudgets returns ok=false when no record exists. The record must hold
// exactly one entry per category; anything else is treated as corrupt.
func (r *Records) LoadBudgets(ctx context.Context) ([]core.Budget, bool, error) {
	raw, ok, err := r.kv.Get(ctx, BudgetsKey)
	if err != nil || !ok {
		return nil, false, err
	}
	var budgets []core.Budget
	if err := json.Unmarshal([]byte(raw), &budgets); err != nil {
		return nil, true, r.quarantine(ctx, BudgetsKey, raw, err)
	}
	normalized, err := core.CheckBudgetSet(budgets)
	if err != nil {
		return nil, true, r.quarantine(ctx, BudgetsKey, raw, err)
	}
	r.logger.DebugContext(ctx, "budgets loaded", log.FieldKey, BudgetsKey, log.FieldCount, len(normalized))
	return normalized, true, nil
}

// SaveBudgets replaces the stored budget record.
func (r *Records) SaveBudgets(ctx context.Context, budgets []core.Budget) error {
	if budgets == nil {
		budgets = []core.Budget{}
	}
	return r.save(ctx, BudgetsKey, budgets)
}

func (r *Records) save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.kv.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	r.logger.DebugContext(ctx, "record saved", log.FieldKey, key, log.FieldBytes, len(b))
	return nil
}

func (r *Records) quarantine(ctx context.Context, key, raw string, cause error) error {
	r.logger.WarnContext(ctx, "stored record is malformed",
		log.FieldKey, key,
		log.FieldError, cause.Error())
	if err := r.kv.Set(ctx, key+CorruptSuffix, raw); err != nil {
		r.logger.ErrorContext(ctx, "failed to quarantine malformed record", log.FieldKey, key, log.FieldError, err.Error())
	}
	return fmt.Errorf("%w: %s: %v", core.ErrPersistenceCorruption, key, cause)
}
