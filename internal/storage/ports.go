// Package storage persists the expense and budget collections as JSON
// records in a key-value store.
package storage

import "context"

// Fixed record keys.
const (
	ExpensesKey = "biz_expenses_data"
	BudgetsKey  = "biz_budgets_data"
)

// CorruptSuffix is appended to a key when a malformed record is set aside.
const CorruptSuffix = ".corrupt"

// KeyValue is the durable local store the records live in.
type KeyValue interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
