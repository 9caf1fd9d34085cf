package core

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation            = errors.New("validation failed")
	ErrNotFound              = errors.New("expense not found")
	ErrInvalidBudgetSet      = errors.New("invalid budget set")
	ErrPersistenceCorruption = errors.New("stored record is corrupt")
	ErrAttachmentTooLarge    = errors.New("attachment too large")
	ErrUnsupportedAttachment = errors.New("attachment is not an image")
)

// Form field names reported by ValidationError.
const (
	FieldDate        = "date"
	FieldAmount      = "amount"
	FieldDescription = "description"
)

// ValidationError reports one message per offending draft field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + e.Fields[name]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Message returns the message recorded for field, if any.
func (e *ValidationError) Message(field string) string {
	return e.Fields[field]
}
