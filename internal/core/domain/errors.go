// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports an out-of-range or malformed argument. It is always
// raised before any mutation, so there is never a partial effect to undo.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an unknown warehouse or product name.
type NotFoundError struct {
	Kind string // "warehouse" or "product"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// InsufficientStockError reports a sale attempt exceeding the on-hand
// quantity. The stock is left untouched and no sale is recorded.
type InsufficientStockError struct {
	Product   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %d, requested %d",
		e.Product, e.Available, e.Requested)
}

// MalformedDataError reports a persisted file that is unreadable or
// inconsistent with the expected schema. The affected collection is unusable
// until the file is corrected or replaced.
type MalformedDataError struct {
	Path   string
	Line   int // 0 when the problem is not tied to a single row
	Reason string
	Err    error
}

func (e *MalformedDataError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed data in %s line %d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed data in %s: %s", e.Path, e.Reason)
}

func (e *MalformedDataError) Unwrap() error { return e.Err }

// StorageError reports a failed file system operation. The in-memory state may
// already reflect the intended change; callers must treat it as uncertain
// persisted state and retry the save.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsInsufficientStock reports whether err is, or wraps, an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
