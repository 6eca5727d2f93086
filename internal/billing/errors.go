package billing

import (
	"errors"
	"fmt"

	"github.com/wealthware/backend/validation"
)

var (
	// ErrLastLine: the cart keeps a minimum of one line item.
	ErrLastLine = errors.New("billing: cannot remove the only line item")
	// ErrNoSuchLine: line index out of range.
	ErrNoSuchLine = errors.New("billing: no such line item")
	// ErrUnknownProduct: the identifier does not resolve against the catalog snapshot.
	ErrUnknownProduct = errors.New("billing: unknown product")
	// ErrQuantityExceedsStock: requested quantity exceeds recorded stock; the
	// prior quantity is kept. A warning to surface, not a hard failure.
	ErrQuantityExceedsStock = errors.New("billing: quantity exceeds available stock")
	// ErrInvalidQuantity: line quantities are positive integers.
	ErrInvalidQuantity = errors.New("billing: quantity must be positive")
	// ErrNoDocument: the archived invoice has no stored document reference.
	ErrNoDocument = errors.New("billing: invoice has no stored document")
)

// ValidationError blocks submission entirely; no side effects have happened.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("billing: validation failed (%d violations)", len(e.Violations))
}

// PersistenceError reports which submission step failed (render, upload,
// persist). A document uploaded before a later step failed is orphaned, not
// cleaned up.
type PersistenceError struct {
	Step string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("billing: %s failed: %v", e.Step, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// LookupError reports a product that could not be located during
// reconciliation. Logged and skipped; never blocks the invoice.
type LookupError struct {
	SKU string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("billing: product %s not found: %v", e.SKU, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }
