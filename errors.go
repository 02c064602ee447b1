package orderflow

import (
	"errors"
	"fmt"

	"github.com/xraph/orderflow/id"
	"github.com/xraph/orderflow/maintenance"
	"github.com/xraph/orderflow/order"
	"github.com/xraph/orderflow/revenue"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors. ErrNotFound is the parent of the entity-level
	// not-found sentinels; errors.Is(err, ErrNotFound) matches any of
	// them.
	ErrNotFound     = errors.New("orderflow: not found")
	ErrInvalidInput = errors.New("orderflow: invalid input")

	// Pipeline errors
	ErrInvalidOrder = errors.New("orderflow: invalid order")
	ErrSideEffect   = errors.New("orderflow: side effect failed")
	ErrSync         = errors.New("orderflow: remote sync failed")

	// Store errors
	ErrStorage          = errors.New("orderflow: storage failure")
	ErrCustomerNotFound = fmt.Errorf("%w: customer", ErrNotFound)
	ErrOrderNotFound    = fmt.Errorf("%w: order", ErrNotFound)
	ErrStoreNotReady    = errors.New("orderflow: store not ready")
	ErrStoreClosed      = errors.New("orderflow: store is closed")
)

// Sentinels owned by leaf packages, re-exported here so callers can match
// the full taxonomy with one import.
var (
	// ErrDuplicateOrder is returned when an order identifier is recorded
	// in the revenue ledger twice.
	ErrDuplicateOrder = revenue.ErrDuplicate

	// ErrMaintenanceStep wraps the cause of a failed maintenance step.
	ErrMaintenanceStep = maintenance.ErrStepFailed
)

// ProcessError reports the failure of a single order's pipeline run. It
// carries the order identifier and the stage the order failed to reach,
// so batch callers can log, display, or drop per-order failures without
// parsing messages.
type ProcessError struct {
	OrderID id.OrderID
	Stage   order.Status
	Err     error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("orderflow: order %s failed entering %s: %v", e.OrderID, e.Stage, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *ProcessError) Unwrap() error { return e.Err }

// ValidationError carries field-level detail for an order rejected at
// admission. The pipeline wraps it under ErrInvalidOrder, so callers can
// match the sentinel or errors.As for the field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("orderflow: validation failed for %s: %s", e.Field, e.Message)
}

// MultiError represents multiple errors that occurred.
type MultiError struct {
	Errors []error
}

func (e MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "orderflow: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("orderflow: %d errors occurred, first: %v", len(e.Errors), e.Errors[0])
}

// Unwrap exposes the collected errors for errors.Is / errors.As.
func (e MultiError) Unwrap() []error { return e.Errors }
