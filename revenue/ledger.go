// Package revenue keeps the in-memory record of processed orders and the
// running total they contribute.
package revenue

import (
	"errors"
	"sync"
	"time"

	"github.com/xraph/orderflow/order"
	"github.com/xraph/orderflow/types"
)

// ErrDuplicate is returned when an order identifier is recorded twice.
// The second attempt is rejected outright; overwriting would silently
// desynchronize the running total from the recorded orders.
var ErrDuplicate = errors.New("orderflow: duplicate order")

// Ledger accumulates recorded orders and running revenue. The insert and
// the total update happen under one critical section, so the running
// total always equals the sum of recorded order totals even if a caller
// parallelizes batch processing.
type Ledger struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
	total  types.Money
}

// NewLedger creates an empty ledger accumulating in the given currency.
func NewLedger(currency string) *Ledger {
	return &Ledger{
		orders: make(map[string]*order.Order),
		total:  types.Zero(currency),
	}
}

// Record inserts a priced order and adds its total to running revenue.
// A duplicate identifier returns ErrDuplicate and leaves both the map
// and the total untouched.
func (l *Ledger) Record(o *order.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := o.ID.String()
	if _, exists := l.orders[key]; exists {
		return ErrDuplicate
	}
	l.orders[key] = o
	l.total = l.total.Add(o.Total)
	return nil
}

// Total returns the running revenue across all recorded orders.
func (l *Ledger) Total() types.Money {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total
}

// Count returns the number of recorded orders.
func (l *Ledger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.orders)
}

// Contains reports whether an order identifier has been recorded.
func (l *Ledger) Contains(orderID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.orders[orderID]
	return ok
}

// Between sums the totals of recorded orders placed strictly inside
// (start, end). Orders placed exactly at either bound are excluded.
// O(n) scan; fine at this scale, no index kept.
func (l *Ledger) Between(start, end time.Time) types.Money {
	l.mu.RLock()
	defer l.mu.RUnlock()

	sum := types.Zero(l.total.Currency)
	for _, o := range l.orders {
		if o.PlacedAt.After(start) && o.PlacedAt.Before(end) {
			sum = sum.Add(o.Total)
		}
	}
	return sum
}

// Orders returns a snapshot of the recorded orders. The slice is a copy;
// the orders themselves are shared and must be treated as read-only.
func (l *Ledger) Orders() []*order.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*order.Order, 0, len(l.orders))
	for _, o := range l.orders {
		out = append(out, o)
	}
	return out
}

// Stats is a point-in-time summary of ledger state, recomputed during
// the maintenance run's update-statistics step.
type Stats struct {
	Orders   int         `json:"orders"`
	Revenue  types.Money `json:"revenue"`
	Average  types.Money `json:"average"`
	Earliest time.Time   `json:"earliest,omitempty"`
	Latest   time.Time   `json:"latest,omitempty"`
}

// Stats computes a summary snapshot of the ledger.
func (l *Ledger) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := Stats{
		Orders:  len(l.orders),
		Revenue: l.total,
		Average: types.Zero(l.total.Currency),
	}
	if s.Orders > 0 {
		s.Average = l.total.Divide(int64(s.Orders))
	}
	for _, o := range l.orders {
		if s.Earliest.IsZero() || o.PlacedAt.Before(s.Earliest) {
			s.Earliest = o.PlacedAt
		}
		if o.PlacedAt.After(s.Latest) {
			s.Latest = o.PlacedAt
		}
	}
	return s
}
