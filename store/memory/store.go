package memory

import (
	"context"
	"sync"
	"time"

	"github.com/xraph/orderflow"
	"github.com/xraph/orderflow/customer"
	"github.com/xraph/orderflow/id"
	"github.com/xraph/orderflow/order"
	orderstore "github.com/xraph/orderflow/store"
)

// compile-time interface check
var _ orderstore.Store = (*Store)(nil)

// Store is the in-memory storage backend. Suitable for tests and demos;
// nothing survives a restart. A closed store rejects every operation
// with ErrStoreClosed.
type Store struct {
	mu     sync.RWMutex
	closed bool

	customers map[string]*customer.Customer
	orders    map[string]*order.Order
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		customers: make(map[string]*customer.Customer),
		orders:    make(map[string]*order.Order),
	}
}

// Customer Store implementation

func (s *Store) SaveCustomer(_ context.Context, c *customer.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return orderflow.ErrStoreClosed
	}
	s.customers[c.ID.String()] = c
	return nil
}

func (s *Store) GetCustomer(_ context.Context, customerID id.CustomerID) (*customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, orderflow.ErrStoreClosed
	}
	if c, ok := s.customers[customerID.String()]; ok {
		return c, nil
	}
	return nil, orderflow.ErrCustomerNotFound
}

func (s *Store) ListCustomers(_ context.Context, opts customer.ListOpts) ([]*customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, orderflow.ErrStoreClosed
	}
	result := make([]*customer.Customer, 0)
	for _, c := range s.customers {
		if opts.Tier == "" || c.Tier == opts.Tier {
			result = append(result, c)
		}
	}

	return paginate(result, opts.Offset, opts.Limit), nil
}

func (s *Store) DeleteCustomer(_ context.Context, customerID id.CustomerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return orderflow.ErrStoreClosed
	}
	if _, ok := s.customers[customerID.String()]; !ok {
		return orderflow.ErrCustomerNotFound
	}
	delete(s.customers, customerID.String())
	return nil
}

// Order Store implementation

func (s *Store) SaveOrder(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return orderflow.ErrStoreClosed
	}
	s.orders[o.ID.String()] = o
	return nil
}

func (s *Store) GetOrder(_ context.Context, orderID id.OrderID) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, orderflow.ErrStoreClosed
	}
	if o, ok := s.orders[orderID.String()]; ok {
		return o, nil
	}
	return nil, orderflow.ErrOrderNotFound
}

func (s *Store) ListOrders(_ context.Context, opts order.ListOpts) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, orderflow.ErrStoreClosed
	}
	result := make([]*order.Order, 0)
	for _, o := range s.orders {
		if opts.Status != "" && o.Status != opts.Status {
			continue
		}
		if !opts.Start.IsZero() && !o.PlacedAt.After(opts.Start) {
			continue
		}
		if !opts.End.IsZero() && !o.PlacedAt.Before(opts.End) {
			continue
		}
		result = append(result, o)
	}

	return paginate(result, opts.Offset, opts.Limit), nil
}

func (s *Store) ListPendingOrders(_ context.Context) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, orderflow.ErrStoreClosed
	}
	result := make([]*order.Order, 0)
	for _, o := range s.orders {
		if o.Status == order.StatusReceived {
			result = append(result, o)
		}
	}
	return result, nil
}

func (s *Store) PurgeOrders(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, orderflow.ErrStoreClosed
	}
	var purged int64
	for key, o := range s.orders {
		if o.PlacedAt.Before(before) {
			delete(s.orders, key)
			purged++
		}
	}
	return purged, nil
}

// Core methods

func (s *Store) Migrate(_ context.Context) error { return nil }

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return orderflow.ErrStoreClosed
	}
	return nil
}

// Close marks the store closed. Closing twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// paginate applies offset/limit to a result slice.
func paginate[T any](result []T, offset, limit int) []T {
	start := offset
	if start > len(result) {
		start = len(result)
	}
	end := start + limit
	if limit == 0 || end > len(result) {
		end = len(result)
	}
	return result[start:end]
}
