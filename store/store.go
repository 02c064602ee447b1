package store

import (
	"context"
	"time"

	"github.com/xraph/orderflow/customer"
	"github.com/xraph/orderflow/id"
	"github.com/xraph/orderflow/order"
)

// Store is the unified storage interface for all Orderflow entities.
// Instead of embedding the sub-interfaces, we explicitly declare all methods
// to avoid naming conflicts.
type Store interface {
	// Customer methods
	SaveCustomer(ctx context.Context, c *customer.Customer) error
	GetCustomer(ctx context.Context, customerID id.CustomerID) (*customer.Customer, error)
	ListCustomers(ctx context.Context, opts customer.ListOpts) ([]*customer.Customer, error)
	DeleteCustomer(ctx context.Context, customerID id.CustomerID) error

	// Order methods
	SaveOrder(ctx context.Context, o *order.Order) error
	GetOrder(ctx context.Context, orderID id.OrderID) (*order.Order, error)
	ListOrders(ctx context.Context, opts order.ListOpts) ([]*order.Order, error)
	ListPendingOrders(ctx context.Context) ([]*order.Order, error)
	PurgeOrders(ctx context.Context, before time.Time) (int64, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
