package customer

import (
	"context"

	"github.com/xraph/orderflow/id"
)

// Store is the customer persistence fragment implemented by every
// storage backend.
type Store interface {
	Save(ctx context.Context, c *Customer) error
	Get(ctx context.Context, customerID id.CustomerID) (*Customer, error)
	List(ctx context.Context, opts ListOpts) ([]*Customer, error)
	Delete(ctx context.Context, customerID id.CustomerID) error
}

// ListOpts filters customer listings.
type ListOpts struct {
	Tier   Tier
	Limit  int
	Offset int
}
