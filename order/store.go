package order

import (
	"context"
	"time"

	"github.com/xraph/orderflow/id"
)

// Store is the order persistence fragment implemented by every storage
// backend. Save is an upsert so the pipeline can persist status changes
// for orders the store already knows.
type Store interface {
	Save(ctx context.Context, o *Order) error
	Get(ctx context.Context, orderID id.OrderID) (*Order, error)
	List(ctx context.Context, opts ListOpts) ([]*Order, error)
	ListPending(ctx context.Context) ([]*Order, error)
	Purge(ctx context.Context, before time.Time) (int64, error)
}

// ListOpts filters order listings.
type ListOpts struct {
	Status Status
	Start  time.Time
	End    time.Time
	Limit  int
	Offset int
}
