package order

import (
	"time"

	"github.com/xraph/orderflow/customer"
	"github.com/xraph/orderflow/id"
	"github.com/xraph/orderflow/types"
)

// Status tracks an order through the processing state machine.
// Transitions run strictly forward; a failed transition leaves the order
// at the last status it reached.
type Status string

const (
	StatusReceived  Status = "received"
	StatusValidated Status = "validated"
	StatusPriced    Status = "priced"

	// StatusSideEffectsApplied means inventory has been updated and the
	// confirmation sent, but the order is not yet in the revenue ledger.
	StatusSideEffectsApplied Status = "side_effects_applied"

	// StatusRecorded is terminal: the order is in the revenue ledger and
	// counted toward running revenue.
	StatusRecorded Status = "recorded"
)

// Item is a single order line. Immutable value.
type Item struct {
	ID        id.ItemID   `json:"id"`
	Name      string      `json:"name"`
	UnitPrice types.Money `json:"unit_price"`
}

// Order is a customer purchase moving through the pipeline.
//
// Total holds the raw amount until pricing runs, then the (possibly
// discounted) amount. Tax stays zero until pricing runs exactly once;
// PricedAt marks that it has.
type Order struct {
	types.Entity
	ID       id.OrderID         `json:"id"`
	Customer *customer.Customer `json:"customer"`
	Items    []Item             `json:"items"`
	Total    types.Money        `json:"total"`
	Tax      types.Money        `json:"tax"`
	Status   Status             `json:"status"`
	PlacedAt time.Time          `json:"placed_at"`
	PricedAt *time.Time         `json:"priced_at,omitempty"`
	Metadata map[string]string  `json:"metadata,omitempty"`
}

// IsPriced reports whether pricing has been applied to the order.
func (o *Order) IsPriced() bool {
	return o.PricedAt != nil
}
