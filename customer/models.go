package customer

import (
	"github.com/xraph/orderflow/id"
	"github.com/xraph/orderflow/types"
)

// Tier is the pricing tier a customer belongs to. Exactly one discount
// tier exists; everything that is not premium prices as standard.
type Tier string

const (
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// Customer is the party that owns orders. The pipeline treats customers
// as immutable for the duration of a processing pass; they are created
// and mutated by the store, never by the core.
type Customer struct {
	types.Entity
	ID       id.CustomerID     `json:"id"`
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Phone    string            `json:"phone"`
	Tier     Tier              `json:"tier"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// IsPremium reports whether the customer is on the premium tier.
func (c *Customer) IsPremium() bool {
	return c.Tier == TierPremium
}
