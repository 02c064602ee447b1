// Package pricing applies discount and tax rules to orders.
//
// Price is a pure function of (order, tier): deterministic, no side
// effects, no error paths. Callers are responsible for excluding invalid
// totals before invoking it; the engine runs validation first and the
// pricer does not re-validate.
package pricing

import (
	"time"

	"github.com/xraph/orderflow/customer"
	"github.com/xraph/orderflow/order"
)

// Default rule rates, in whole percent.
const (
	DefaultPremiumDiscountPercent int64 = 10
	DefaultTaxPercent             int64 = 8
)

// Engine holds the pricing rules. The zero value is not usable; build
// one with New.
type Engine struct {
	premiumDiscountPct int64
	taxPct             int64
}

// Option configures a pricing Engine.
type Option func(*Engine)

// WithPremiumDiscount overrides the premium tier discount percentage.
func WithPremiumDiscount(pct int64) Option {
	return func(e *Engine) { e.premiumDiscountPct = pct }
}

// WithTaxRate overrides the tax percentage.
func WithTaxRate(pct int64) Option {
	return func(e *Engine) { e.taxPct = pct }
}

// New creates a pricing Engine with the default rules: 10% premium
// discount, 8% tax.
func New(opts ...Option) *Engine {
	e := &Engine{
		premiumDiscountPct: DefaultPremiumDiscountPercent,
		taxPct:             DefaultTaxPercent,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Price returns the priced copy of an order. Rules apply in fixed order:
// the premium discount first, then tax on the (possibly discounted)
// total. An already-priced order is returned unchanged, so accidental
// re-pricing cannot compound the discount or the tax.
func (e *Engine) Price(o order.Order, tier customer.Tier) order.Order {
	if o.IsPriced() {
		return o
	}

	if tier == customer.TierPremium {
		o.Total = o.Total.Subtract(o.Total.Percent(e.premiumDiscountPct))
	}
	o.Tax = o.Total.Percent(e.taxPct)

	now := time.Now().UTC()
	o.PricedAt = &now
	o.Status = order.StatusPriced
	return o
}
