// Package validate holds the pure admission predicates for customers and
// orders. Predicates have no side effects and raise no errors; a false
// return is the only failure signal.
package validate

import (
	"regexp"

	"github.com/xraph/orderflow/customer"
	"github.com/xraph/orderflow/order"
)

var (
	// Shape checks only. Deliverability is not this package's problem.
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{5,18}[0-9]$`)
)

// Customer reports whether a customer is admissible: non-empty name,
// address-shaped email, and phone-shaped phone. All three must hold.
func Customer(c *customer.Customer) bool {
	if c == nil {
		return false
	}
	return c.Name != "" && emailRe.MatchString(c.Email) && phoneRe.MatchString(c.Phone)
}

// Order reports whether an order is admissible: its customer passes
// Customer, it has at least one line item, and its total is positive.
func Order(o *order.Order) bool {
	if o == nil {
		return false
	}
	return Customer(o.Customer) && len(o.Items) > 0 && o.Total.IsPositive()
}
