package validate_test

import (
	"testing"
	"time"

	"github.com/xraph/orderflow/customer"
	"github.com/xraph/orderflow/id"
	"github.com/xraph/orderflow/order"
	"github.com/xraph/orderflow/types"
	"github.com/xraph/orderflow/validate"
)

func validCustomer() *customer.Customer {
	return &customer.Customer{
		Entity: types.NewEntity(),
		ID:     id.NewCustomerID(),
		Name:   "Ada Lovelace",
		Email:  "ada@example.com",
		Phone:  "+1 (555) 010-2030",
		Tier:   customer.TierStandard,
	}
}

func validOrder() *order.Order {
	return &order.Order{
		Entity:   types.NewEntity(),
		ID:       id.NewOrderID(),
		Customer: validCustomer(),
		Items: []order.Item{
			{ID: id.NewItemID(), Name: "widget", UnitPrice: types.USD(2500)},
		},
		Total:    types.USD(2500),
		Status:   order.StatusReceived,
		PlacedAt: time.Now().UTC(),
	}
}

func TestCustomer(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*customer.Customer)
		want   bool
	}{
		{"valid", func(c *customer.Customer) {}, true},
		{"empty name", func(c *customer.Customer) { c.Name = "" }, false},
		{"empty email", func(c *customer.Customer) { c.Email = "" }, false},
		{"email missing at", func(c *customer.Customer) { c.Email = "ada.example.com" }, false},
		{"email missing domain dot", func(c *customer.Customer) { c.Email = "ada@example" }, false},
		{"email with spaces", func(c *customer.Customer) { c.Email = "ada lovelace@example.com" }, false},
		{"empty phone", func(c *customer.Customer) { c.Phone = "" }, false},
		{"phone too short", func(c *customer.Customer) { c.Phone = "12345" }, false},
		{"phone with letters", func(c *customer.Customer) { c.Phone = "555-CALL-NOW" }, false},
		{"plain digits phone", func(c *customer.Customer) { c.Phone = "5550102030" }, true},
		{"international phone", func(c *customer.Customer) { c.Phone = "+44 20 7946 0958" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCustomer()
			tt.mutate(c)
			if got := validate.Customer(c); got != tt.want {
				t.Errorf("Customer: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCustomerNil(t *testing.T) {
	if validate.Customer(nil) {
		t.Error("nil customer should not validate")
	}
}

func TestOrder(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*order.Order)
		want   bool
	}{
		{"valid", func(o *order.Order) {}, true},
		{"nil customer", func(o *order.Order) { o.Customer = nil }, false},
		{"invalid customer", func(o *order.Order) { o.Customer.Email = "bad" }, false},
		{"no items", func(o *order.Order) { o.Items = nil }, false},
		{"zero total", func(o *order.Order) { o.Total = types.USD(0) }, false},
		{"negative total", func(o *order.Order) { o.Total = types.USD(-100) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOrder()
			tt.mutate(o)
			if got := validate.Order(o); got != tt.want {
				t.Errorf("Order: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrderNil(t *testing.T) {
	if validate.Order(nil) {
		t.Error("nil order should not validate")
	}
}
