package postgres

import (
	"encoding/json"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/orderflow/customer"
	"github.com/xraph/orderflow/id"
	"github.com/xraph/orderflow/order"
	"github.com/xraph/orderflow/types"
)

// ==================== Customer models ====================

type customerModel struct {
	grove.BaseModel `grove:"table:orderflow_customers"`

	ID        string            `grove:"id,pk"`
	Name      string            `grove:"name"`
	Email     string            `grove:"email"`
	Phone     string            `grove:"phone"`
	Tier      string            `grove:"tier"`
	Metadata  map[string]string `grove:"metadata,type:jsonb"`
	CreatedAt time.Time         `grove:"created_at"`
	UpdatedAt time.Time         `grove:"updated_at"`
}

func toCustomerModel(c *customer.Customer) *customerModel {
	return &customerModel{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Tier:      string(c.Tier),
		Metadata:  c.Metadata,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func fromCustomerModel(m *customerModel) (*customer.Customer, error) {
	customerID, err := id.ParseCustomerID(m.ID)
	if err != nil {
		return nil, err
	}

	return &customer.Customer{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:       customerID,
		Name:     m.Name,
		Email:    m.Email,
		Phone:    m.Phone,
		Tier:     customer.Tier(m.Tier),
		Metadata: m.Metadata,
	}, nil
}

// ==================== Order models ====================

type orderModel struct {
	grove.BaseModel `grove:"table:orderflow_orders"`

	ID            string            `grove:"id,pk"`
	CustomerID    string            `grove:"customer_id"`
	Customer      json.RawMessage   `grove:"customer,type:jsonb"`
	Items         json.RawMessage   `grove:"items,type:jsonb"`
	TotalCents    int64             `grove:"total_amount_cents"`
	TotalCurrency string            `grove:"total_currency"`
	TaxCents      int64             `grove:"tax_amount_cents"`
	TaxCurrency   string            `grove:"tax_currency"`
	Status        string            `grove:"status"`
	PlacedAt      time.Time         `grove:"placed_at"`
	PricedAt      *time.Time        `grove:"priced_at"`
	Metadata      map[string]string `grove:"metadata,type:jsonb"`
	CreatedAt     time.Time         `grove:"created_at"`
	UpdatedAt     time.Time         `grove:"updated_at"`
}

func toOrderModel(o *order.Order) *orderModel {
	var customerID string
	if o.Customer != nil {
		customerID = o.Customer.ID.String()
	}
	cust, _ := json.Marshal(o.Customer) //nolint:errcheck // best-effort
	items, _ := json.Marshal(o.Items)   //nolint:errcheck // best-effort

	return &orderModel{
		ID:            o.ID.String(),
		CustomerID:    customerID,
		Customer:      cust,
		Items:         items,
		TotalCents:    o.Total.Amount,
		TotalCurrency: o.Total.Currency,
		TaxCents:      o.Tax.Amount,
		TaxCurrency:   o.Tax.Currency,
		Status:        string(o.Status),
		PlacedAt:      o.PlacedAt,
		PricedAt:      o.PricedAt,
		Metadata:      o.Metadata,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func fromOrderModel(m *orderModel) (*order.Order, error) {
	orderID, err := id.ParseOrderID(m.ID)
	if err != nil {
		return nil, err
	}

	var cust *customer.Customer
	if len(m.Customer) > 0 && string(m.Customer) != "null" {
		cust = new(customer.Customer)
		_ = json.Unmarshal(m.Customer, cust) //nolint:errcheck // best-effort
	}

	var items []order.Item
	if len(m.Items) > 0 {
		_ = json.Unmarshal(m.Items, &items) //nolint:errcheck // best-effort
	}

	return &order.Order{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:       orderID,
		Customer: cust,
		Items:    items,
		Total:    types.Money{Amount: m.TotalCents, Currency: m.TotalCurrency},
		Tax:      types.Money{Amount: m.TaxCents, Currency: m.TaxCurrency},
		Status:   order.Status(m.Status),
		PlacedAt: m.PlacedAt,
		PricedAt: m.PricedAt,
		Metadata: m.Metadata,
	}, nil
}
