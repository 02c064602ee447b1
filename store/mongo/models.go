package mongo

import (
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

	ID        string            `grove:"id,pk"      bson:"_id"`
	Name      string            `grove:"name"       bson:"name"`
	Email     string            `grove:"email"      bson:"email"`
	Phone     string            `grove:"phone"      bson:"phone"`
	Tier      string            `grove:"tier"       bson:"tier"`
	Metadata  map[string]string `grove:"metadata"   bson:"metadata,omitempty"`
	CreatedAt time.Time         `grove:"created_at" bson:"created_at"`
	UpdatedAt time.Time         `grove:"updated_at" bson:"updated_at"`
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

	ID            string             `grove:"id,pk"              bson:"_id"`
	CustomerID    string             `grove:"customer_id"        bson:"customer_id"`
	Customer      *customerRefModel  `grove:"customer"           bson:"customer,omitempty"`
	Items         []itemModel        `grove:"items"              bson:"items"`
	TotalCents    int64              `grove:"total_amount_cents" bson:"total_amount_cents"`
	TotalCurrency string             `grove:"total_currency"     bson:"total_currency"`
	TaxCents      int64              `grove:"tax_amount_cents"   bson:"tax_amount_cents"`
	TaxCurrency   string             `grove:"tax_currency"       bson:"tax_currency"`
	Status        string             `grove:"status"             bson:"status"`
	PlacedAt      time.Time          `grove:"placed_at"          bson:"placed_at"`
	PricedAt      *time.Time         `grove:"priced_at"          bson:"priced_at,omitempty"`
	Metadata      map[string]string  `grove:"metadata"           bson:"metadata,omitempty"`
	CreatedAt     time.Time          `grove:"created_at"         bson:"created_at"`
	UpdatedAt     time.Time          `grove:"updated_at"         bson:"updated_at"`
}

type customerRefModel struct {
	ID        string            `bson:"id"`
	Name      string            `bson:"name"`
	Email     string            `bson:"email"`
	Phone     string            `bson:"phone"`
	Tier      string            `bson:"tier"`
	Metadata  map[string]string `bson:"metadata,omitempty"`
	CreatedAt time.Time         `bson:"created_at"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

type itemModel struct {
	ID            string `bson:"id"`
	Name          string `bson:"name"`
	PriceCents    int64  `bson:"price_cents"`
	PriceCurrency string `bson:"price_currency"`
}

func toOrderModel(o *order.Order) *orderModel {
	var cust *customerRefModel
	var customerID string
	if o.Customer != nil {
		customerID = o.Customer.ID.String()
		cust = &customerRefModel{
			ID:        o.Customer.ID.String(),
			Name:      o.Customer.Name,
			Email:     o.Customer.Email,
			Phone:     o.Customer.Phone,
			Tier:      string(o.Customer.Tier),
			Metadata:  o.Customer.Metadata,
			CreatedAt: o.Customer.CreatedAt,
			UpdatedAt: o.Customer.UpdatedAt,
		}
	}

	items := make([]itemModel, len(o.Items))
	for i, it := range o.Items {
		items[i] = itemModel{
			ID:            it.ID.String(),
			Name:          it.Name,
			PriceCents:    it.UnitPrice.Amount,
			PriceCurrency: it.UnitPrice.Currency,
		}
	}

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
	if m.Customer != nil {
		customerID, err := id.ParseCustomerID(m.Customer.ID)
		if err != nil {
			return nil, err
		}
		cust = &customer.Customer{
			Entity: types.Entity{
				CreatedAt: m.Customer.CreatedAt,
				UpdatedAt: m.Customer.UpdatedAt,
			},
			ID:       customerID,
			Name:     m.Customer.Name,
			Email:    m.Customer.Email,
			Phone:    m.Customer.Phone,
			Tier:     customer.Tier(m.Customer.Tier),
			Metadata: m.Customer.Metadata,
		}
	}

	items := make([]order.Item, len(m.Items))
	for i, it := range m.Items {
		itemID, err := id.ParseItemID(it.ID)
		if err != nil {
			return nil, err
		}
		items[i] = order.Item{
			ID:        itemID,
			Name:      it.Name,
			UnitPrice: types.Money{Amount: it.PriceCents, Currency: it.PriceCurrency},
		}
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
