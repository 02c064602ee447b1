package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	orderflow "github.com/xraph/orderflow"
	"github.com/xraph/orderflow/customer"
	"github.com/xraph/orderflow/id"
	"github.com/xraph/orderflow/order"
	orderstore "github.com/xraph/orderflow/store"
)

// Collection name constants.
const (
	colCustomers = "orderflow_customers"
	colOrders    = "orderflow_orders"
)

// compile-time interface check
var _ orderstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all orderflow collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("orderflow/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Customer Store ====================

func (s *Store) SaveCustomer(ctx context.Context, c *customer.Customer) error {
	m := toCustomerModel(c)
	m.UpdatedAt = now()

	_, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		SetUpdate(bson.M{"$set": bson.M{
			"_id":        m.ID,
			"name":       m.Name,
			"email":      m.Email,
			"phone":      m.Phone,
			"tier":       m.Tier,
			"metadata":   m.Metadata,
			"created_at": m.CreatedAt,
			"updated_at": m.UpdatedAt,
		}}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("orderflow/mongo: save customer: %w", err)
	}
	return nil
}

func (s *Store) GetCustomer(ctx context.Context, customerID id.CustomerID) (*customer.Customer, error) {
	var m customerModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": customerID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, orderflow.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("orderflow/mongo: get customer: %w", err)
	}
	return fromCustomerModel(&m)
}

func (s *Store) ListCustomers(ctx context.Context, opts customer.ListOpts) ([]*customer.Customer, error) {
	var models []customerModel

	filter := bson.M{}
	if opts.Tier != "" {
		filter["tier"] = string(opts.Tier)
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "created_at", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("orderflow/mongo: list customers: %w", err)
	}

	result := make([]*customer.Customer, len(models))
	for i := range models {
		c, err := fromCustomerModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = c
	}
	return result, nil
}

func (s *Store) DeleteCustomer(ctx context.Context, customerID id.CustomerID) error {
	res, err := s.mdb.NewDelete((*customerModel)(nil)).
		Filter(bson.M{"_id": customerID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("orderflow/mongo: delete customer: %w", err)
	}
	if res.DeletedCount() == 0 {
		return orderflow.ErrCustomerNotFound
	}
	return nil
}

// ==================== Order Store ====================

func (s *Store) SaveOrder(ctx context.Context, o *order.Order) error {
	m := toOrderModel(o)
	m.UpdatedAt = now()

	_, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		SetUpdate(bson.M{"$set": bson.M{
			"_id":                m.ID,
			"customer_id":        m.CustomerID,
			"customer":           m.Customer,
			"items":              m.Items,
			"total_amount_cents": m.TotalCents,
			"total_currency":     m.TotalCurrency,
			"tax_amount_cents":   m.TaxCents,
			"tax_currency":       m.TaxCurrency,
			"status":             m.Status,
			"placed_at":          m.PlacedAt,
			"priced_at":          m.PricedAt,
			"metadata":           m.Metadata,
			"created_at":         m.CreatedAt,
			"updated_at":         m.UpdatedAt,
		}}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("orderflow/mongo: save order: %w", err)
	}
	return nil
}

func (s *Store) GetOrder(ctx context.Context, orderID id.OrderID) (*order.Order, error) {
	var m orderModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": orderID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, orderflow.ErrOrderNotFound
		}
		return nil, fmt.Errorf("orderflow/mongo: get order: %w", err)
	}
	return fromOrderModel(&m)
}

func (s *Store) ListOrders(ctx context.Context, opts order.ListOpts) ([]*order.Order, error) {
	var models []orderModel

	filter := bson.M{}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}
	if !opts.Start.IsZero() {
		filter["placed_at"] = bson.M{"$gt": opts.Start}
	}
	if !opts.End.IsZero() {
		if _, ok := filter["placed_at"]; !ok {
			filter["placed_at"] = bson.M{}
		}
		if pa, ok := filter["placed_at"].(bson.M); ok {
			pa["$lt"] = opts.End
		}
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "placed_at", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("orderflow/mongo: list orders: %w", err)
	}

	result := make([]*order.Order, len(models))
	for i := range models {
		o, err := fromOrderModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = o
	}
	return result, nil
}

func (s *Store) ListPendingOrders(ctx context.Context) ([]*order.Order, error) {
	var models []orderModel

	err := s.mdb.NewFind(&models).
		Filter(bson.M{"status": string(order.StatusReceived)}).
		Sort(bson.D{{Key: "placed_at", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("orderflow/mongo: list pending orders: %w", err)
	}

	result := make([]*order.Order, len(models))
	for i := range models {
		o, err := fromOrderModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = o
	}
	return result, nil
}

func (s *Store) PurgeOrders(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.mdb.NewDelete((*orderModel)(nil)).
		Filter(bson.M{"placed_at": bson.M{"$lt": before}}).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("orderflow/mongo: purge orders: %w", err)
	}
	return res.DeletedCount(), nil
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all orderflow collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colCustomers: {
			{Keys: bson.D{{Key: "tier", Value: 1}}},
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetSparse(true),
			},
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
		},
		colOrders: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "placed_at", Value: 1}}},
			{Keys: bson.D{{Key: "customer_id", Value: 1}}},
			{Keys: bson.D{{Key: "placed_at", Value: 1}}},
		},
	}
}
