package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	"github.com/xraph/grove/migrate"

	orderflow "github.com/xraph/orderflow"
	"github.com/xraph/orderflow/customer"
	"github.com/xraph/orderflow/id"
	"github.com/xraph/orderflow/order"
	orderstore "github.com/xraph/orderflow/store"
)

// compile-time interface check
var _ orderstore.Store = (*Store)(nil)

// Store implements store.Store using PostgreSQL via Grove ORM.
type Store struct {
	db  *grove.DB
	pdb *pgdriver.PgDB
}

// New creates a new PostgreSQL store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		pdb: pgdriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.pdb)
	if err != nil {
		return fmt.Errorf("orderflow/postgres: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("orderflow/postgres: migration failed: %w", err)
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
	_, err := s.pdb.NewInsert(m).
		OnConflict("(id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("email = EXCLUDED.email").
		Set("phone = EXCLUDED.phone").
		Set("tier = EXCLUDED.tier").
		Set("metadata = EXCLUDED.metadata").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (s *Store) GetCustomer(ctx context.Context, customerID id.CustomerID) (*customer.Customer, error) {
	m := new(customerModel)
	err := s.pdb.NewSelect(m).
		Where("id = ?", customerID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, orderflow.ErrCustomerNotFound
		}
		return nil, err
	}
	return fromCustomerModel(m)
}

func (s *Store) ListCustomers(ctx context.Context, opts customer.ListOpts) ([]*customer.Customer, error) {
	var models []customerModel
	q := s.pdb.NewSelect(&models)

	if opts.Tier != "" {
		q = q.Where("tier = ?", string(opts.Tier))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	res, err := s.pdb.NewDelete((*customerModel)(nil)).
		Where("id = ?", customerID.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return orderflow.ErrCustomerNotFound
	}
	return nil
}

// ==================== Order Store ====================

func (s *Store) SaveOrder(ctx context.Context, o *order.Order) error {
	m := toOrderModel(o)
	m.UpdatedAt = now()
	_, err := s.pdb.NewInsert(m).
		OnConflict("(id) DO UPDATE").
		Set("customer_id = EXCLUDED.customer_id").
		Set("customer = EXCLUDED.customer").
		Set("items = EXCLUDED.items").
		Set("total_amount_cents = EXCLUDED.total_amount_cents").
		Set("total_currency = EXCLUDED.total_currency").
		Set("tax_amount_cents = EXCLUDED.tax_amount_cents").
		Set("tax_currency = EXCLUDED.tax_currency").
		Set("status = EXCLUDED.status").
		Set("placed_at = EXCLUDED.placed_at").
		Set("priced_at = EXCLUDED.priced_at").
		Set("metadata = EXCLUDED.metadata").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (s *Store) GetOrder(ctx context.Context, orderID id.OrderID) (*order.Order, error) {
	m := new(orderModel)
	err := s.pdb.NewSelect(m).
		Where("id = ?", orderID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, orderflow.ErrOrderNotFound
		}
		return nil, err
	}
	return fromOrderModel(m)
}

func (s *Store) ListOrders(ctx context.Context, opts order.ListOpts) ([]*order.Order, error) {
	var models []orderModel
	q := s.pdb.NewSelect(&models)

	if opts.Status != "" {
		q = q.Where("status = ?", string(opts.Status))
	}
	if !opts.Start.IsZero() {
		q = q.Where("placed_at > ?", opts.Start)
	}
	if !opts.End.IsZero() {
		q = q.Where("placed_at < ?", opts.End)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("placed_at ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	err := s.pdb.NewSelect(&models).
		Where("status = ?", string(order.StatusReceived)).
		OrderExpr("placed_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
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
	res, err := s.pdb.NewDelete((*orderModel)(nil)).
		Where("placed_at < ?", before).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return rows, nil
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
