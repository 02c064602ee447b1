package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Orderflow store.
var Migrations = migrate.NewGroup("orderflow")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_orderflow_customers",
			Version: "20240101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS orderflow_customers (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    email      TEXT NOT NULL DEFAULT '',
    phone      TEXT NOT NULL DEFAULT '',
    tier       TEXT NOT NULL DEFAULT 'standard',
    metadata   JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_orderflow_customers_tier ON orderflow_customers (tier);
CREATE INDEX IF NOT EXISTS idx_orderflow_customers_email ON orderflow_customers (email);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS orderflow_customers`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_orderflow_orders",
			Version: "20240101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS orderflow_orders (
    id                 TEXT PRIMARY KEY,
    customer_id        TEXT NOT NULL DEFAULT '',
    customer           JSONB,
    items              JSONB NOT NULL DEFAULT '[]',
    total_amount_cents BIGINT NOT NULL DEFAULT 0,
    total_currency     TEXT NOT NULL DEFAULT '',
    tax_amount_cents   BIGINT NOT NULL DEFAULT 0,
    tax_currency       TEXT NOT NULL DEFAULT '',
    status             TEXT NOT NULL DEFAULT 'received',
    placed_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    priced_at          TIMESTAMPTZ,
    metadata           JSONB NOT NULL DEFAULT '{}',
    created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_orderflow_orders_status ON orderflow_orders (status);
CREATE INDEX IF NOT EXISTS idx_orderflow_orders_customer ON orderflow_orders (customer_id);
CREATE INDEX IF NOT EXISTS idx_orderflow_orders_placed_at ON orderflow_orders (placed_at);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS orderflow_orders`)
				return err
			},
		},
	)
}
