package extension

import (
	"time"

	orderflow "github.com/xraph/orderflow"
	"github.com/xraph/orderflow/plugin"
	"github.com/xraph/orderflow/store"
)

// Option configures the Orderflow Forge extension.
type Option func(*Extension)

// WithStore sets the store for the processing engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithEngineOption passes an orderflow.Option through to the underlying engine.
func WithEngineOption(opt orderflow.Option) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, opt)
	}
}

// WithPlugin registers an orderflow plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, orderflow.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}

// WithCurrency sets the ledger currency code.
func WithCurrency(currency string) Option {
	return func(e *Extension) { e.config.Currency = currency }
}

// WithAdminEmail sets the recipient for batch summaries and health reports.
func WithAdminEmail(addr string) Option {
	return func(e *Extension) { e.config.AdminEmail = addr }
}

// WithRetention sets how long processed orders are kept before purge.
func WithRetention(d time.Duration) Option {
	return func(e *Extension) { e.config.Retention = d }
}

// WithDisplayBufferSize sets the capacity of the display message queue.
func WithDisplayBufferSize(size int) Option {
	return func(e *Extension) { e.config.DisplayBufferSize = size }
}
