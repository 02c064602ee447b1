package extension

import "time"

// Config holds the Orderflow extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.orderflow" or "orderflow" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// Currency is the ledger currency code (default: "usd").
	Currency string `json:"currency" mapstructure:"currency" yaml:"currency"`

	// AdminEmail receives batch summaries and health reports
	// (default: "admin@company.com").
	AdminEmail string `json:"admin_email" mapstructure:"admin_email" yaml:"admin_email"`

	// Retention is how long processed orders are kept before maintenance
	// purges them (default: 2160h, i.e. 90 days).
	Retention time.Duration `json:"retention" mapstructure:"retention" yaml:"retention"`

	// DisplayBufferSize is the capacity of the display message queue
	// (default: 256). Messages are dropped when the queue is full.
	DisplayBufferSize int `json:"display_buffer_size" mapstructure:"display_buffer_size" yaml:"display_buffer_size"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Currency:          "usd",
		AdminEmail:        "admin@company.com",
		Retention:         90 * 24 * time.Hour,
		DisplayBufferSize: 256,
	}
}
