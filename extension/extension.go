// Package extension provides the Forge extension adapter for Orderflow.
//
// It implements the forge.Extension interface to integrate Orderflow
// into a Forge application with automatic dependency discovery,
// DI registration, and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.orderflow" or
// "orderflow" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	orderflow "github.com/xraph/orderflow"
	"github.com/xraph/orderflow/store"
	"github.com/xraph/orderflow/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "orderflow"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Order processing pipeline and revenue ledger"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Orderflow as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *orderflow.Engine
	store      store.Store
	engineOpts []orderflow.Option
}

// New creates a new Orderflow Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Orderflow engine.
// This is nil until Register is called.
func (e *Extension) Engine() *orderflow.Engine { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the processing engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	// Build engine options from resolved config.
	opts := e.buildEngineOpts()

	eng := orderflow.New(e.store, opts...)
	e.engine = eng

	return vessel.Provide(fapp.Container(), func() (*orderflow.Engine, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("orderflow: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return orderflow.ErrStoreNotReady
	}
	return e.store.Ping(ctx)
}

// buildEngineOpts constructs orderflow.Option values from the resolved config.
func (e *Extension) buildEngineOpts() []orderflow.Option {
	opts := make([]orderflow.Option, 0, len(e.engineOpts)+4)

	if e.config.Currency != "" {
		opts = append(opts, orderflow.WithCurrency(e.config.Currency))
	}
	if e.config.AdminEmail != "" {
		opts = append(opts, orderflow.WithAdminEmail(e.config.AdminEmail))
	}
	if e.config.Retention > 0 {
		opts = append(opts, orderflow.WithRetention(e.config.Retention))
	}
	if e.config.DisplayBufferSize > 0 {
		opts = append(opts, orderflow.WithDisplayBuffer(e.config.DisplayBufferSize))
	}

	// Append any pass-through engine options.
	opts = append(opts, e.engineOpts...)

	return opts
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("orderflow: configuration is required but not found in config files; " +
				"ensure 'extensions.orderflow' or 'orderflow' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("orderflow: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("currency", e.config.Currency),
		forge.F("admin_email", e.config.AdminEmail),
		forge.F("retention", e.config.Retention),
		forge.F("display_buffer_size", e.config.DisplayBufferSize),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.orderflow" first (namespaced pattern).
	if cm.IsSet("extensions.orderflow") {
		if err := cm.Bind("extensions.orderflow", &cfg); err == nil {
			e.Logger().Debug("orderflow: loaded config from file",
				forge.F("key", "extensions.orderflow"),
			)
			return cfg, true
		}
		e.Logger().Warn("orderflow: failed to bind extensions.orderflow config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "orderflow" key.
	if cm.IsSet("orderflow") {
		if err := cm.Bind("orderflow", &cfg); err == nil {
			e.Logger().Debug("orderflow: loaded config from file",
				forge.F("key", "orderflow"),
			)
			return cfg, true
		}
		e.Logger().Warn("orderflow: failed to bind orderflow config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.Currency == "" {
		cfg.Currency = defaults.Currency
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = defaults.AdminEmail
	}
	if cfg.Retention == 0 {
		cfg.Retention = defaults.Retention
	}
	if cfg.DisplayBufferSize == 0 {
		cfg.DisplayBufferSize = defaults.DisplayBufferSize
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	// String fields: YAML takes precedence.
	if yamlConfig.Currency == "" && programmaticConfig.Currency != "" {
		yamlConfig.Currency = programmaticConfig.Currency
	}
	if yamlConfig.AdminEmail == "" && programmaticConfig.AdminEmail != "" {
		yamlConfig.AdminEmail = programmaticConfig.AdminEmail
	}

	// Duration/int fields: YAML takes precedence, programmatic fills gaps.
	if yamlConfig.Retention == 0 && programmaticConfig.Retention != 0 {
		yamlConfig.Retention = programmaticConfig.Retention
	}
	if yamlConfig.DisplayBufferSize == 0 && programmaticConfig.DisplayBufferSize != 0 {
		yamlConfig.DisplayBufferSize = programmaticConfig.DisplayBufferSize
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}
