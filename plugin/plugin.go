// Package plugin provides an extensible plugin system for Orderflow.
// Plugins can hook into pipeline, reporting, and maintenance lifecycle
// events to extend functionality.
package plugin

import (
	"context"
	"time"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// Hook parameters are passed as interface{} so plugin packages do not
// import the domain packages (which would cycle through the root).

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, engine interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Order pipeline hooks
// ──────────────────────────────────────────────────

// OnOrderProcessed is called when an order reaches the recorded state.
type OnOrderProcessed interface {
	Plugin
	OnOrderProcessed(ctx context.Context, order interface{}) error
}

// OnOrderFailed is called when an order aborts at any pipeline stage.
type OnOrderFailed interface {
	Plugin
	OnOrderFailed(ctx context.Context, order interface{}, err error) error
}

// OnBatchCompleted is called after a batch finishes its per-order loop,
// before batch-level reporting and sync.
type OnBatchCompleted interface {
	Plugin
	OnBatchCompleted(ctx context.Context, processed, failed int, elapsed time.Duration) error
}

// ──────────────────────────────────────────────────
// Reporting and sync hooks
// ──────────────────────────────────────────────────

// OnReportGenerated is called when a revenue report has been rendered.
type OnReportGenerated interface {
	Plugin
	OnReportGenerated(ctx context.Context, report interface{}) error
}

// OnSyncCompleted is called after a successful remote customer sync.
type OnSyncCompleted interface {
	Plugin
	OnSyncCompleted(ctx context.Context, pulled, pushed int) error
}

// ──────────────────────────────────────────────────
// Maintenance hooks
// ──────────────────────────────────────────────────

// OnStatsUpdated is called when the update-statistics maintenance step
// recomputes the ledger snapshot.
type OnStatsUpdated interface {
	Plugin
	OnStatsUpdated(ctx context.Context, stats interface{}) error
}

// OnMaintenanceCompleted is called when a maintenance run finishes,
// whether or not a step failed.
type OnMaintenanceCompleted interface {
	Plugin
	OnMaintenanceCompleted(ctx context.Context, outcome interface{}) error
}
