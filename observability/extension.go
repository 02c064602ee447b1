// Package observability provides a metrics extension for Orderflow that
// records lifecycle event counts via a MetricFactory.
package observability

import (
	"context"
	"time"

	"github.com/xraph/orderflow/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin                 = (*MetricsExtension)(nil)
	_ plugin.OnInit                 = (*MetricsExtension)(nil)
	_ plugin.OnOrderProcessed       = (*MetricsExtension)(nil)
	_ plugin.OnOrderFailed          = (*MetricsExtension)(nil)
	_ plugin.OnBatchCompleted       = (*MetricsExtension)(nil)
	_ plugin.OnReportGenerated      = (*MetricsExtension)(nil)
	_ plugin.OnSyncCompleted        = (*MetricsExtension)(nil)
	_ plugin.OnStatsUpdated         = (*MetricsExtension)(nil)
	_ plugin.OnMaintenanceCompleted = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as an Orderflow plugin to automatically track pipeline metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Order pipeline metrics
	OrdersProcessed   Counter
	OrdersFailed      Counter
	BatchesCompleted  Counter
	BatchSize         Histogram
	BatchLatency      Histogram

	// Reporting metrics
	ReportsGenerated Counter

	// Sync metrics
	SyncCompleted     Counter
	CustomersPulled   Counter
	CustomersPushed   Counter

	// Maintenance metrics
	MaintenanceRuns     Counter
	MaintenanceFailures Counter
	StatsUpdates        Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Order pipeline metrics
		OrdersProcessed:  factory.Counter("orderflow.orders.processed"),
		OrdersFailed:     factory.Counter("orderflow.orders.failed"),
		BatchesCompleted: factory.Counter("orderflow.batches.completed"),
		BatchSize:        factory.Histogram("orderflow.batch.size"),
		BatchLatency:     factory.Histogram("orderflow.batch.latency_ms"),

		// Reporting metrics
		ReportsGenerated: factory.Counter("orderflow.reports.generated"),

		// Sync metrics
		SyncCompleted:   factory.Counter("orderflow.sync.completed"),
		CustomersPulled: factory.Counter("orderflow.sync.customers.pulled"),
		CustomersPushed: factory.Counter("orderflow.sync.customers.pushed"),

		// Maintenance metrics
		MaintenanceRuns:     factory.Counter("orderflow.maintenance.runs"),
		MaintenanceFailures: factory.Counter("orderflow.maintenance.failures"),
		StatsUpdates:        factory.Counter("orderflow.stats.updates"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Order pipeline hooks
// ──────────────────────────────────────────────────

// OnOrderProcessed implements plugin.OnOrderProcessed.
func (m *MetricsExtension) OnOrderProcessed(_ context.Context, _ interface{}) error {
	m.OrdersProcessed.Inc()
	return nil
}

// OnOrderFailed implements plugin.OnOrderFailed.
func (m *MetricsExtension) OnOrderFailed(_ context.Context, _ interface{}, _ error) error {
	m.OrdersFailed.Inc()
	return nil
}

// OnBatchCompleted implements plugin.OnBatchCompleted.
func (m *MetricsExtension) OnBatchCompleted(_ context.Context, processed, failed int, elapsed time.Duration) error {
	m.BatchesCompleted.Inc()
	m.BatchSize.Observe(float64(processed + failed))
	m.BatchLatency.Observe(float64(elapsed.Milliseconds()))
	return nil
}

// ──────────────────────────────────────────────────
// Reporting and sync hooks
// ──────────────────────────────────────────────────

// OnReportGenerated implements plugin.OnReportGenerated.
func (m *MetricsExtension) OnReportGenerated(_ context.Context, _ interface{}) error {
	m.ReportsGenerated.Inc()
	return nil
}

// OnSyncCompleted implements plugin.OnSyncCompleted.
func (m *MetricsExtension) OnSyncCompleted(_ context.Context, pulled, pushed int) error {
	m.SyncCompleted.Inc()
	m.CustomersPulled.Add(float64(pulled))
	m.CustomersPushed.Add(float64(pushed))
	return nil
}

// ──────────────────────────────────────────────────
// Maintenance hooks
// ──────────────────────────────────────────────────

// OnStatsUpdated implements plugin.OnStatsUpdated.
func (m *MetricsExtension) OnStatsUpdated(_ context.Context, _ interface{}) error {
	m.StatsUpdates.Inc()
	return nil
}

// OnMaintenanceCompleted implements plugin.OnMaintenanceCompleted.
func (m *MetricsExtension) OnMaintenanceCompleted(_ context.Context, outcome interface{}) error {
	m.MaintenanceRuns.Inc()
	type failer interface{ OK() bool }
	if o, ok := outcome.(failer); ok && !o.OK() {
		m.MaintenanceFailures.Inc()
	}
	return nil
}
