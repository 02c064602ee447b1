package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit                 []OnInit
	onShutdown             []OnShutdown
	onOrderProcessed       []OnOrderProcessed
	onOrderFailed          []OnOrderFailed
	onBatchCompleted       []OnBatchCompleted
	onReportGenerated      []OnReportGenerated
	onSyncCompleted        []OnSyncCompleted
	onStatsUpdated         []OnStatsUpdated
	onMaintenanceCompleted []OnMaintenanceCompleted
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnOrderProcessed); ok {
		r.onOrderProcessed = append(r.onOrderProcessed, v)
	}
	if v, ok := p.(OnOrderFailed); ok {
		r.onOrderFailed = append(r.onOrderFailed, v)
	}
	if v, ok := p.(OnBatchCompleted); ok {
		r.onBatchCompleted = append(r.onBatchCompleted, v)
	}
	if v, ok := p.(OnReportGenerated); ok {
		r.onReportGenerated = append(r.onReportGenerated, v)
	}
	if v, ok := p.(OnSyncCompleted); ok {
		r.onSyncCompleted = append(r.onSyncCompleted, v)
	}
	if v, ok := p.(OnStatsUpdated); ok {
		r.onStatsUpdated = append(r.onStatsUpdated, v)
	}
	if v, ok := p.(OnMaintenanceCompleted); ok {
		r.onMaintenanceCompleted = append(r.onMaintenanceCompleted, v)
	}

	return nil
}

// Plugins returns the names of all registered plugins.
func (r *Registry) Plugins() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.plugins))
	for i, p := range r.plugins {
		names[i] = p.Name()
	}
	return names
}

// callWithTimeout guards against a plugin hanging the pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitOrderProcessed emits an order processed event.
func (r *Registry) EmitOrderProcessed(ctx context.Context, order interface{}) {
	r.mu.RLock()
	plugins := r.onOrderProcessed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnOrderProcessed(ctx, order)
		}); err != nil {
			r.logger.Warn("plugin OnOrderProcessed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitOrderFailed emits an order failed event.
func (r *Registry) EmitOrderFailed(ctx context.Context, order interface{}, cause error) {
	r.mu.RLock()
	plugins := r.onOrderFailed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnOrderFailed(ctx, order, cause)
		}); err != nil {
			r.logger.Warn("plugin OnOrderFailed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitBatchCompleted emits a batch completed event.
func (r *Registry) EmitBatchCompleted(ctx context.Context, processed, failed int, elapsed time.Duration) {
	r.mu.RLock()
	plugins := r.onBatchCompleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnBatchCompleted(ctx, processed, failed, elapsed)
		}); err != nil {
			r.logger.Warn("plugin OnBatchCompleted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitReportGenerated emits a report generated event.
func (r *Registry) EmitReportGenerated(ctx context.Context, report interface{}) {
	r.mu.RLock()
	plugins := r.onReportGenerated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnReportGenerated(ctx, report)
		}); err != nil {
			r.logger.Warn("plugin OnReportGenerated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitSyncCompleted emits a sync completed event.
func (r *Registry) EmitSyncCompleted(ctx context.Context, pulled, pushed int) {
	r.mu.RLock()
	plugins := r.onSyncCompleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSyncCompleted(ctx, pulled, pushed)
		}); err != nil {
			r.logger.Warn("plugin OnSyncCompleted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitStatsUpdated emits a statistics updated event.
func (r *Registry) EmitStatsUpdated(ctx context.Context, stats interface{}) {
	r.mu.RLock()
	plugins := r.onStatsUpdated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnStatsUpdated(ctx, stats)
		}); err != nil {
			r.logger.Warn("plugin OnStatsUpdated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitMaintenanceCompleted emits a maintenance completed event.
func (r *Registry) EmitMaintenanceCompleted(ctx context.Context, outcome interface{}) {
	r.mu.RLock()
	plugins := r.onMaintenanceCompleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnMaintenanceCompleted(ctx, outcome)
		}); err != nil {
			r.logger.Warn("plugin OnMaintenanceCompleted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}
