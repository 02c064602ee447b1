// Package audithook bridges Orderflow lifecycle events to an audit trail
// backend.
//
// It defines a local Recorder interface so the package does not depend on a
// concrete audit implementation. Callers inject a RecorderFunc adapter that
// bridges to their audit system at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xraph/orderflow/plugin"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin                 = (*Extension)(nil)
	_ plugin.OnOrderProcessed       = (*Extension)(nil)
	_ plugin.OnOrderFailed          = (*Extension)(nil)
	_ plugin.OnBatchCompleted       = (*Extension)(nil)
	_ plugin.OnReportGenerated      = (*Extension)(nil)
	_ plugin.OnSyncCompleted        = (*Extension)(nil)
	_ plugin.OnMaintenanceCompleted = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// It is defined locally so that the audit_hook package does not import a
// concrete audit module. Callers inject the concrete recorder at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Orderflow lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Order pipeline hooks
// ──────────────────────────────────────────────────

// OnOrderProcessed implements plugin.OnOrderProcessed.
func (e *Extension) OnOrderProcessed(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionOrderProcessed, SeverityInfo, OutcomeSuccess,
		ResourceOrder, "", CategoryPipeline, nil,
		"event", "order_processed",
	)
}

// OnOrderFailed implements plugin.OnOrderFailed.
func (e *Extension) OnOrderFailed(ctx context.Context, _ interface{}, err error) error {
	return e.record(ctx, ActionOrderFailed, SeverityError, OutcomeFailure,
		ResourceOrder, "", CategoryPipeline, err,
		"event", "order_failed",
	)
}

// OnBatchCompleted implements plugin.OnBatchCompleted.
func (e *Extension) OnBatchCompleted(ctx context.Context, processed, failed int, elapsed time.Duration) error {
	outcome := OutcomeSuccess
	severity := SeverityInfo
	if failed > 0 {
		outcome = OutcomePartial
		severity = SeverityWarning
	}
	return e.record(ctx, ActionBatchCompleted, severity, outcome,
		ResourceBatch, "", CategoryPipeline, nil,
		"processed", processed,
		"failed", failed,
		"elapsed_ms", elapsed.Milliseconds(),
	)
}

// ──────────────────────────────────────────────────
// Reporting and sync hooks
// ──────────────────────────────────────────────────

// OnReportGenerated implements plugin.OnReportGenerated.
func (e *Extension) OnReportGenerated(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionReportGenerated, SeverityInfo, OutcomeSuccess,
		ResourceReport, "", CategoryReporting, nil,
		"event", "report_generated",
	)
}

// OnSyncCompleted implements plugin.OnSyncCompleted.
func (e *Extension) OnSyncCompleted(ctx context.Context, pulled, pushed int) error {
	return e.record(ctx, ActionSyncCompleted, SeverityInfo, OutcomeSuccess,
		ResourceSync, "", CategoryIntegration, nil,
		"pulled", pulled,
		"pushed", pushed,
	)
}

// ──────────────────────────────────────────────────
// Maintenance hooks
// ──────────────────────────────────────────────────

// OnMaintenanceCompleted implements plugin.OnMaintenanceCompleted.
func (e *Extension) OnMaintenanceCompleted(ctx context.Context, outcome interface{}) error {
	result := OutcomeSuccess
	severity := SeverityInfo

	type failer interface {
		OK() bool
		FailedStep() string
	}
	var failedStep string
	if o, ok := outcome.(failer); ok && !o.OK() {
		result = OutcomeFailure
		severity = SeverityError
		failedStep = o.FailedStep()
	}

	return e.record(ctx, ActionMaintenanceCompleted, severity, result,
		ResourceMaintenance, "", CategoryOperations, nil,
		"event", "maintenance_completed",
		"failed_step", failedStep,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
