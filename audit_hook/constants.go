package audithook

// Action constants for audit events.
const (
	// Order actions
	ActionOrderProcessed = "order.processed"
	ActionOrderFailed    = "order.failed"

	// Batch actions
	ActionBatchCompleted = "batch.completed"

	// Report actions
	ActionReportGenerated = "report.generated"

	// Sync actions
	ActionSyncCompleted = "sync.completed"

	// Maintenance actions
	ActionMaintenanceCompleted = "maintenance.completed"
	ActionStatsUpdated         = "stats.updated"
)

// Resource constants for audit events.
const (
	ResourceOrder       = "order"
	ResourceBatch       = "batch"
	ResourceReport      = "report"
	ResourceSync        = "sync"
	ResourceMaintenance = "maintenance"
	ResourceStats       = "stats"
)

// Category constants for audit events.
const (
	CategoryPipeline    = "pipeline"
	CategoryReporting   = "reporting"
	CategoryIntegration = "integration"
	CategoryOperations  = "operations"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
