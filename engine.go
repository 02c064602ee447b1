package orderflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/xraph/orderflow/customer"
	"github.com/xraph/orderflow/id"
	"github.com/xraph/orderflow/maintenance"
	"github.com/xraph/orderflow/order"
	"github.com/xraph/orderflow/plugin"
	"github.com/xraph/orderflow/pricing"
	"github.com/xraph/orderflow/report"
	"github.com/xraph/orderflow/revenue"
	"github.com/xraph/orderflow/store"
	"github.com/xraph/orderflow/validate"
)

// DefaultAdminEmail receives batch summaries and health reports unless
// WithAdminEmail overrides it.
const DefaultAdminEmail = "admin@company.com"

// Engine is the order-processing pipeline.
type Engine struct {
	store   store.Store
	ledger  *revenue.Ledger
	pricer  *pricing.Engine
	reports *report.Generator
	plugins *plugin.Registry
	logger  *slog.Logger

	// Collaborators
	inventory  Inventory
	notifier   Notifier
	txlog      TransactionLog
	syncClient SyncClient
	display    Display
	backups    BackupSink
	reportSink report.Sink

	// Display worker
	displayBuffer chan string
	stopChan      chan struct{}
	wg            sync.WaitGroup

	// Configuration
	currency          string
	adminEmail        string
	retention         time.Duration
	displayBufferSize int
}

// New creates a new Engine instance over the given store.
func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:      s,
		pricer:     pricing.New(),
		plugins:    plugin.NewRegistry(),
		logger:     slog.Default(),
		inventory:  nopInventory{},
		notifier:   nopNotifier{},
		display:    nopDisplay{},
		stopChan:   make(chan struct{}),
		currency:   "usd",
		adminEmail: DefaultAdminEmail,
		retention:  90 * 24 * time.Hour,

		displayBufferSize: 256,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.displayBuffer = make(chan string, e.displayBufferSize)
	e.ledger = revenue.NewLedger(e.currency)
	if e.txlog == nil {
		e.txlog = slogTransactionLog{logger: e.logger}
	}
	e.reports = report.New(e.ledger,
		report.WithLogger(e.logger),
		report.WithSink(e.reportSink),
		report.WithDisplay(report.DisplayFunc(e.enqueueDisplay)),
		report.WithMailer(report.MailerFunc(e.notifier.SendEmail), e.adminEmail),
	)

	return e
}

// Option configures an Engine instance.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
		e.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Engine) {
		_ = e.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithPricing replaces the default pricing rules.
func WithPricing(p *pricing.Engine) Option {
	return func(e *Engine) { e.pricer = p }
}

// WithCurrency sets the ledger currency (default "usd").
func WithCurrency(currency string) Option {
	return func(e *Engine) { e.currency = currency }
}

// WithInventory sets the inventory collaborator.
func WithInventory(inv Inventory) Option {
	return func(e *Engine) { e.inventory = inv }
}

// WithNotifier sets the notification collaborator.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithTransactionLog sets the transaction log collaborator.
func WithTransactionLog(l TransactionLog) Option {
	return func(e *Engine) { e.txlog = l }
}

// WithSyncClient sets the remote sync collaborator. Without one, the
// batch sync and the maintenance health check are skipped.
func WithSyncClient(c SyncClient) Option {
	return func(e *Engine) { e.syncClient = c }
}

// WithDisplay sets the display surface.
func WithDisplay(d Display) Option {
	return func(e *Engine) { e.display = d }
}

// WithBackupSink sets the backup target used by the maintenance run.
func WithBackupSink(s BackupSink) Option {
	return func(e *Engine) { e.backups = s }
}

// WithReportSink sets the file sink the report generator writes to.
func WithReportSink(s report.Sink) Option {
	return func(e *Engine) { e.reportSink = s }
}

// WithAdminEmail sets the recipient for batch summaries and reports.
func WithAdminEmail(addr string) Option {
	return func(e *Engine) { e.adminEmail = addr }
}

// WithRetention sets how long processed orders are kept before the
// maintenance cleanup step purges them (default 90 days).
func WithRetention(d time.Duration) Option {
	return func(e *Engine) { e.retention = d }
}

// WithDisplayBuffer sets the capacity of the fire-and-forget display
// queue (default 256).
func WithDisplayBuffer(size int) Option {
	return func(e *Engine) { e.displayBufferSize = size }
}

// Start migrates the store and begins the display worker.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.store.Migrate(ctx); err != nil {
		return fmt.Errorf("%w: migrate: %w", ErrStorage, err)
	}

	e.plugins.EmitInit(ctx, e)

	e.wg.Add(1)
	go e.displayWorker()

	e.logger.Info("orderflow started",
		"currency", e.currency,
		"retention", e.retention,
	)

	return nil
}

// Stop shuts down the Engine.
func (e *Engine) Stop() error {
	close(e.stopChan)
	e.wg.Wait()

	ctx := context.Background()
	e.plugins.EmitShutdown(ctx)

	return e.store.Close()
}

// Ledger returns the revenue ledger.
func (e *Engine) Ledger() *revenue.Ledger { return e.ledger }

// Reports returns the report generator.
func (e *Engine) Reports() *report.Generator { return e.reports }

// ──────────────────────────────────────────────────
// Order Pipeline
// ──────────────────────────────────────────────────

// ProcessOrder runs one order through the pipeline:
// validate → price → side effects → record. A failure at any stage
// aborts this order only; the returned *ProcessError names the order and
// the stage it failed to enter. Orders that fail never reach the revenue
// ledger.
func (e *Engine) ProcessOrder(ctx context.Context, o *order.Order) error {
	if o == nil {
		return ErrInvalidInput
	}

	if err := e.checkOrder(o); err != nil {
		return e.failOrder(ctx, o, order.StatusValidated, fmt.Errorf("%w: %w", ErrInvalidOrder, err))
	}
	o.Status = order.StatusValidated

	*o = e.pricer.Price(*o, o.Customer.Tier)

	if err := e.inventory.Update(ctx, o); err != nil {
		return e.failOrder(ctx, o, order.StatusSideEffectsApplied,
			fmt.Errorf("%w: update inventory: %w", ErrSideEffect, err))
	}
	if err := e.notifier.SendOrderConfirmation(ctx, o); err != nil {
		return e.failOrder(ctx, o, order.StatusSideEffectsApplied,
			fmt.Errorf("%w: send confirmation: %w", ErrSideEffect, err))
	}
	o.Status = order.StatusSideEffectsApplied

	if err := e.ledger.Record(o); err != nil {
		return e.failOrder(ctx, o, order.StatusRecorded, err)
	}
	o.Status = order.StatusRecorded

	// Everything past recording is best-effort: the order stands.
	e.txlog.Log("Order processed: " + o.ID.String())
	if err := e.store.SaveOrder(ctx, o); err != nil {
		e.logger.Warn("failed to persist recorded order",
			"order", o.ID.String(),
			"error", err,
		)
	}
	e.enqueueDisplay("Processed order: " + o.ID.String())

	e.plugins.EmitOrderProcessed(ctx, o)
	return nil
}

// checkOrder is the admission gate: the validate predicates plus the
// engine's currency rule. The ledger accumulates a single currency, so
// a mismatched total is an invalid order, rejected before any side
// effect fires.
func (e *Engine) checkOrder(o *order.Order) error {
	switch {
	case !validate.Customer(o.Customer):
		return ValidationError{Field: "customer", Message: "missing or malformed customer"}
	case len(o.Items) == 0:
		return ValidationError{Field: "items", Message: "order has no line items"}
	case !o.Total.IsPositive():
		return ValidationError{Field: "total", Message: "total must be positive"}
	case o.Total.Currency != e.currency:
		return ValidationError{
			Field:   "total",
			Message: fmt.Sprintf("currency %q does not match ledger currency %q", o.Total.Currency, e.currency),
		}
	}
	return nil
}

func (e *Engine) failOrder(ctx context.Context, o *order.Order, stage order.Status, cause error) error {
	err := &ProcessError{OrderID: o.ID, Stage: stage, Err: cause}
	e.logger.Warn("order failed",
		"order", o.ID.String(),
		"stage", string(stage),
		"error", cause,
	)
	e.plugins.EmitOrderFailed(ctx, o, err)
	return err
}

// Result is the per-order outcome within a batch.
type Result struct {
	OrderID id.OrderID
	Status  order.Status
	Err     error
}

// BatchResult collects the outcomes of one ProcessBatch invocation.
type BatchResult struct {
	ID        id.BatchID
	Results   []Result
	Processed int
	Failed    int
}

// ProcessBatch processes orders sequentially, in input order, with
// partial-failure semantics: one order's failure never aborts the batch.
// After the per-order loop it generates the daily summary, syncs
// customers with the remote peer, and emails the admin a count. A
// failure in reporting or sync is a batch-level error (displayed,
// logged, and returned as an aggregate) but recorded orders are never
// undone.
func (e *Engine) ProcessBatch(ctx context.Context, orders []*order.Order) (*BatchResult, error) {
	start := time.Now()
	res := &BatchResult{ID: id.NewBatchID()}

	for _, o := range orders {
		if err := e.ProcessOrder(ctx, o); err != nil {
			res.Failed++
			r := Result{OrderID: orderID(o), Err: err}
			if o != nil {
				r.Status = o.Status // the status the order actually reached
			}
			res.Results = append(res.Results, r)
			continue
		}
		res.Processed++
		res.Results = append(res.Results, Result{OrderID: o.ID, Status: o.Status})
	}

	e.plugins.EmitBatchCompleted(ctx, res.Processed, res.Failed, time.Since(start))

	var batchErrs []error

	if rpt, err := e.reports.Daily(ctx, time.Now()); err != nil {
		batchErrs = append(batchErrs, err)
	} else {
		e.plugins.EmitReportGenerated(ctx, rpt)
	}

	if e.syncClient != nil {
		if err := e.syncRemote(ctx); err != nil {
			batchErrs = append(batchErrs, err)
		}
	}

	summary := fmt.Sprintf("Processed %d orders", res.Processed)
	if err := e.notifier.SendEmail(ctx, e.adminEmail, "Orders Processed", summary); err != nil {
		e.logger.Warn("admin summary email failed", "error", err)
	}

	if len(batchErrs) > 0 {
		err := &MultiError{Errors: batchErrs}
		e.display.ShowError("Error processing orders: " + err.Error())
		e.logger.Error("batch post-processing failed",
			"batch", res.ID.String(),
			"errors", len(batchErrs),
			"error", err,
		)
		return res, err
	}

	e.logger.Info("batch completed",
		"batch", res.ID.String(),
		"processed", res.Processed,
		"failed", res.Failed,
	)
	return res, nil
}

// ProcessPending loads the store's pending orders and processes them as
// one batch. A load failure is fatal to the batch.
func (e *Engine) ProcessPending(ctx context.Context) (*BatchResult, error) {
	pending, err := e.store.ListPendingOrders(ctx)
	if err != nil {
		err = fmt.Errorf("%w: load pending orders: %w", ErrStorage, err)
		e.display.ShowError("Error processing orders: " + err.Error())
		e.logger.Error("failed to load pending orders", "error", err)
		return nil, err
	}
	return e.ProcessBatch(ctx, pending)
}

func orderID(o *order.Order) id.OrderID {
	if o == nil {
		return id.Nil
	}
	return o.ID
}

// ──────────────────────────────────────────────────
// Remote Sync
// ──────────────────────────────────────────────────

// syncRemote pulls the remote customer list into the store and pushes
// the local list back.
func (e *Engine) syncRemote(ctx context.Context) error {
	raw, err := e.syncClient.Fetch(ctx, "/customers")
	if err != nil {
		return fmt.Errorf("%w: fetch customers: %w", ErrSync, err)
	}

	var remote []*customer.Customer
	if err := json.Unmarshal([]byte(raw), &remote); err != nil {
		return fmt.Errorf("%w: decode remote customers: %w", ErrSync, err)
	}
	for _, c := range remote {
		if err := e.store.SaveCustomer(ctx, c); err != nil {
			return fmt.Errorf("%w: merge customer %s: %w", ErrSync, c.ID, err)
		}
	}

	local, err := e.store.ListCustomers(ctx, customer.ListOpts{})
	if err != nil {
		return fmt.Errorf("%w: list local customers: %w", ErrSync, err)
	}
	data, err := json.Marshal(local)
	if err != nil {
		return fmt.Errorf("%w: encode local customers: %w", ErrSync, err)
	}
	if err := e.syncClient.Push(ctx, "/customers/sync", string(data)); err != nil {
		return fmt.Errorf("%w: push customers: %w", ErrSync, err)
	}

	e.plugins.EmitSyncCompleted(ctx, len(remote), len(local))
	e.logger.Debug("customer sync completed",
		"pulled", len(remote),
		"pushed", len(local),
	)
	return nil
}

// ──────────────────────────────────────────────────
// Reporting
// ──────────────────────────────────────────────────

// MonthlyReport generates the revenue summary for the month preceding
// now, with the report side effects (sink write, display, email).
func (e *Engine) MonthlyReport(ctx context.Context, now time.Time) (*report.Report, error) {
	rpt, err := e.reports.Monthly(ctx, now)
	if rpt != nil {
		e.plugins.EmitReportGenerated(ctx, rpt)
	}
	return rpt, err
}

// ──────────────────────────────────────────────────
// Daily Maintenance
// ──────────────────────────────────────────────────

// RunDailyMaintenance executes the upkeep sequence: backup, cleanup,
// statistics, server health check, health report. The first failing step
// aborts the rest; failures are logged and captured in the outcome,
// never raised. The run always returns.
func (e *Engine) RunDailyMaintenance(ctx context.Context) *maintenance.Outcome {
	runner := maintenance.NewRunner([]maintenance.Step{
		{Name: "backup_data", Run: e.backupData},
		{Name: "cleanup_old_records", Run: e.cleanupOldRecords},
		{Name: "update_statistics", Run: e.updateStatistics},
		{Name: "check_server_status", Run: e.checkServerStatus},
		{Name: "send_health_report", Run: e.sendHealthReport},
	}, maintenance.WithLogger(e.logger))

	out := runner.Run(ctx)
	e.plugins.EmitMaintenanceCompleted(ctx, out)
	return out
}

func (e *Engine) backupData(ctx context.Context) error {
	if e.backups == nil {
		e.logger.Debug("no backup sink configured, skipping backup")
		return nil
	}

	customers, err := e.store.ListCustomers(ctx, customer.ListOpts{})
	if err != nil {
		return fmt.Errorf("list customers: %w", err)
	}
	data, err := json.Marshal(customers)
	if err != nil {
		return fmt.Errorf("encode customers: %w", err)
	}
	if err := e.backups.WriteBackup(ctx, "customers_backup.json", data); err != nil {
		return err
	}

	data, err = json.Marshal(e.ledger.Orders())
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	return e.backups.WriteBackup(ctx, "orders_backup.json", data)
}

func (e *Engine) cleanupOldRecords(ctx context.Context) error {
	cutoff := time.Now().Add(-e.retention)
	purged, err := e.store.PurgeOrders(ctx, cutoff)
	if err != nil {
		return err
	}
	e.logger.Info("purged old orders",
		"purged", purged,
		"before", cutoff,
	)
	return nil
}

func (e *Engine) updateStatistics(ctx context.Context) error {
	stats := e.ledger.Stats()
	e.plugins.EmitStatsUpdated(ctx, stats)
	e.logger.Info("statistics updated",
		"orders", stats.Orders,
		"revenue", stats.Revenue.String(),
	)
	return nil
}

func (e *Engine) checkServerStatus(ctx context.Context) error {
	if e.syncClient == nil {
		e.logger.Debug("no sync client configured, skipping health check")
		return nil
	}
	resp, err := e.syncClient.Fetch(ctx, "/health")
	if err != nil {
		return fmt.Errorf("health endpoint: %w", err)
	}
	if !strings.Contains(resp, "OK") {
		return fmt.Errorf("server unhealthy: %q", resp)
	}
	return nil
}

func (e *Engine) sendHealthReport(ctx context.Context) error {
	stats := e.ledger.Stats()
	body := fmt.Sprintf("Orders recorded: %d\nRunning revenue: %s\n", stats.Orders, stats.Revenue)
	return e.notifier.SendEmail(ctx, e.adminEmail, "Daily Health Report", body)
}

// ──────────────────────────────────────────────────
// Display worker
// ──────────────────────────────────────────────────

// enqueueDisplay hands a message to the display worker without blocking.
// The display is fire-and-forget; when the buffer is full the message is
// dropped.
func (e *Engine) enqueueDisplay(text string) {
	select {
	case e.displayBuffer <- text:
	default:
		e.logger.Debug("display buffer full, dropping message")
	}
}

func (e *Engine) displayWorker() {
	defer e.wg.Done()

	for {
		select {
		case <-e.stopChan:
			// Final drain
			for {
				select {
				case text := <-e.displayBuffer:
					e.display.Show(text)
				default:
					return
				}
			}
		case text := <-e.displayBuffer:
			e.display.Show(text)
		}
	}
}
