// Package orderflow provides a composable order-processing pipeline for Go applications.
//
// Orderflow is designed as a library, not a service. Import it directly into
// your Go application and wire in the collaborators your deployment needs. It
// provides:
//
//   - A validate → price → side-effects → record pipeline with per-order
//     failure isolation
//   - Pure, deterministic pricing rules (tier discount, tax)
//   - An in-memory revenue ledger with duplicate rejection and date-range queries
//   - Batch processing with partial-failure semantics, post-batch reporting,
//     remote sync, and admin notification
//   - A daily maintenance run (backup, cleanup, statistics, health check,
//     health report) with contained failure
//   - Pluggable persistence (memory, SQLite, PostgreSQL, MongoDB)
//   - Lifecycle plugins for metrics and audit trails
//
// # Quick Start
//
// Create an engine with your preferred store:
//
//	import (
//	    "github.com/xraph/orderflow"
//	    "github.com/xraph/orderflow/store/memory"
//	)
//
//	// Initialize store
//	store := memory.New()
//
//	// Create engine
//	e := orderflow.New(store)
//
//	// Start the engine (migrates the store, begins the display worker)
//	if err := e.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer e.Stop()
//
// # Core Concepts
//
// Orders move through a fixed state machine:
//
//	received → validated → priced → side_effects_applied → recorded
//
// A failure at any stage aborts that order only. Batch processing never
// stops for a single bad order:
//
//	res, err := e.ProcessBatch(ctx, orders)
//	// res.Processed, res.Failed, per-order res.Results
//
// Pricing is pure and deterministic: premium customers get a 10% discount,
// then 8% tax applies to the (possibly discounted) total. All monetary
// calculations use integer arithmetic to avoid floating-point precision
// issues. The Money type represents amounts in the smallest currency unit
// (cents for USD, pence for GBP, etc).
//
// Recorded orders land in the revenue ledger, which rejects duplicate
// identifiers to keep the running total consistent:
//
//	total := e.Ledger().Total()
//	lastMonth := e.Ledger().Between(start, end) // exclusive bounds
//
// The daily maintenance run is independent of order processing and never
// raises; it reports success or the point of failure:
//
//	outcome := e.RunDailyMaintenance(ctx)
//	if !outcome.OK() {
//	    log.Printf("maintenance aborted at %s", outcome.FailedStep())
//	}
//
// # Integration
//
// Orderflow integrates with the Forgery ecosystem:
//
//   - Forge: extension adapter with YAML config binding and DI registration
//   - Grove: SQL and document store backends
//
// See the extension package for Forge wiring, and the observability and
// audithook packages for metrics and audit-trail plugins.
package orderflow
