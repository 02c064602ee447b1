package orderflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xraph/orderflow/order"
)

// External collaborator contracts. Implementations live with the host
// application; the engine ships no-op defaults so every collaborator is
// optional.

// Inventory applies the stock-level side effect of a priced order.
// A failure aborts that order's pipeline run.
type Inventory interface {
	Update(ctx context.Context, o *order.Order) error
}

// Notifier delivers outbound messages. A confirmation failure aborts the
// order's side-effect phase; admin email failures are best-effort and
// never alter control flow.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, o *order.Order) error
	SendEmail(ctx context.Context, recipient, subject, body string) error
}

// TransactionLog records processed-order events. It never fails
// observably; implementations swallow their own errors.
type TransactionLog interface {
	Log(message string)
}

// SyncClient talks to the remote peer used for batch-level customer sync
// and the maintenance health check.
type SyncClient interface {
	Fetch(ctx context.Context, path string) (string, error)
	Push(ctx context.Context, path, data string) error
}

// Display is the user-visible surface. Show is dispatched through the
// engine's display worker, fire-and-forget; ShowError is synchronous.
type Display interface {
	Show(text string)
	ShowError(text string)
}

// BackupSink receives serialized backup payloads during the maintenance
// run's backup step.
type BackupSink interface {
	WriteBackup(ctx context.Context, name string, data []byte) error
}

// ──────────────────────────────────────────────────
// Defaults and adapters
// ──────────────────────────────────────────────────

type nopInventory struct{}

func (nopInventory) Update(context.Context, *order.Order) error { return nil }

type nopNotifier struct{}

func (nopNotifier) SendOrderConfirmation(context.Context, *order.Order) error { return nil }
func (nopNotifier) SendEmail(context.Context, string, string, string) error   { return nil }

type nopDisplay struct{}

func (nopDisplay) Show(string)      {}
func (nopDisplay) ShowError(string) {}

// slogTransactionLog is the default TransactionLog, writing through the
// engine's structured logger.
type slogTransactionLog struct {
	logger *slog.Logger
}

func (l slogTransactionLog) Log(message string) {
	l.logger.Info("transaction", "message", message)
}

// FileBackupSink writes backup payloads into a directory, one file per
// backup name.
type FileBackupSink struct {
	dir string
}

// NewFileBackupSink creates a BackupSink writing under dir. The
// directory is created on first write.
func NewFileBackupSink(dir string) *FileBackupSink {
	return &FileBackupSink{dir: dir}
}

// WriteBackup implements BackupSink.
func (s *FileBackupSink) WriteBackup(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("backup: create dir %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("backup: write %s: %w", path, err)
	}
	return nil
}
