// Package report renders revenue summaries over a date window and fans
// them out to a file sink, a display surface, and email.
//
// The side-effect interfaces are declared locally so the package depends
// only on the revenue ledger. The engine injects adapters at wiring
// time, the same way the audit hook receives its Recorder.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xraph/orderflow/id"
	"github.com/xraph/orderflow/revenue"
	"github.com/xraph/orderflow/types"
)

// Sink receives the rendered report text. A Sink failure is logged and
// swallowed; a report that cannot be filed is still a report.
type Sink interface {
	WriteReport(ctx context.Context, name string, data []byte) error
}

// SinkFunc adapts a plain function to a Sink.
type SinkFunc func(ctx context.Context, name string, data []byte) error

// WriteReport implements Sink.
func (f SinkFunc) WriteReport(ctx context.Context, name string, data []byte) error {
	return f(ctx, name, data)
}

// Display shows the report on whatever surface the host exposes.
// Fire-and-forget: no result is observed.
type Display interface {
	Show(text string)
}

// DisplayFunc adapts a plain function to a Display.
type DisplayFunc func(text string)

// Show implements Display.
func (f DisplayFunc) Show(text string) { f(text) }

// Mailer delivers the report by email. Unlike Sink failures, a Mailer
// failure propagates to the caller's error envelope.
type Mailer interface {
	SendEmail(ctx context.Context, recipient, subject, body string) error
}

// MailerFunc adapts a plain function to a Mailer.
type MailerFunc func(ctx context.Context, recipient, subject, body string) error

// SendEmail implements Mailer.
func (f MailerFunc) SendEmail(ctx context.Context, recipient, subject, body string) error {
	return f(ctx, recipient, subject, body)
}

// Report is a rendered revenue summary for one window.
type Report struct {
	ID          id.ReportID `json:"id"`
	Title       string      `json:"title"`
	PeriodStart time.Time   `json:"period_start"`
	PeriodEnd   time.Time   `json:"period_end"`
	Orders      int         `json:"orders"`
	Revenue     types.Money `json:"revenue"`
}

// Text renders the fixed-format human-readable summary. The layout is
// not machine-parsed; only the revenue figure is load-bearing.
func (r *Report) Text() string {
	return fmt.Sprintf("%s\nPeriod: %s to %s\nOrders recorded: %d\nRevenue: %s\n",
		r.Title,
		r.PeriodStart.Format("2006-01-02"),
		r.PeriodEnd.Format("2006-01-02"),
		r.Orders,
		r.Revenue,
	)
}

// Generator computes revenue summaries from the ledger and triggers the
// report side effects in sequence: sink write, display, email.
type Generator struct {
	ledger    *revenue.Ledger
	logger    *slog.Logger
	sink      Sink
	display   Display
	mailer    Mailer
	recipient string
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// WithSink sets the report file sink.
func WithSink(s Sink) Option {
	return func(g *Generator) { g.sink = s }
}

// WithDisplay sets the display surface.
func WithDisplay(d Display) Option {
	return func(g *Generator) { g.display = d }
}

// WithMailer sets the email delivery and the recipient address.
func WithMailer(m Mailer, recipient string) Option {
	return func(g *Generator) {
		g.mailer = m
		g.recipient = recipient
	}
}

// New creates a Generator over the given ledger. Side effects without a
// configured collaborator are skipped.
func New(ledger *revenue.Ledger, opts ...Option) *Generator {
	g := &Generator{
		ledger: ledger,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Monthly computes the revenue summary for the month strictly preceding
// now and runs the report side effects. The sink write is best-effort;
// a display has no failure mode; a mail failure is returned.
func (g *Generator) Monthly(ctx context.Context, now time.Time) (*Report, error) {
	return g.generate(ctx, "Monthly Report", "monthly_report.txt", now.AddDate(0, -1, 0), now)
}

// Daily computes the summary for the trailing 24 hours. Used as the
// post-batch summary.
func (g *Generator) Daily(ctx context.Context, now time.Time) (*Report, error) {
	return g.generate(ctx, "Daily Summary", "daily_summary.txt", now.Add(-24*time.Hour), now)
}

func (g *Generator) generate(ctx context.Context, title, filename string, start, end time.Time) (*Report, error) {
	rpt := &Report{
		ID:          id.NewReportID(),
		Title:       title,
		PeriodStart: start,
		PeriodEnd:   end,
		Orders:      g.ledger.Count(),
		Revenue:     g.ledger.Between(start, end),
	}
	text := rpt.Text()

	if g.sink != nil {
		if err := g.sink.WriteReport(ctx, filename, []byte(text)); err != nil {
			g.logger.Error("report sink write failed",
				"report", rpt.ID.String(),
				"file", filename,
				"error", err,
			)
		}
	}

	if g.display != nil {
		g.display.Show(text)
	}

	if g.mailer != nil && g.recipient != "" {
		if err := g.mailer.SendEmail(ctx, g.recipient, title, text); err != nil {
			return rpt, fmt.Errorf("send %s: %w", title, err)
		}
	}

	g.logger.Info("report generated",
		"report", rpt.ID.String(),
		"title", title,
		"revenue", rpt.Revenue.String(),
	)
	return rpt, nil
}

// FileSink writes reports into a directory, one file per report name.
type FileSink struct {
	dir string
}

// NewFileSink creates a Sink writing under dir. The directory is created
// on first write.
func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

// WriteReport implements Sink.
func (s *FileSink) WriteReport(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("report: create dir %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}
