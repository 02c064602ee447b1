// Package maintenance runs the daily upkeep sequence with contained
// failure: the first failing step aborts the rest of the run, the
// failure is logged and captured in the outcome, and Run never returns
// an error to its caller.
package maintenance

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrStepFailed wraps the cause of a failed maintenance step.
var ErrStepFailed = errors.New("orderflow: maintenance step failed")

// Step is one named unit of the maintenance sequence.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// StepResult records the outcome of one executed step. Steps after the
// first failure never execute and produce no result.
type StepResult struct {
	Name    string        `json:"name"`
	Err     error         `json:"-"`
	Elapsed time.Duration `json:"elapsed"`
}

// OK reports whether the step succeeded.
func (r StepResult) OK() bool { return r.Err == nil }

// Outcome is the full record of one maintenance run.
type Outcome struct {
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Steps      []StepResult `json:"steps"`
	Skipped    []string     `json:"skipped,omitempty"`
}

// OK reports whether every executed step succeeded and nothing was
// skipped.
func (o *Outcome) OK() bool {
	for _, s := range o.Steps {
		if !s.OK() {
			return false
		}
	}
	return len(o.Skipped) == 0
}

// FailedStep returns the name of the step that aborted the run, or ""
// if the run completed cleanly.
func (o *Outcome) FailedStep() string {
	for _, s := range o.Steps {
		if !s.OK() {
			return s.Name
		}
	}
	return ""
}

// Runner executes a fixed sequence of steps in order.
type Runner struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner creates a Runner over the given steps.
func NewRunner(steps []Step, opts ...Option) *Runner {
	r := &Runner{
		steps:  steps,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the steps in order. The first failure stops the sequence:
// the failing step is recorded with its error, the remaining step names
// land in Skipped, and the error is logged, never re-raised. This is
// deliberately not the batch pipeline's partial-failure model; upkeep
// steps build on one another.
func (r *Runner) Run(ctx context.Context) *Outcome {
	out := &Outcome{StartedAt: time.Now().UTC()}

	for i, step := range r.steps {
		start := time.Now()
		err := step.Run(ctx)
		result := StepResult{
			Name:    step.Name,
			Elapsed: time.Since(start),
		}

		if err != nil {
			result.Err = errors.Join(ErrStepFailed, err)
			out.Steps = append(out.Steps, result)
			for _, rest := range r.steps[i+1:] {
				out.Skipped = append(out.Skipped, rest.Name)
			}
			r.logger.Error("maintenance step failed, aborting run",
				"step", step.Name,
				"skipped", len(out.Skipped),
				"error", err,
			)
			break
		}

		out.Steps = append(out.Steps, result)
		r.logger.Debug("maintenance step completed",
			"step", step.Name,
			"elapsed_ms", result.Elapsed.Milliseconds(),
		)
	}

	out.FinishedAt = time.Now().UTC()
	r.logger.Info("maintenance run finished",
		"steps_run", len(out.Steps),
		"steps_skipped", len(out.Skipped),
		"ok", out.OK(),
	)
	return out
}
