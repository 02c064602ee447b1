package maintenance_test

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/orderflow/maintenance"
)

func TestRunAllStepsSucceed(t *testing.T) {
	var ran []string
	step := func(name string) maintenance.Step {
		return maintenance.Step{
			Name: name,
			Run: func(_ context.Context) error {
				ran = append(ran, name)
				return nil
			},
		}
	}

	r := maintenance.NewRunner([]maintenance.Step{
		step("backup"), step("cleanup"), step("stats"),
	})
	out := r.Run(context.Background())

	if !out.OK() {
		t.Error("outcome should be OK")
	}
	if out.FailedStep() != "" {
		t.Errorf("FailedStep: got %q, want empty", out.FailedStep())
	}
	if len(out.Steps) != 3 {
		t.Errorf("Steps: got %d, want 3", len(out.Steps))
	}
	if len(out.Skipped) != 0 {
		t.Errorf("Skipped: got %v, want none", out.Skipped)
	}
	if len(ran) != 3 || ran[0] != "backup" || ran[1] != "cleanup" || ran[2] != "stats" {
		t.Errorf("run order: got %v", ran)
	}
	if out.FinishedAt.Before(out.StartedAt) {
		t.Error("FinishedAt before StartedAt")
	}
}

func TestRunFirstFailureAbortsRest(t *testing.T) {
	var ran []string
	ok := func(name string) maintenance.Step {
		return maintenance.Step{
			Name: name,
			Run: func(_ context.Context) error {
				ran = append(ran, name)
				return nil
			},
		}
	}
	boom := errors.New("server not healthy")

	r := maintenance.NewRunner([]maintenance.Step{
		ok("backup_data"),
		ok("cleanup_old_records"),
		ok("update_statistics"),
		{Name: "check_server_status", Run: func(_ context.Context) error { return boom }},
		ok("send_health_report"),
	})
	out := r.Run(context.Background())

	if out.OK() {
		t.Error("outcome should not be OK")
	}
	if got := out.FailedStep(); got != "check_server_status" {
		t.Errorf("FailedStep: got %q", got)
	}

	// The three steps before the failure ran; the one after did not.
	if len(ran) != 3 {
		t.Errorf("steps run before failure: got %v", ran)
	}
	if len(out.Steps) != 4 {
		t.Errorf("Steps: got %d, want 4", len(out.Steps))
	}
	if len(out.Skipped) != 1 || out.Skipped[0] != "send_health_report" {
		t.Errorf("Skipped: got %v", out.Skipped)
	}

	failed := out.Steps[3]
	if failed.OK() {
		t.Error("failing step result should not be OK")
	}
	if !errors.Is(failed.Err, maintenance.ErrStepFailed) {
		t.Errorf("step error should wrap ErrStepFailed: %v", failed.Err)
	}
	if !errors.Is(failed.Err, boom) {
		t.Errorf("step error should wrap the cause: %v", failed.Err)
	}
}

func TestRunEmptySequence(t *testing.T) {
	r := maintenance.NewRunner(nil)
	out := r.Run(context.Background())

	if !out.OK() {
		t.Error("empty run should be OK")
	}
	if len(out.Steps) != 0 || len(out.Skipped) != 0 {
		t.Errorf("empty run recorded steps: %+v", out)
	}
}
