package navigate

import (
	"context"
	"errors"
	"testing"
)

func TestRunSequenceContinuesPastStepErrors(t *testing.T) {
	var executed []string

	steps := []Step{
		{Name: "first", Run: func(ctx context.Context) error {
			executed = append(executed, "first")
			return nil
		}},
		{Name: "second", Run: func(ctx context.Context) error {
			executed = append(executed, "second")
			return errors.New("input injection dropped")
		}},
		{Name: "third", Run: func(ctx context.Context) error {
			executed = append(executed, "third")
			return nil
		}},
	}

	runner := &Runner{}
	if err := runner.RunSequence(context.Background(), steps); err != nil {
		t.Fatalf("RunSequence returned error: %v", err)
	}
	if len(executed) != 3 {
		t.Errorf("expected all 3 steps to run, got %v", executed)
	}
}

func TestRunSequenceStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	steps := []Step{
		{Name: "never", Run: func(ctx context.Context) error {
			ran = true
			return nil
		}},
	}

	runner := &Runner{}
	if err := runner.RunSequence(ctx, steps); err == nil {
		t.Error("expected context error")
	}
	if ran {
		t.Error("step should not run after cancellation")
	}
}

func TestFlowOutcomeString(t *testing.T) {
	cases := map[FlowOutcome]string{
		FlowSucceeded: "succeeded",
		FlowFailed:    "failed",
		FlowTimedOut:  "timed_out",
	}
	for outcome, want := range cases {
		if got := outcome.String(); got != want {
			t.Errorf("FlowOutcome(%d).String() = %q, want %q", outcome, got, want)
		}
	}
}
