package navigate

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Operator is the slice of the device surface navigation needs.
type Operator interface {
	Tap(ctx context.Context, x, y int) error
	Swipe(ctx context.Context, x1, y1, x2, y2, durationMs int) error
	SendKey(ctx context.Context, code int) error
	LaunchApp(ctx context.Context, pkg string) error
}

// Step is a named, idempotent input action. Sequences are built from steps
// whose cumulative effect tolerates an occasional dropped event.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Runner executes step sequences with a settle delay after each step so the
// UI finishes rendering before the next observation.
type Runner struct {
	Settle time.Duration
}

// RunSequence executes steps in order. A step failure is logged and the
// sequence continues; only context cancellation aborts it.
func (r *Runner) RunSequence(ctx context.Context, steps []Step) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Debug().Int("step", i+1).Str("name", step.Name).Msg("[RunSequence] executing step")
		if err := step.Run(ctx); err != nil {
			log.Warn().Err(err).Int("step", i+1).Str("name", step.Name).
				Msg("[RunSequence] step failed, continuing")
		}
		if r.Settle > 0 {
			time.Sleep(r.Settle)
		}
	}
	return nil
}

// TapStep builds a step tapping a fixed point.
func TapStep(device Operator, name string, x, y int) Step {
	return Step{
		Name: name,
		Run: func(ctx context.Context) error {
			return device.Tap(ctx, x, y)
		},
	}
}

// SwipeStep builds a step replaying a fixed swipe vector.
func SwipeStep(device Operator, name string, x1, y1, x2, y2, durationMs int) Step {
	return Step{
		Name: name,
		Run: func(ctx context.Context) error {
			return device.Swipe(ctx, x1, y1, x2, y2, durationMs)
		},
	}
}
