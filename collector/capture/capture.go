package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robzale/sentcollect/collector/definitions"
	"github.com/robzale/sentcollect/constants"
)

// Device is the slice of the device surface the capture loop needs.
type Device interface {
	Screenshot(ctx context.Context, destPath string) error
	Swipe(ctx context.Context, x1, y1, x2, y2, durationMs int) error
}

// Loop produces the ordered capture set: one immediate screenshot followed by
// count scroll-then-capture cycles. Artifacts are handed to the OCR
// collaborator by naming convention in OutputDir; nothing else signals it.
type Loop struct {
	Device      Device
	OutputDir   string
	Settle      time.Duration
	MinCaptures int
}

func artifactName(index int) string {
	return fmt.Sprintf("screen_%02d.png", index)
}

// clearStale removes artifacts from a previous run so the consumer never
// mixes two runs in one directory.
func (l *Loop) clearStale() error {
	stale, err := filepath.Glob(filepath.Join(l.OutputDir, "screen_*.png"))
	if err != nil {
		return err
	}
	for _, path := range stale {
		if err := os.Remove(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("[Capture] failed to remove stale artifact")
		}
	}
	return nil
}

// Run captures count+1 screenshots. A single failed capture or swipe is
// logged and the loop continues; the run only fails when the total yield
// falls below MinCaptures, which catches scrolling that silently stopped
// working as well as hard capture faults.
func (l *Loop) Run(ctx context.Context, count int) (definitions.CaptureSet, error) {
	set := definitions.CaptureSet{Dir: l.OutputDir}

	if err := os.MkdirAll(l.OutputDir, 0o755); err != nil {
		return set, err
	}
	if err := l.clearStale(); err != nil {
		return set, err
	}

	scroll, ok := constants.Swipe("scroll_down")
	if !ok {
		return set, fmt.Errorf("coordinate table has no scroll_down swipe")
	}

	for index := 0; index <= count; index++ {
		if err := ctx.Err(); err != nil {
			return set, err
		}

		if index > 0 {
			if err := l.Device.Swipe(ctx, scroll.X1, scroll.Y1, scroll.X2, scroll.Y2, scroll.DurationMs); err != nil {
				log.Warn().Err(err).Int("index", index).Msg("[Capture] scroll failed, continuing")
			}
			if l.Settle > 0 {
				time.Sleep(l.Settle)
			}
		}

		dest := filepath.Join(l.OutputDir, artifactName(index))
		if err := l.Device.Screenshot(ctx, dest); err != nil {
			log.Warn().Err(err).Int("index", index).Msg("[Capture] screenshot failed, continuing")
			continue
		}
		set.Paths = append(set.Paths, dest)
		log.Debug().Int("index", index).Str("path", dest).Msg("[Capture] captured")
	}

	if set.Len() < l.MinCaptures {
		return set, fmt.Errorf("%w: got %d, need at least %d",
			definitions.ErrTooFewCaptures, set.Len(), l.MinCaptures)
	}

	log.Info().Int("captured", set.Len()).Str("dir", l.OutputDir).Msg("[Capture] capture set complete")
	return set, nil
}
