package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robzale/sentcollect/collector/definitions"
)

// ClassifyFunc re-observes the device and reports the current screen state.
type ClassifyFunc func(ctx context.Context) definitions.ScreenState

// Waiter suspends automated progress while a human enters credentials. The
// calling flow blocks until login is observed or the wall-clock ceiling is
// reached; there is no partial resume inside the waiter.
type Waiter struct {
	Classify     ClassifyFunc
	MaxWait      time.Duration
	PollInterval time.Duration
}

// WaitForLogin polls classification every PollInterval up to MaxWait of
// elapsed time and returns as soon as a logged-in screen is observed.
func (w *Waiter) WaitForLogin(ctx context.Context) error {
	deadline := time.Now().Add(w.MaxWait)
	attempt := 0

	log.Info().Dur("max_wait", w.MaxWait).Dur("poll_interval", w.PollInterval).
		Msg("[WaitForLogin] waiting for manual login")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.PollInterval):
		}

		attempt++
		if state := w.Classify(ctx); state == definitions.StateLoggedIn {
			log.Info().Int("attempt", attempt).Msg("[WaitForLogin] login detected")
			return nil
		}
		log.Debug().Int("attempt", attempt).Msg("[WaitForLogin] still waiting")

		if !time.Now().Before(deadline) {
			return fmt.Errorf("%w: waited %s", definitions.ErrManualLoginTimeout, w.MaxWait)
		}
	}
}
