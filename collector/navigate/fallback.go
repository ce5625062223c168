package navigate

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robzale/sentcollect/collector/definitions"
	"github.com/robzale/sentcollect/collector/screen"
	"github.com/robzale/sentcollect/constants"
)

// Fallback replays the low-level input sequence that reaches the target
// in-app section when the declarative flow errors or times out. Positions
// are absolute and tuned to one app layout; they live in the coordinate
// table, not here.
type Fallback struct {
	Device     Operator
	Classifier *screen.Classifier
	Grabber    *screen.Grabber
	AppPackage string
	Settle     time.Duration

	// WaitLogin suspends the sequence while a human enters credentials.
	// Its error is the only fatal outcome of the fallback path.
	WaitLogin func(ctx context.Context) error
}

func (f *Fallback) settle() {
	if f.Settle > 0 {
		time.Sleep(f.Settle)
	}
}

func (f *Fallback) tap(ctx context.Context, name string) {
	p, ok := constants.Tap(name)
	if !ok {
		log.Error().Str("point", name).Msg("[Fallback] coordinate table has no such tap point")
		return
	}
	if err := f.Device.Tap(ctx, p.X, p.Y); err != nil {
		log.Warn().Err(err).Str("point", name).Msg("[Fallback] tap failed, continuing")
	}
	f.settle()
}

// Run executes the fallback sequence in fixed order, re-classifying the
// screen wherever a branch depends on it.
func (f *Fallback) Run(ctx context.Context) error {
	// Start from the launcher so a half-open activity does not swallow the
	// launch intent.
	if err := f.Device.SendKey(ctx, constants.KeycodeHome); err != nil {
		log.Warn().Err(err).Msg("[Fallback] home key failed, continuing")
	}

	log.Info().Str("package", f.AppPackage).Msg("[Fallback] launching app")
	if err := f.Device.LaunchApp(ctx, f.AppPackage); err != nil {
		log.Warn().Err(err).Msg("[Fallback] launch failed, continuing")
	}
	f.settle()

	snap := f.Grabber.Grab(ctx)
	if f.Classifier.Classify(snap) == definitions.StateWelcome {
		log.Info().Msg("[Fallback] welcome screen, tapping log in")
		f.tap(ctx, "welcome_login")
		snap = f.Grabber.Grab(ctx)
	}

	if f.Classifier.HasCookieConsent(snap) {
		log.Info().Msg("[Fallback] dismissing cookie consent")
		f.tap(ctx, "cookie_accept")
		snap = f.Grabber.Grab(ctx)
	}

	switch state := f.Classifier.Classify(snap); state {
	case definitions.StateLoggedIn:
		log.Info().Msg("[Fallback] already logged in")
	case definitions.StateCredentials:
		log.Info().Msg("[Fallback] credentials screen, waiting for manual login")
		if err := f.WaitLogin(ctx); err != nil {
			return err
		}
	default:
		// Best effort: proceed blindly and leave a trail for postmortem.
		log.Warn().Str("state", string(state)).Int("snapshot_len", len(snap.Content)).
			Msg("[Fallback] ambiguous login state, proceeding anyway")
	}

	snap = f.Grabber.Grab(ctx)
	if f.Classifier.HasRatingPopup(snap) {
		log.Info().Msg("[Fallback] dismissing rating popup")
		f.tap(ctx, "rating_dismiss")
	}

	runner := &Runner{Settle: f.Settle}
	if err := runner.RunSequence(ctx, f.sectionSteps()); err != nil {
		return err
	}
	return runner.RunSequence(ctx, f.scrollToTopSteps())
}

// sectionSteps opens the target in-app section:
// menu -> feature tile -> subsection tile -> "All" tab.
func (f *Fallback) sectionSteps() []Step {
	var steps []Step
	for _, name := range []string{"menu", "feature_tile", "subsection_tile", "all_tab"} {
		p, ok := constants.Tap(name)
		if !ok {
			log.Error().Str("point", name).Msg("[Fallback] coordinate table has no such tap point")
			continue
		}
		steps = append(steps, TapStep(f.Device, "open "+name, p.X, p.Y))
	}
	return steps
}

func (f *Fallback) scrollToTopSteps() []Step {
	sv, ok := constants.Swipe("scroll_to_top")
	if !ok {
		log.Error().Msg("[Fallback] coordinate table has no scroll_to_top swipe")
		return nil
	}
	coords, err := constants.GetCoordinates()
	if err != nil {
		return nil
	}

	var steps []Step
	for i := 0; i < coords.ScrollToTopRepeats; i++ {
		steps = append(steps, SwipeStep(f.Device, "scroll to top", sv.X1, sv.Y1, sv.X2, sv.Y2, sv.DurationMs))
	}
	return steps
}
