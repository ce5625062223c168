package collector

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robzale/sentcollect/collector/capture"
	"github.com/robzale/sentcollect/collector/definitions"
	"github.com/robzale/sentcollect/collector/navigate"
	"github.com/robzale/sentcollect/collector/screen"
)

type flowDriver interface {
	Run(ctx context.Context) navigate.FlowOutcome
}

// Session sequences one collection run: device readiness, primary-then-
// fallback navigation, the capture loop, and guaranteed teardown. It is the
// sole owner of the device for the run's duration; the flow is strictly
// sequential, one device, no parallel branches.
type Session struct {
	Device Device
	Flow   flowDriver

	cfg   definitions.Config
	state definitions.SessionState
}

func NewSession(cfg definitions.Config, device Device) *Session {
	return &Session{
		Device: device,
		Flow: &navigate.FlowRunner{
			DeviceID:   cfg.DeviceID,
			AppPackage: cfg.AppPackage,
			FlowFile:   cfg.FlowFile,
			Timeout:    cfg.FlowTimeout,
		},
		cfg:   cfg,
		state: definitions.SessionInit,
	}
}

func (s *Session) transition(next definitions.SessionState) {
	log.Info().Str("from", string(s.state)).Str("to", string(next)).Msg("[Session] state transition")
	s.state = next
}

func (s *Session) fail(runID string, err error) definitions.RunResult {
	s.transition(definitions.SessionFailed)
	log.Error().Err(err).Str("run_id", runID).Msg("[Session] run failed")
	return definitions.RunResult{
		RunID:  runID,
		State:  definitions.SessionFailed,
		Err:    err,
		Reason: err.Error(),
	}
}

// Run executes the whole session. Teardown runs on every exit path,
// success or failure.
func (s *Session) Run(ctx context.Context) definitions.RunResult {
	runID := uuid.New().String()
	log.Info().Str("run_id", runID).Str("package", s.cfg.AppPackage).Msg("[Session] starting run")

	defer s.Device.Teardown(context.WithoutCancel(ctx))

	if err := s.Device.EnsureReady(ctx, s.cfg.BootTimeout); err != nil {
		return s.fail(runID, err)
	}
	s.transition(definitions.SessionDeviceReady)

	installed, err := s.Device.IsAppInstalled(ctx, s.cfg.AppPackage)
	if err != nil {
		// A flaky package query is transient; the launch step will surface
		// a genuinely missing app soon enough.
		log.Warn().Err(err).Msg("[Session] package query failed, proceeding")
	} else if !installed {
		return s.fail(runID, fmt.Errorf("%w: %s", definitions.ErrAppNotInstalled, s.cfg.AppPackage))
	}

	classifier, err := screen.NewClassifier(s.cfg.StrictScreen)
	if err != nil {
		return s.fail(runID, err)
	}
	grabber := screen.NewGrabber(s.Device)

	s.transition(definitions.SessionNavigating)
	if outcome := s.Flow.Run(ctx); outcome != navigate.FlowSucceeded {
		log.Warn().Str("outcome", outcome.String()).Msg("[Session] primary navigation failed, using fallback")

		// The transport degrades under this emulator/compositor combination;
		// reset it before replaying input events.
		if err := s.Device.RecoverTransport(ctx); err != nil {
			log.Warn().Err(err).Msg("[Session] transport recovery failed, proceeding")
		}

		fallback := &navigate.Fallback{
			Device:     s.Device,
			Classifier: classifier,
			Grabber:    grabber,
			AppPackage: s.cfg.AppPackage,
			Settle:     s.cfg.SettleDelay,
			WaitLogin:  s.waitLogin(classifier, grabber),
		}
		if err := fallback.Run(ctx); err != nil {
			return s.fail(runID, err)
		}
	}

	s.transition(definitions.SessionCapturing)
	loop := &capture.Loop{
		Device:      s.Device,
		OutputDir:   s.cfg.OutputDir,
		Settle:      s.cfg.SettleDelay,
		MinCaptures: s.cfg.MinCaptures,
	}
	set, err := loop.Run(ctx, s.cfg.ScrollCount)
	if err != nil {
		return s.fail(runID, err)
	}

	s.transition(definitions.SessionDone)
	log.Info().Str("run_id", runID).Int("captures", set.Len()).Msg("[Session] run complete")
	return definitions.RunResult{
		RunID:    runID,
		State:    definitions.SessionDone,
		Captures: set,
	}
}

// waitLogin wraps the manual-intervention waiter so the session state
// reflects the suspension.
func (s *Session) waitLogin(classifier *screen.Classifier, grabber *screen.Grabber) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		s.transition(definitions.SessionManualWait)
		waiter := &Waiter{
			Classify: func(ctx context.Context) definitions.ScreenState {
				return classifier.Classify(grabber.Grab(ctx))
			},
			MaxWait:      s.cfg.ManualWait,
			PollInterval: s.cfg.ManualPoll,
		}
		if err := waiter.WaitForLogin(ctx); err != nil {
			return err
		}
		s.transition(definitions.SessionNavigating)
		return nil
	}
}
