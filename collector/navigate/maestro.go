package navigate

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasttemplate"

	"github.com/robzale/sentcollect/constants"
)

//go:embed flow.yaml.tmpl
var flowTemplate string

// FlowOutcome is the distinguished result of a declarative flow run.
type FlowOutcome int

const (
	FlowSucceeded FlowOutcome = iota
	FlowFailed
	FlowTimedOut
)

func (o FlowOutcome) String() string {
	switch o {
	case FlowSucceeded:
		return "succeeded"
	case FlowFailed:
		return "failed"
	case FlowTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// FlowRunner drives the primary navigation path: a declarative Maestro flow
// executed with a bounded timeout. On failure or timeout the caller falls
// back to low-level input replay.
type FlowRunner struct {
	DeviceID   string
	AppPackage string
	FlowFile   string // optional pre-rendered flow; empty renders the embedded template
	Timeout    time.Duration
	Command    string // flow tool binary; empty uses the default
}

func (m *FlowRunner) command() string {
	if m.Command != "" {
		return m.Command
	}
	return constants.MaestroPath
}

func (m *FlowRunner) renderFlow() (string, error) {
	if m.FlowFile != "" {
		return m.FlowFile, nil
	}

	menu, _ := constants.Tap("menu")
	feature, _ := constants.Tap("feature_tile")
	subsection, _ := constants.Tap("subsection_tile")

	t := fasttemplate.New(flowTemplate, "{{", "}}")
	rendered := t.ExecuteString(map[string]any{
		"app_package":      m.AppPackage,
		"menu_point":       fmt.Sprintf("%d,%d", menu.X, menu.Y),
		"feature_point":    fmt.Sprintf("%d,%d", feature.X, feature.Y),
		"subsection_point": fmt.Sprintf("%d,%d", subsection.X, subsection.Y),
	})

	flowPath := filepath.Join(os.TempDir(), fmt.Sprintf("flow_%s.yaml", uuid.New().String()))
	if err := os.WriteFile(flowPath, []byte(rendered), 0o644); err != nil {
		return "", err
	}
	return flowPath, nil
}

// Run executes the flow and maps the three exit conditions the tool can
// report onto FlowOutcome.
func (m *FlowRunner) Run(ctx context.Context) FlowOutcome {
	flowPath, err := m.renderFlow()
	if err != nil {
		log.Error().Err(err).Msg("[Flow] failed to render flow file")
		return FlowFailed
	}
	if m.FlowFile == "" {
		defer os.Remove(flowPath)
	}

	ctx, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()

	args := []string{}
	if m.DeviceID != "" {
		args = append(args, "--device", m.DeviceID)
	}
	args = append(args, "test", flowPath)

	log.Info().Str("cmd", fmt.Sprintf("[Flow] run cmd: %s %v", m.command(), args)).Msg("")

	output, err := exec.CommandContext(ctx, m.command(), args...).CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Warn().Dur("timeout", m.Timeout).Msg("[Flow] flow timed out")
			return FlowTimedOut
		}
		log.Warn().Err(err).Str("output", string(output)).Msg("[Flow] flow failed")
		return FlowFailed
	}

	log.Debug().Str("output", string(output)).Msg("[Flow] raw output")
	return FlowSucceeded
}
