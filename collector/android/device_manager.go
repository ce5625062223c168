package android

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robzale/sentcollect/collector/definitions"
	"github.com/robzale/sentcollect/constants"
)

func (r *EmulatorDevice) ListDevices(ctx context.Context) ([]definitions.DeviceInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmdArgs := []string{"devices", "-l"}
	log.Debug().Str("cmd", fmt.Sprintf("[ListDevices] run cmd: %s %s", constants.ADBPath, strings.Join(cmdArgs, " "))).Msg("")

	rawOutput, err := exec.CommandContext(ctx, constants.ADBPath, cmdArgs...).CombinedOutput()
	if err != nil {
		log.Error().Err(err).Msg("[ListDevices] run cmd failed")
		return nil, err
	}

	var devices []definitions.DeviceInfo
	scanner := bufio.NewScanner(strings.NewReader(string(rawOutput)))

	// Skip the first line (header)
	scanner.Scan()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		var model string
		for _, part := range parts[2:] {
			if strings.HasPrefix(part, "model:") {
				model = strings.SplitN(part, ":", 2)[1]
				break
			}
		}

		devices = append(devices, definitions.DeviceInfo{
			DeviceID: parts[0],
			Status:   parts[1],
			Model:    model,
		})
	}
	return devices, nil
}

// GetProperty reads one Android system property from the device.
func (r *EmulatorDevice) GetProperty(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	output, err := r.runADB(ctx, "GetProperty", "shell", "getprop", key)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// Lifecycle observes where the device currently is in its boot cycle.
// Every caller re-observes; nothing is cached.
func (r *EmulatorDevice) Lifecycle(ctx context.Context) definitions.LifecycleState {
	devices, err := r.ListDevices(ctx)
	if err != nil {
		return definitions.DeviceAbsent
	}

	for _, d := range devices {
		if r.Serial != "" && d.DeviceID != r.Serial {
			continue
		}
		booted := false
		if d.Status == "device" {
			if prop, _ := r.GetProperty(ctx, "sys.boot_completed"); prop == "1" {
				booted = true
			}
		}
		return r.lifecycleFromStatus(d.Status, booted)
	}
	if r.emuProc != nil {
		return definitions.DeviceBooting
	}
	return definitions.DeviceAbsent
}

// lifecycleFromStatus maps a single adb status entry onto a lifecycle state.
// A device that is still visible while a teardown is in progress reports
// shutting-down rather than its transport status.
func (r *EmulatorDevice) lifecycleFromStatus(status string, bootCompleted bool) definitions.LifecycleState {
	if r.tearingDown {
		return definitions.DeviceShuttingDown
	}
	switch status {
	case "device":
		if bootCompleted {
			return definitions.DeviceReady
		}
		return definitions.DeviceOnline
	default:
		return definitions.DeviceBooting
	}
}

// EnsureReady boots the emulator if it is not already present and polls until
// the device reports boot completion or the wall-clock deadline elapses.
// Retry policy on timeout belongs to the caller, not here.
func (r *EmulatorDevice) EnsureReady(ctx context.Context, timeout time.Duration) error {
	if r.Lifecycle(ctx) == definitions.DeviceAbsent {
		if err := r.spawnEmulator(); err != nil {
			return err
		}
	}

	deadline := time.Now().Add(timeout)
	for {
		state := r.Lifecycle(ctx)
		log.Debug().Str("state", string(state)).Msg("[EnsureReady] polling device")
		if state == definitions.DeviceReady {
			log.Info().Str("serial", r.Serial).Msg("[EnsureReady] device ready")
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: waited %s", definitions.ErrBootTimeout, timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.BootPoll):
		}
	}
}

func (r *EmulatorDevice) spawnEmulator() error {
	args := []string{
		"-avd", r.AVDName,
		"-no-snapshot", "-no-audio", "-no-boot-anim",
		"-gpu", "swiftshader_indirect",
	}
	log.Info().Str("cmd", fmt.Sprintf("[Boot] run cmd: %s %s", constants.EmulatorPath, strings.Join(args, " "))).Msg("")

	cmd := exec.Command(constants.EmulatorPath, args...)
	if err := cmd.Start(); err != nil {
		log.Error().Err(err).Msg("[Boot] failed to start emulator")
		return err
	}
	r.emuProc = cmd.Process

	// Reap the child when it exits so teardown does not leave a zombie.
	go func() { _, _ = cmd.Process.Wait() }()
	return nil
}

// Teardown stops the emulator and any leftover host processes. Best effort:
// a process that is already gone is logged and skipped, never an error.
// Calling Teardown on an absent device is a no-op.
func (r *EmulatorDevice) Teardown(ctx context.Context) {
	r.tearingDown = true
	if r.Lifecycle(ctx) != definitions.DeviceAbsent {
		if _, err := r.runADB(ctx, "Teardown", "emu", "kill"); err != nil {
			log.Warn().Err(err).Msg("[Teardown] adb emu kill failed, falling back to process kill")
		}
	}

	if r.emuProc != nil {
		if err := r.emuProc.Kill(); err != nil {
			log.Debug().Err(err).Msg("[Teardown] emulator process already gone")
		}
		r.emuProc = nil
	}

	for _, pattern := range r.KillPatterns {
		log.Debug().Str("cmd", fmt.Sprintf("[Teardown] run cmd: pkill -f %s", pattern)).Msg("")
		if err := exec.CommandContext(ctx, "pkill", "-f", pattern).Run(); err != nil {
			// pkill exits 1 when nothing matched; that is the idempotent case.
			log.Debug().Err(err).Str("pattern", pattern).Msg("[Teardown] no process matched")
		}
	}
}

// RecoverTransport restarts the adb server and reconnects devices stuck
// offline. The transport degrades under the emulator/compositor combination
// in use, so the fallback path runs this before touching the device.
func (r *EmulatorDevice) RecoverTransport(ctx context.Context) error {
	for _, args := range [][]string{
		{"kill-server"},
		{"start-server"},
		{"reconnect", "offline"},
	} {
		log.Debug().Str("cmd", fmt.Sprintf("[RecoverTransport] run cmd: %s %s", constants.ADBPath, strings.Join(args, " "))).Msg("")
		output, err := exec.CommandContext(ctx, constants.ADBPath, args...).CombinedOutput()
		if err != nil {
			log.Warn().Err(err).Str("output", string(output)).Msg("[RecoverTransport] step failed")
			return err
		}
		time.Sleep(2 * time.Second)
	}
	return nil
}
