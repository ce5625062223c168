package android

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robzale/sentcollect/constants"
)

// EmulatorDevice drives one Android emulator through adb. It is the sole
// owner of the emulator process it spawns; Teardown releases it.
type EmulatorDevice struct {
	Serial       string
	AVDName      string
	KillPatterns []string
	BootPoll     time.Duration

	emuProc     *os.Process
	tearingDown bool
}

func NewEmulatorDevice(serial, avdName string, killPatterns []string, bootPoll time.Duration) *EmulatorDevice {
	if bootPoll <= 0 {
		bootPoll = 5 * time.Second
	}
	return &EmulatorDevice{
		Serial:       serial,
		AVDName:      avdName,
		KillPatterns: killPatterns,
		BootPoll:     bootPoll,
	}
}

func (r *EmulatorDevice) adbArgs(args ...string) []string {
	if r.Serial != "" {
		return append([]string{"-s", r.Serial}, args...)
	}
	return args
}

func (r *EmulatorDevice) runADB(ctx context.Context, op string, args ...string) (string, error) {
	cmdArgs := r.adbArgs(args...)
	log.Debug().Str("cmd", fmt.Sprintf("[%s] run cmd: %s %s", op, constants.ADBPath, strings.Join(cmdArgs, " "))).Msg("")

	rawOutput, err := exec.CommandContext(ctx, constants.ADBPath, cmdArgs...).CombinedOutput()
	if err != nil {
		log.Error().Err(err).Str("output", string(rawOutput)).Msgf("[%s] run cmd failed", op)
		return string(rawOutput), err
	}
	return string(rawOutput), nil
}

func (r *EmulatorDevice) Tap(ctx context.Context, x, y int) error {
	_, err := r.runADB(ctx, "Tap", "shell", "input", "tap", strconv.Itoa(x), strconv.Itoa(y))
	time.Sleep(time.Second * 1)
	return err
}

func (r *EmulatorDevice) Swipe(ctx context.Context, x1, y1, x2, y2, durationMs int) error {
	_, err := r.runADB(ctx, "Swipe",
		"shell", "input", "swipe",
		strconv.Itoa(x1), strconv.Itoa(y1),
		strconv.Itoa(x2), strconv.Itoa(y2),
		strconv.Itoa(durationMs),
	)
	time.Sleep(time.Second * 1)
	return err
}

func (r *EmulatorDevice) SendKey(ctx context.Context, code int) error {
	_, err := r.runADB(ctx, "SendKey", "shell", "input", "keyevent", strconv.Itoa(code))
	time.Sleep(time.Second * 1)
	return err
}

// DumpUI produces one textual dump of the UI tree. A single attempt: the
// dump mechanism is flaky and retry pacing belongs to the snapshot grabber.
func (r *EmulatorDevice) DumpUI(ctx context.Context) (string, error) {
	const remotePath = "/sdcard/window_dump.xml"

	output, err := r.runADB(ctx, "DumpUI", "shell", "uiautomator", "dump", remotePath)
	if err != nil {
		return "", err
	}
	if strings.Contains(output, "ERROR") || strings.Contains(output, "null root node") {
		return "", fmt.Errorf("uiautomator dump failed: %s", strings.TrimSpace(output))
	}

	content, err := r.runADB(ctx, "DumpUI", "shell", "cat", remotePath)
	if err != nil {
		return "", err
	}
	return content, nil
}

// Screenshot captures the full screen into destPath on the host.
func (r *EmulatorDevice) Screenshot(ctx context.Context, destPath string) error {
	remotePath := fmt.Sprintf("/sdcard/screencap_%s.png", uuid.New().String())

	output, err := r.runADB(ctx, "Screenshot", "shell", "screencap", "-p", remotePath)
	if err != nil {
		return err
	}
	if strings.Contains(output, "Status: -1") || strings.Contains(output, "Failed") {
		return fmt.Errorf("screencap failed: %s", strings.TrimSpace(output))
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}
	if _, err := r.runADB(ctx, "Screenshot", "pull", remotePath, destPath); err != nil {
		return err
	}
	_, _ = r.runADB(ctx, "Screenshot", "shell", "rm", remotePath)
	return nil
}

// LaunchApp starts the package via monkey, the same entry point a launcher
// tap would use.
func (r *EmulatorDevice) LaunchApp(ctx context.Context, pkg string) error {
	_, err := r.runADB(ctx, "LaunchApp",
		"shell", "monkey", "-p", pkg,
		"-c", "android.intent.category.LAUNCHER", "1",
	)
	time.Sleep(time.Second * 1)
	return err
}

func (r *EmulatorDevice) IsAppInstalled(ctx context.Context, pkg string) (bool, error) {
	output, err := r.runADB(ctx, "IsAppInstalled", "shell", "pm", "list", "packages", pkg)
	if err != nil {
		return false, err
	}
	return strings.Contains(output, "package:"+pkg), nil
}
