package collector

import (
	"context"
	"time"

	"github.com/robzale/sentcollect/collector/android"
	"github.com/robzale/sentcollect/collector/definitions"
)

// DeviceOperator is the input/observation surface of a device.
type DeviceOperator interface {
	Tap(ctx context.Context, x, y int) error
	Swipe(ctx context.Context, x1, y1, x2, y2, durationMs int) error
	SendKey(ctx context.Context, code int) error
	DumpUI(ctx context.Context) (string, error)
	Screenshot(ctx context.Context, destPath string) error
	LaunchApp(ctx context.Context, pkg string) error
	IsAppInstalled(ctx context.Context, pkg string) (bool, error)
}

// SessionManager owns the device lifecycle for one run.
type SessionManager interface {
	EnsureReady(ctx context.Context, timeout time.Duration) error
	Teardown(ctx context.Context)
	RecoverTransport(ctx context.Context) error
	ListDevices(ctx context.Context) ([]definitions.DeviceInfo, error)
	GetProperty(ctx context.Context, key string) (string, error)
	Lifecycle(ctx context.Context) definitions.LifecycleState
}

type Device interface {
	DeviceOperator
	SessionManager
}

// NewDevice builds the emulator-backed device for a run.
func NewDevice(cfg definitions.Config) Device {
	return android.NewEmulatorDevice(cfg.DeviceID, cfg.AVDName, cfg.KillPatterns, cfg.BootPoll)
}
