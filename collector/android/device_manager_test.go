package android

import (
	"context"
	"testing"

	"github.com/robzale/sentcollect/collector/definitions"
)

func TestLifecycleFromStatus(t *testing.T) {
	dev := &EmulatorDevice{Serial: "emulator-5554"}

	cases := []struct {
		status        string
		bootCompleted bool
		want          definitions.LifecycleState
	}{
		{"device", true, definitions.DeviceReady},
		{"device", false, definitions.DeviceOnline},
		{"offline", false, definitions.DeviceBooting},
		{"unauthorized", false, definitions.DeviceBooting},
	}
	for _, c := range cases {
		if got := dev.lifecycleFromStatus(c.status, c.bootCompleted); got != c.want {
			t.Errorf("lifecycleFromStatus(%q, %v) = %v, want %v", c.status, c.bootCompleted, got, c.want)
		}
	}
}

func TestLifecycleReportsShuttingDownDuringTeardown(t *testing.T) {
	dev := &EmulatorDevice{Serial: "emulator-5554"}

	// A cancelled context keeps Teardown from reaching adb; with no emulator
	// process and no kill patterns the call only flips the teardown marker.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dev.Teardown(ctx)

	if got := dev.lifecycleFromStatus("device", true); got != definitions.DeviceShuttingDown {
		t.Errorf("lifecycleFromStatus after Teardown = %v, want %v", got, definitions.DeviceShuttingDown)
	}
	if got := dev.lifecycleFromStatus("offline", false); got != definitions.DeviceShuttingDown {
		t.Errorf("lifecycleFromStatus after Teardown = %v, want %v", got, definitions.DeviceShuttingDown)
	}

	// Teardown stays idempotent.
	dev.Teardown(ctx)
	if got := dev.lifecycleFromStatus("device", true); got != definitions.DeviceShuttingDown {
		t.Errorf("lifecycleFromStatus after repeated Teardown = %v, want %v", got, definitions.DeviceShuttingDown)
	}
}
