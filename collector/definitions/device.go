package definitions

// LifecycleState tracks where a device is in its boot/shutdown cycle.
type LifecycleState string

const (
	DeviceAbsent       LifecycleState = "absent"
	DeviceBooting      LifecycleState = "booting"
	DeviceOnline       LifecycleState = "online" // adb sees it, boot not completed
	DeviceReady        LifecycleState = "ready"
	DeviceShuttingDown LifecycleState = "shutting_down"
)

type DeviceInfo struct {
	DeviceID string `json:"device_id"`
	Status   string `json:"status"`
	Model    string `json:"model,omitempty"`
}
