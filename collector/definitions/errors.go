package definitions

import "errors"

// Structural faults. Each one terminates the run; teardown still executes.
// Transient faults (a dropped tap, a failed UI dump attempt, an offline
// transport) are absorbed inside their component and never reach here.
var (
	ErrBootTimeout        = errors.New("device did not become ready before the boot deadline")
	ErrAppNotInstalled    = errors.New("target app is not installed on the device")
	ErrManualLoginTimeout = errors.New("manual login was not completed before the deadline")
	ErrTooFewCaptures     = errors.New("capture run produced fewer artifacts than the minimum")
)
