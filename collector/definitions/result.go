package definitions

// SessionState is the orchestrator's position in a collection run.
type SessionState string

const (
	SessionInit        SessionState = "init"
	SessionDeviceReady SessionState = "device_ready"
	SessionNavigating  SessionState = "navigating"
	SessionManualWait  SessionState = "manual_wait"
	SessionCapturing   SessionState = "capturing"
	SessionDone        SessionState = "done"
	SessionFailed      SessionState = "failed"
)

// CaptureSet is the ordered, append-only list of screenshot artifacts a run
// produced. Index i of Paths is the capture with zero-padded index i.
type CaptureSet struct {
	Dir   string   `json:"dir"`
	Paths []string `json:"paths"`
}

func (c CaptureSet) Len() int {
	return len(c.Paths)
}

// RunResult is the only thing a session reports back to its caller. The
// external wrapper turns it into a process exit status.
type RunResult struct {
	RunID    string       `json:"run_id"`
	State    SessionState `json:"state"`
	Captures CaptureSet   `json:"captures"`
	Err      error        `json:"-"`
	Reason   string       `json:"reason,omitempty"`
}

func (r RunResult) Success() bool {
	return r.State == SessionDone
}
