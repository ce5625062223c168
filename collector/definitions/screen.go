package definitions

import "time"

// ScreenState is the classifier's verdict about the currently rendered UI.
type ScreenState string

const (
	StateUnknown     ScreenState = "unknown"
	StateWelcome     ScreenState = "welcome"
	StateCredentials ScreenState = "credentials"
	StateLoggedIn    ScreenState = "logged_in"
)

// Snapshot is a textual dump of the current UI tree. It exists only to be
// classified; nothing persists it.
type Snapshot struct {
	Content   string
	Timestamp time.Time
}

// Empty reports whether the dump produced no usable content.
func (s Snapshot) Empty() bool {
	return len(s.Content) == 0
}
