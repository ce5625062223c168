package definitions

import "time"

// Config is the single value object a session is constructed with. It is
// sourced once by the config loader; nothing reads the environment after that.
type Config struct {
	DeviceID   string `json:"device_id" mapstructure:"device_id"`
	AVDName    string `json:"avd_name" mapstructure:"avd_name"`
	AppPackage string `json:"app_package" mapstructure:"app_package"`

	// Host process patterns killed at teardown. The emulator and its
	// compositor do not always exit on "adb emu kill".
	KillPatterns []string `json:"kill_patterns" mapstructure:"kill_patterns"`

	BootTimeout  time.Duration `json:"boot_timeout" mapstructure:"boot_timeout"`
	BootPoll     time.Duration `json:"boot_poll" mapstructure:"boot_poll"`
	SettleDelay  time.Duration `json:"settle_delay" mapstructure:"settle_delay"`
	ManualWait   time.Duration `json:"manual_wait" mapstructure:"manual_wait"`
	ManualPoll   time.Duration `json:"manual_poll" mapstructure:"manual_poll"`
	FlowTimeout  time.Duration `json:"flow_timeout" mapstructure:"flow_timeout"`
	FlowFile     string        `json:"flow_file" mapstructure:"flow_file"`
	OutputDir    string        `json:"output_dir" mapstructure:"output_dir"`
	ScrollCount  int           `json:"scroll_count" mapstructure:"scroll_count"`
	MinCaptures  int           `json:"min_captures" mapstructure:"min_captures"`
	StrictScreen bool          `json:"strict_screen" mapstructure:"strict_screen"`
	Debug        bool          `json:"debug" mapstructure:"debug"`
}
