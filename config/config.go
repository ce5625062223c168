package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/robzale/sentcollect/collector/definitions"
)

const envPrefix = "SENTCOLLECT"

// Default returns the built-in configuration. Timeouts are wall-clock
// ceilings, not iteration counts, so behavior is stable under variable
// device latency.
func Default() definitions.Config {
	return definitions.Config{
		DeviceID:     "emulator-5554",
		AVDName:      "collector",
		AppPackage:   "com.myfxbook.app",
		KillPatterns: []string{"qemu-system", "emulator64", "weston"},
		BootTimeout:  5 * time.Minute,
		BootPoll:     5 * time.Second,
		SettleDelay:  2 * time.Second,
		ManualWait:   10 * time.Minute,
		ManualPoll:   30 * time.Second,
		FlowTimeout:  3 * time.Minute,
		OutputDir:    "screenshots",
		ScrollCount:  50,
		MinCaptures:  10,
	}
}

// Load builds the config value object the session is constructed with:
// defaults, overridden by an optional YAML file, overridden by environment
// variables (SENTCOLLECT_DEVICE_ID and friends). This is the only place
// configuration is sourced; everything downstream takes the value object.
func Load(path string) (definitions.Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("device_id", cfg.DeviceID)
	v.SetDefault("avd_name", cfg.AVDName)
	v.SetDefault("app_package", cfg.AppPackage)
	v.SetDefault("kill_patterns", cfg.KillPatterns)
	v.SetDefault("boot_timeout", cfg.BootTimeout)
	v.SetDefault("boot_poll", cfg.BootPoll)
	v.SetDefault("settle_delay", cfg.SettleDelay)
	v.SetDefault("manual_wait", cfg.ManualWait)
	v.SetDefault("manual_poll", cfg.ManualPoll)
	v.SetDefault("flow_timeout", cfg.FlowTimeout)
	v.SetDefault("flow_file", cfg.FlowFile)
	v.SetDefault("output_dir", cfg.OutputDir)
	v.SetDefault("scroll_count", cfg.ScrollCount)
	v.SetDefault("min_captures", cfg.MinCaptures)
	v.SetDefault("strict_screen", cfg.StrictScreen)
	v.SetDefault("debug", cfg.Debug)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return definitions.Config{}, err
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return definitions.Config{}, err
	}
	return cfg, nil
}
