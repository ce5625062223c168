package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/robzale/sentcollect/collector"
	"github.com/robzale/sentcollect/collector/definitions"
	"github.com/robzale/sentcollect/config"
	"github.com/robzale/sentcollect/constants"
	"github.com/robzale/sentcollect/utils"
)

// cliOptions holds the command line arguments. Every option falls back to a
// SENTCOLLECT_* environment variable, then to the built-in default.
type cliOptions struct {
	ConfigFile  string `json:"config_file"`
	DeviceID    string `json:"device_id"`
	AVDName     string `json:"avd_name"`
	AppPackage  string `json:"app_package"`
	OutputDir   string `json:"output_dir"`
	ScrollCount int    `json:"scroll_count"`
	Strict      bool   `json:"strict"`
	Debug       bool   `json:"debug"`

	ListDevices bool `json:"list_devices"`
	Kill        bool `json:"kill"`
	Check       bool `json:"check"`
}

var opts = &cliOptions{}

var rootCmd = &cobra.Command{
	Use:   "sentcollect",
	Short: "Collect sentiment screenshots from the Android app",
	Long: `sentcollect boots an Android emulator, navigates the sentiment app to its
outlook section regardless of the app's starting state (welcome screen, login
wall, popups, live session), and captures an ordered set of full-screen
screenshots for the OCR pipeline to consume.

Navigation first runs the declarative Maestro flow; when that errors or times
out it falls back to replaying fixed input events and, if a login wall is hit,
waits for a human to enter credentials on the emulator window.`,
	Example: `  # Run a full collection with defaults
  sentcollect

  # Run against a specific device and AVD
  sentcollect --device-id emulator-5556 --avd collector2

  # Use a config file and strict screen classification
  sentcollect --config collector.yaml --strict

  # List connected devices
  sentcollect --list-devices

  # Kill a leftover emulator (cleanup hook for the wrapper)
  sentcollect --kill`,
	SilenceUsage: true,
	RunE:         run,
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func init() {
	rootCmd.PersistentFlags().StringVar(&opts.ConfigFile, "config",
		getEnv("SENTCOLLECT_CONFIG", ""),
		"Path to a YAML config file")

	rootCmd.PersistentFlags().StringVarP(&opts.DeviceID, "device-id", "d",
		getEnv("SENTCOLLECT_DEVICE_ID", ""),
		"ADB device serial")

	rootCmd.PersistentFlags().StringVar(&opts.AVDName, "avd",
		getEnv("SENTCOLLECT_AVD_NAME", ""),
		"AVD to boot when no device is present")

	rootCmd.PersistentFlags().StringVar(&opts.AppPackage, "app-package",
		getEnv("SENTCOLLECT_APP_PACKAGE", ""),
		"Package name of the target app")

	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o",
		getEnv("SENTCOLLECT_OUTPUT_DIR", ""),
		"Directory the capture set is written to")

	rootCmd.PersistentFlags().IntVar(&opts.ScrollCount, "scrolls",
		getEnvInt("SENTCOLLECT_SCROLL_COUNT", 0),
		"Number of scroll-and-capture cycles (0 uses the configured default)")

	rootCmd.PersistentFlags().BoolVar(&opts.Strict, "strict",
		getEnvBool("SENTCOLLECT_STRICT_SCREEN", false),
		"Treat missing screen evidence as unknown instead of logged in")

	rootCmd.PersistentFlags().BoolVar(&opts.Debug, "debug",
		getEnvBool("SENTCOLLECT_DEBUG", false),
		"Enable debug logging")

	rootCmd.PersistentFlags().BoolVar(&opts.ListDevices, "list-devices", false,
		"List connected devices and exit")

	rootCmd.PersistentFlags().BoolVar(&opts.Kill, "kill", false,
		"Tear down the emulator and leftover host processes, then exit")

	rootCmd.PersistentFlags().BoolVar(&opts.Check, "check", false,
		"Run the system requirement checks and exit")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildConfig() (definitions.Config, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return definitions.Config{}, err
	}

	// Command line beats environment beats config file beats defaults.
	if opts.DeviceID != "" {
		cfg.DeviceID = opts.DeviceID
	}
	if opts.AVDName != "" {
		cfg.AVDName = opts.AVDName
	}
	if opts.AppPackage != "" {
		cfg.AppPackage = opts.AppPackage
	}
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}
	if opts.ScrollCount > 0 {
		cfg.ScrollCount = opts.ScrollCount
	}
	if opts.Strict {
		cfg.StrictScreen = true
	}
	if opts.Debug {
		cfg.Debug = true
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := buildConfig()
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		return err
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Debug().Msgf("effective configuration: %s", utils.JsonIndent(cfg))

	ctx := context.Background()
	device := collector.NewDevice(cfg)

	if hitCmd := handleDeviceCommands(ctx, device); hitCmd {
		return nil
	}

	if passed := checkSystemRequirements(); !passed {
		log.Error().Msg("system check failed, fix the issues above")
		return fmt.Errorf("system requirements not met")
	}
	if opts.Check {
		return nil
	}

	result := collector.NewSession(cfg, device).Run(ctx)
	log.Info().Str("result", utils.JsonString(result)).Msg("run finished")

	if !result.Success() {
		return fmt.Errorf("collection failed: %s", result.Reason)
	}
	log.Info().Int("captures", result.Captures.Len()).Str("dir", result.Captures.Dir).
		Msg("capture set ready for OCR")
	return nil
}

func handleDeviceCommands(ctx context.Context, device collector.Device) bool {
	if opts.ListDevices {
		devices, err := device.ListDevices(ctx)
		if err != nil {
			log.Error().Err(err).Msg("failed to list devices")
			return true
		}
		if len(devices) == 0 {
			log.Info().Msg("No devices connected.")
			return true
		}

		online := lo.Filter(devices, func(d definitions.DeviceInfo, _ int) bool {
			return d.Status == "device"
		})
		ids := lo.Map(devices, func(d definitions.DeviceInfo, _ int) string {
			return d.DeviceID
		})
		log.Info().Strs("devices", ids).Int("online", len(online)).Msg("Connected devices")
		for _, d := range devices {
			modelInfo := ""
			if d.Model != "" {
				modelInfo = fmt.Sprintf(" (%s)", d.Model)
			}
			log.Info().Msgf("  %-30s [%s]%s", d.DeviceID, d.Status, modelInfo)
		}
		return true
	}

	if opts.Kill {
		log.Info().Msg("Tearing down emulator...")
		device.Teardown(ctx)
		return true
	}

	return false
}

func checkSystemRequirements() bool {
	log.Info().Msg("Checking system requirements...")
	log.Info().Msg(strings.Repeat("-", 50))

	// Check 1: adb
	log.Info().Msg("1. Checking ADB installation...")
	if _, err := exec.LookPath(constants.ADBPath); err != nil {
		log.Error().Msg("FAILED")
		log.Info().Msg("   Error: adb is not installed or not in PATH.")
		log.Info().Msg("   Solution: install android platform-tools:")
		log.Info().Msg("     - Linux: sudo apt install android-tools-adb")
		log.Info().Msg("     - macOS: brew install android-platform-tools")
		return false
	}
	versionOut, err := exec.Command(constants.ADBPath, "version").Output()
	if err != nil {
		log.Error().Msg("FAILED")
		log.Info().Msgf("   Error: adb failed to run: %v", err)
		return false
	}
	versionLine, _, _ := strings.Cut(string(versionOut), "\n")
	log.Info().Msgf("OK (%s)", strings.TrimSpace(versionLine))

	// Check 2: emulator
	log.Info().Msg("2. Checking emulator installation...")
	if _, err := exec.LookPath(constants.EmulatorPath); err != nil {
		log.Error().Msg("FAILED")
		log.Info().Msg("   Error: the Android emulator binary is not in PATH.")
		log.Info().Msg("   Solution: install the Android SDK emulator package and add")
		log.Info().Msg("   $ANDROID_HOME/emulator to PATH")
		return false
	}
	log.Info().Msg("OK")

	// Check 3: maestro (primary navigation only; the fallback works without it)
	log.Info().Msg("3. Checking Maestro installation...")
	if _, err := exec.LookPath(constants.MaestroPath); err != nil {
		log.Warn().Msg("maestro not found; primary navigation will fail over to input replay")
	} else {
		log.Info().Msg("OK")
	}

	log.Info().Msg(strings.Repeat("-", 50))
	log.Info().Msg("System checks passed")
	return true
}
