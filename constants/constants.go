package constants

// Android key codes used by navigation.
const (
	KeycodeBack = 4
	KeycodeHome = 3
)

// Binaries the collector shells out to.
const (
	ADBPath      = "adb"
	EmulatorPath = "emulator"
	MaestroPath  = "maestro"
)
