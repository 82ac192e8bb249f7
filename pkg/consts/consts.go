package consts

import "os"

const (
	// DefaultConfigFile is the config file looked up in the working directory
	DefaultConfigFile = "chparse.yaml"

	// ConfigEnvVar overrides the config file path
	ConfigEnvVar = "CHPARSE_CONFIG"

	// DefaultIndentSize is the number of spaces per indent level of formatted SQL
	DefaultIndentSize = 4

	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)
)
