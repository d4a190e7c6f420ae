// Package config loads DataLens configuration from file, environment and
// flags.
package config

// Default configuration values.
const (
	DefaultPort        = 8765
	DefaultPreviewRows = 5
	DefaultOutput      = "text"
)

// Config holds all runtime configuration options.
type Config struct {
	// Port is the web UI listen port.
	Port int `koanf:"port"`

	// DataDir, when set, is watched for CSV/XLSX files which then appear
	// in the UI's dataset picker.
	DataDir string `koanf:"data_dir"`

	// Watch enables fsnotify watching of DataDir.
	Watch bool `koanf:"watch"`

	// AutoOpen opens the browser when the UI starts.
	AutoOpen bool `koanf:"auto_open"`

	// SessionSecret signs the session cookie.
	SessionSecret string `koanf:"session_secret"`

	// PreviewRows is the number of head rows shown in overviews.
	PreviewRows int `koanf:"preview_rows"`

	// Output selects the CLI table format (text|markdown|csv|json).
	Output string `koanf:"output"`

	Verbose bool `koanf:"verbose"`
}
