// Package config defines menubar's configuration, its defaults and
// validation, and writes the commented default config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/menubar/internal/flags"
	"github.com/zjrosen/menubar/internal/log"
	"github.com/zjrosen/menubar/internal/platform"
	"github.com/zjrosen/menubar/internal/tracing"
)

// Config holds all user settings.
type Config struct {
	// Template is the menu template file. Empty uses the built-in template.
	Template string `mapstructure:"template"`
	// AppName is interpolated into role labels such as "Quit <AppName>".
	AppName string `mapstructure:"app_name"`
	// Platform selects role defaults and accelerator rendering. Empty uses
	// the platform menubar runs on.
	Platform string          `mapstructure:"platform"`
	Watch    bool            `mapstructure:"watch"`
	Debug    bool            `mapstructure:"debug"`
	Log      LogConfig       `mapstructure:"log"`
	UI       UIConfig        `mapstructure:"ui"`
	Tracing  TracingConfig   `mapstructure:"tracing"`
	Flags    map[string]bool `mapstructure:"flags"`
}

// LogConfig configures the debug log file.
type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// UIConfig holds terminal host settings.
type UIConfig struct {
	ShowAccelerators bool `mapstructure:"show_accelerators" yaml:"show_accelerators"`
	ShowStatusBar    bool `mapstructure:"show_status_bar" yaml:"show_status_bar"`
}

// TracingConfig mirrors tracing.Config with file-friendly names.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Exporter is one of "none", "file", "stdout", "otlp".
	Exporter     string  `mapstructure:"exporter"`
	FilePath     string  `mapstructure:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// ProviderConfig converts to the tracing package's config.
func (t TracingConfig) ProviderConfig() tracing.Config {
	cfg := tracing.DefaultConfig()
	cfg.Enabled = t.Enabled
	if t.Exporter != "" {
		cfg.Exporter = t.Exporter
	}
	cfg.FilePath = t.FilePath
	if t.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = t.OTLPEndpoint
	}
	if t.SampleRate > 0 {
		cfg.SampleRate = t.SampleRate
	}
	return cfg
}

// PlatformValue parses Platform, falling back to the running platform.
func (c Config) PlatformValue() (platform.Platform, error) {
	return platform.Parse(c.Platform)
}

// DefaultDir returns ~/.config/menubar, or "" when the home directory is
// unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "menubar")
}

// DefaultLogFile returns the debug log path under DefaultDir.
func DefaultLogFile() string {
	dir := DefaultDir()
	if dir == "" {
		return "debug.log"
	}
	return filepath.Join(dir, "debug.log")
}

// DefaultTracesFilePath returns the trace file path under DefaultDir.
func DefaultTracesFilePath() string {
	dir := DefaultDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns the configuration used when no file sets a value.
func Defaults() Config {
	return Config{
		AppName: "Menubar",
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		UI: UIConfig{
			ShowAccelerators: true,
			ShowStatusBar:    true,
		},
		Tracing: TracingConfig{
			Exporter:     "file",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Flags: flags.Defaults(),
	}
}

// Validate reports the first invalid setting.
func Validate(c Config) error {
	if _, err := platform.Parse(c.Platform); err != nil {
		return fmt.Errorf("platform: %w", err)
	}
	if c.Log.MaxSizeMB < 0 {
		return fmt.Errorf("log.max_size_mb must not be negative, got %d", c.Log.MaxSizeMB)
	}
	if c.Log.MaxBackups < 0 {
		return fmt.Errorf("log.max_backups must not be negative, got %d", c.Log.MaxBackups)
	}
	if c.Watch && c.Template == "" {
		return fmt.Errorf("watch requires a template file")
	}
	return ValidateTracing(c.Tracing)
}

// ValidateTracing checks tracing settings. Path requirements only apply
// when tracing is enabled.
func ValidateTracing(t TracingConfig) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}
	switch t.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}
	if !t.Enabled {
		return nil
	}
	if t.Exporter == "file" && t.FilePath == "" {
		return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
	}
	if t.Exporter == "otlp" && t.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// DefaultConfigTemplate returns the commented default config file.
func DefaultConfigTemplate() string {
	return `# Menubar configuration

# Menu template file (.yaml, .yml, .toml or .json). Leave unset to use the
# built-in template.
# template: ./menu.yaml

# Name shown in role labels such as "Quit <app_name>" and "About <app_name>"
app_name: Menubar

# Platform conventions: darwin, windows or linux. Unset follows the OS.
# platform: darwin

# Recompile the template whenever the file changes
watch: false

ui:
  show_accelerators: true   # Render accelerator text next to items
  show_status_bar: true     # Show the last dispatched command

# Debug log (enabled with --debug or MENUBAR_DEBUG=1)
log:
  # file: ~/.config/menubar/debug.log
  max_size_mb: 10
  max_backups: 3

# Feature flags
flags:
  accelerator-cache: true   # Memoize rendered accelerator text
  strict-radio: false       # Fail instead of repairing radio groups with several checked items

# Tracing of menu compilation and command dispatch
# tracing:
#   enabled: false
#   exporter: file              # none, file, stdout, otlp
#   file_path: ~/.config/menubar/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig writes DefaultConfigTemplate to configPath, creating
// parent directories.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}
