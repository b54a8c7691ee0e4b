package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/dshills/linestack/internal/config/loader"
)

// Default values.
const (
	DefaultOutputPath    = "output.txt"
	DefaultMaxEntries    = 1000
	DefaultPrompt        = "Enter your choice: "
	DefaultLogLevel      = "info"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	appDirName           = "linestack"
	configFileName       = "config.toml"
	logFileName          = "linestack.log"
)

// Config is the complete editor configuration.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	History HistoryConfig `toml:"history"`
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
}

// EditorConfig holds editing settings.
type EditorConfig struct {
	// OutputPath is where save writes the buffer.
	OutputPath string `toml:"output_path"`
}

// HistoryConfig holds undo/redo settings.
type HistoryConfig struct {
	// MaxEntries bounds the undo stack. Zero means the engine default.
	MaxEntries int `toml:"max_entries"`
}

// UIConfig holds console presentation settings.
type UIConfig struct {
	Color bool `toml:"color"`
	// MaxWidth truncates printed lines to this many cells. Zero disables.
	MaxWidth int    `toml:"max_width"`
	Prompt   string `toml:"prompt"`
}

// LoggingConfig holds log file settings.
type LoggingConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			OutputPath: DefaultOutputPath,
		},
		History: HistoryConfig{
			MaxEntries: DefaultMaxEntries,
		},
		UI: UIConfig{
			Color:  true,
			Prompt: DefaultPrompt,
		},
		Logging: LoggingConfig{
			Level:      DefaultLogLevel,
			File:       DefaultLogPath(),
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
		},
	}
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	errs := &ValidationErrors{}

	if c.Editor.OutputPath == "" {
		errs.Add("editor.output_path", "must not be empty")
	}
	if c.History.MaxEntries < 0 {
		errs.Add("history.max_entries", fmt.Sprintf("must be >= 0, got %d", c.History.MaxEntries))
	}
	if c.UI.MaxWidth < 0 {
		errs.Add("ui.max_width", fmt.Sprintf("must be >= 0, got %d", c.UI.MaxWidth))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs.Add("logging.level", fmt.Sprintf("must be debug, info, warn, or error, got %q", c.Logging.Level))
	}
	if c.Logging.MaxSizeMB < 0 {
		errs.Add("logging.max_size_mb", "must be >= 0")
	}
	if c.Logging.MaxBackups < 0 {
		errs.Add("logging.max_backups", "must be >= 0")
	}

	return errs.AsError()
}

// Options controls where Load reads from.
type Options struct {
	// Path is the TOML file. Empty means DefaultPath().
	Path string

	// FS is the file system the TOML file is read from. Defaults to the OS.
	FS afero.Fs

	// EnvPrefix selects environment overrides. Empty means
	// loader.DefaultEnvPrefix; "-" disables them.
	EnvPrefix string

	// Overrides is the highest layer, keyed by dotted path
	// (e.g. "editor.output_path"). Command-line flags land here.
	Overrides map[string]any
}

// Load builds a Config from defaults, the TOML file, the environment and
// overrides, in that order, and validates the result.
func Load(opts Options) (*Config, error) {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	if opts.Path == "" {
		opts.Path = DefaultPath()
	}

	layers := []loader.Loader{loader.NewTOMLLoaderWithFS(opts.FS, opts.Path)}
	if opts.EnvPrefix != "-" {
		prefix := opts.EnvPrefix
		if prefix == "" {
			prefix = loader.DefaultEnvPrefix
		}
		layers = append(layers, loader.NewEnvLoader(prefix))
	}

	merged := make(map[string]any)
	for _, l := range layers {
		layer, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, layer)
	}

	if len(opts.Overrides) > 0 {
		flagCfg := make(map[string]any)
		for path, value := range opts.Overrides {
			loader.SetByPath(flagCfg, path, value)
		}
		merged = loader.DeepMerge(merged, flagCfg)
	}

	cfg, err := decode(merged)
	if err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", opts.Path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode applies a merged settings map on top of the defaults.
func decode(settings map[string]any) (*Config, error) {
	cfg := Default()
	if len(settings) == 0 {
		return cfg, nil
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Dir returns the per-user configuration directory.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDirName)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName)
	}
	return filepath.Join(os.TempDir(), appDirName)
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return filepath.Join(Dir(), configFileName)
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appDirName, logFileName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", appDirName, logFileName)
	}
	return filepath.Join(os.TempDir(), appDirName, logFileName)
}
