package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/abyssdigger/logvisor"
)

// Config lists the sinks to register and the initial host state.
type Config struct {
	// Console registers the stderr console sink.
	Console bool `yaml:"console"`
	// Color is the console color policy: auto, always or never.
	Color string `yaml:"color,omitempty"`
	// Files are the paths of file sinks, registered in order.
	Files []string `yaml:"files,omitempty"`
	// KeepOpen makes file sinks hold their handle between reports.
	KeepOpen bool `yaml:"keep_open,omitempty"`
	// FrameIndex is the initial frame index (0 hides it).
	FrameIndex uint64 `yaml:"frame_index,omitempty"`
	// ThreadName names the goroutine applying the configuration.
	ThreadName string `yaml:"thread_name,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for logging settings.
	DefaultConfigFilename = "logvisor.yaml"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errEmptyFilePath is returned for a blank entry in Files.
	errEmptyFilePath = errors.New("file sink path must not be empty")
)

// Default is the configuration used when no file is given: console only.
func Default() *Config {
	return &Config{Console: true, Color: "auto"}
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrap(err, "read settings")
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal settings")
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshal settings")
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "write settings")
	}

	return nil
}

// Validate checks the color policy and the file list. Duplicate file paths
// are rejected: the registry would silently drop them.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if _, ok := logvisor.ParseColorMode(cfg.Color); !ok {
		return errors.Errorf("invalid color mode %q (want auto, always or never)", cfg.Color)
	}

	seen := make(map[string]bool, len(cfg.Files))
	for i, path := range cfg.Files {
		if path == "" {
			return errors.Wrapf(errEmptyFilePath, "files[%d]", i)
		}

		if seen[path] {
			return errors.Errorf("duplicate file sink %q", path)
		}

		seen[path] = true
	}

	return nil
}

// Apply registers the configured sinks in reg (console first, then files in
// order), sets the frame index and names the calling goroutine.
func Apply(reg *logvisor.Registry, cfg *Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	if cfg.Console {
		mode, _ := logvisor.ParseColorMode(cfg.Color)
		if mode == logvisor.COLOR_AUTO {
			reg.RegisterConsoleLogger()
		} else {
			reg.RegisterSink(logvisor.NewConsoleSinkTo(os.Stderr, mode))
		}
	}

	for _, path := range cfg.Files {
		reg.RegisterFileLoggerWithOptions(path, logvisor.FileOptions{KeepOpen: cfg.KeepOpen})
	}

	if cfg.FrameIndex != 0 {
		reg.SetFrameIndex(cfg.FrameIndex)
	}

	if cfg.ThreadName != "" {
		reg.RegisterThreadName(cfg.ThreadName)
	}

	return nil
}
