// Package config handles loading and saving lumina configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/lumina/config.yaml
//   - Data:    ~/.local/share/lumina/ (page database, export bundles)
//   - State:   ~/.local/state/lumina/ (debug log)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "lumina"

// StorageConfig selects where the page is persisted.
type StorageConfig struct {
	Backend string `yaml:"backend,omitempty"` // sqlite, file
	Path    string `yaml:"path,omitempty"`    // database file or directory
	Key     string `yaml:"key,omitempty"`
}

// SuggestConfig configures the content/colour suggestion service.
type SuggestConfig struct {
	Endpoint  string        `yaml:"endpoint,omitempty"`
	Model     string        `yaml:"model,omitempty"`
	APIKeyEnv string        `yaml:"api_key_env,omitempty"` // env var holding the key
	Timeout   time.Duration `yaml:"timeout,omitempty"`
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	Dir string `yaml:"dir,omitempty"` // where HTML exports and bundles go
}

// PreviewConfig holds preview server settings.
type PreviewConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	Theme string `yaml:"theme,omitempty"` // auto, dark, light
}

// Config is the top-level configuration for lumina.
type Config struct {
	Storage StorageConfig `yaml:"storage,omitempty"`
	Suggest SuggestConfig `yaml:"suggest,omitempty"`
	Export  ExportConfig  `yaml:"export,omitempty"`
	Preview PreviewConfig `yaml:"preview,omitempty"`
	UI      UIConfig      `yaml:"ui,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	dataDir := DataDir()
	return Config{
		Storage: StorageConfig{
			Backend: "sqlite",
			Path:    joinIfSet(dataDir, "lumina.db"),
			Key:     "lumina_current_page",
		},
		Suggest: SuggestConfig{
			Endpoint:  "https://generativelanguage.googleapis.com/v1beta",
			Model:     "gemini-3-flash-preview",
			APIKeyEnv: "LUMINA_API_KEY",
			Timeout:   30 * time.Second,
		},
		Export: ExportConfig{
			Dir: joinIfSet(dataDir, "exports"),
		},
		Preview: PreviewConfig{
			Addr: "127.0.0.1:8787",
		},
		UI: UIConfig{
			Theme: "auto",
		},
	}
}

func joinIfSet(dir, name string) string {
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append(append([]string{home}, fallback...), appName)...)
}

// ConfigDir returns the XDG config directory for lumina.
func ConfigDir() string { return xdgDir("XDG_CONFIG_HOME", ".config") }

// DataDir returns the XDG data directory for lumina.
func DataDir() string { return xdgDir("XDG_DATA_HOME", ".local", "share") }

// StateDir returns the XDG state directory for lumina.
func StateDir() string { return xdgDir("XDG_STATE_HOME", ".local", "state") }

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.Export.Dir = expandHome(cfg.Export.Dir)
	return cfg, nil
}

// Validate rejects settings the host cannot act on.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case "", "sqlite", "file":
	default:
		return fmt.Errorf("invalid config: unknown storage backend %q", c.Storage.Backend)
	}
	switch c.UI.Theme {
	case "", "auto", "dark", "light":
	default:
		return fmt.Errorf("invalid config: unknown theme %q", c.UI.Theme)
	}
	if c.Suggest.Timeout < 0 {
		return fmt.Errorf("invalid config: negative suggest timeout")
	}
	return nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// APIKey returns the suggestion API key from the configured environment
// variable, or "" when unset.
func (c Config) APIKey() string {
	name := c.Suggest.APIKeyEnv
	if name == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(name))
}

// LogPath is where the debug log goes while the editor owns the terminal.
func LogPath() string {
	return joinIfSet(StateDir(), "debug.log")
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
