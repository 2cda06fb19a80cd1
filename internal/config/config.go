package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// EnvAPIURL overrides the configured api_url when set.
const EnvAPIURL = "BRIEFPIPE_API_URL"

// Config represents the briefpipe configuration
type Config struct {
	APIURL    string        `yaml:"api_url" toml:"api_url"`
	Timeout   time.Duration `yaml:"-" toml:"-"` // Parsed from the string form below
	OutputDir string        `yaml:"output_dir,omitempty" toml:"output_dir,omitempty"`
	LogLevel  string        `yaml:"log_level,omitempty" toml:"log_level,omitempty"`
	TextWidth int           `yaml:"text_width,omitempty" toml:"text_width,omitempty"`
}

// raw mirrors Config with the timeout as a duration string.
type raw struct {
	APIURL    string `yaml:"api_url" toml:"api_url"`
	Timeout   string `yaml:"timeout" toml:"timeout"`
	OutputDir string `yaml:"output_dir,omitempty" toml:"output_dir,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty" toml:"log_level,omitempty"`
	TextWidth int    `yaml:"text_width,omitempty" toml:"text_width,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		APIURL:    "http://localhost:8000",
		Timeout:   30 * time.Second,
		LogLevel:  "info",
		TextWidth: 80,
	}
}

// ConfigPath returns the path to the config file.
// A config.toml is used when present, otherwise config.yaml.
// Can be overridden for testing
var ConfigPath = func() string {
	dir := filepath.Join(xdg.ConfigHome, "briefpipe")
	tomlPath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from path, or from ConfigPath when path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := cfg.decode(path, data); err != nil {
			return nil, err
		}
	}

	if env := os.Getenv(EnvAPIURL); env != "" {
		cfg.APIURL = env
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	var r raw
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if r.APIURL != "" {
		c.APIURL = r.APIURL
	}
	if r.Timeout != "" {
		timeout, err := time.ParseDuration(r.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout format '%s': %w", r.Timeout, err)
		}
		c.Timeout = timeout
	}
	if r.OutputDir != "" {
		c.OutputDir = r.OutputDir
	}
	if r.LogLevel != "" {
		c.LogLevel = r.LogLevel
	}
	if r.TextWidth != 0 {
		c.TextWidth = r.TextWidth
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url cannot be empty")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url must be an absolute URL: %q", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.TextWidth < 0 {
		return fmt.Errorf("text_width cannot be negative")
	}
	return nil
}

// Save writes configuration to path in the format its extension names.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	r := raw{
		APIURL:    c.APIURL,
		Timeout:   c.Timeout.String(),
		OutputDir: c.OutputDir,
		LogLevel:  c.LogLevel,
		TextWidth: c.TextWidth,
	}

	var (
		data []byte
		err  error
	)
	if strings.ToLower(filepath.Ext(path)) == ".toml" {
		var b strings.Builder
		err = toml.NewEncoder(&b).Encode(r)
		data = []byte(b.String())
	} else {
		data, err = yaml.Marshal(r)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
