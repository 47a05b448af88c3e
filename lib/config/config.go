// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the configuration file when --config is
// not given.
const EnvironmentVariable = "DECKHAND_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local use alongside an MCP client.
	Development Environment = "development"
	// Production is for shared hosts.
	Production Environment = "production"
)

// Config is the master configuration for deckhand.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	// Server configures the artifact file server.
	Server ServerConfig `yaml:"server"`

	// Output configures where finished presentations are written.
	Output OutputConfig `yaml:"output"`

	// Logging configures the structured logger.
	Logging LoggingConfig `yaml:"logging"`

	// Per-environment overrides, applied after the base config is
	// loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Server  *ServerConfig  `yaml:"server,omitempty"`
	Output  *OutputConfig  `yaml:"output,omitempty"`
	Logging *LoggingConfig `yaml:"logging,omitempty"`
}

// ServerConfig configures the artifact file server.
type ServerConfig struct {
	// Host is the interface the file server binds and the host name
	// placed in download URLs.
	// Default: localhost
	Host string `yaml:"host"`

	// PortBase and PortMax bound the sequential free-port probe.
	// Default: 3100 and 3199
	PortBase int `yaml:"port_base"`
	PortMax  int `yaml:"port_max"`

	// ShutdownTimeout is how long in-flight downloads may take to
	// finish after shutdown begins, as a Go duration string.
	// Default: 10s
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// OutputConfig configures where finished presentations are written.
type OutputConfig struct {
	// Directory receives finished .pptx files and is served by the
	// file server. Created if absent.
	// Default: ${TMPDIR}/deckhand
	Directory string `yaml:"directory"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info (development), warn (production)
	Level string `yaml:"level"`
}

// Default returns the default configuration, used as the base before
// any file is loaded and as the whole configuration when no file is
// named.
func Default() *Config {
	return &Config{
		Environment: Development,
		Server: ServerConfig{
			Host:            "localhost",
			PortBase:        3100,
			PortMax:         3199,
			ShutdownTimeout: "10s",
		},
		Output: OutputConfig{
			Directory: filepath.Join("${TMPDIR}", "deckhand"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from path, or from the file named by
// DECKHAND_CONFIG when path is empty. With neither, it returns the
// expanded defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvironmentVariable)
	}
	if path == "" {
		cfg := Default()
		cfg.applyEnvironmentOverrides()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	// Apply environment-specific overrides (development/production sections in the file).
	cfg.applyEnvironmentOverrides()

	// Expand ${HOME}, ${TMPDIR} and similar variables in paths.
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
		if overrides == nil {
			overrides = &ConfigOverrides{Logging: &LoggingConfig{Level: "warn"}}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Server != nil {
		if overrides.Server.Host != "" {
			c.Server.Host = overrides.Server.Host
		}
		if overrides.Server.PortBase != 0 {
			c.Server.PortBase = overrides.Server.PortBase
		}
		if overrides.Server.PortMax != 0 {
			c.Server.PortMax = overrides.Server.PortMax
		}
		if overrides.Server.ShutdownTimeout != "" {
			c.Server.ShutdownTimeout = overrides.Server.ShutdownTimeout
		}
	}

	if overrides.Output != nil && overrides.Output.Directory != "" {
		c.Output.Directory = overrides.Output.Directory
	}

	if overrides.Logging != nil && overrides.Logging.Level != "" {
		c.Logging.Level = overrides.Logging.Level
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME":   os.Getenv("HOME"),
		"TMPDIR": os.TempDir(),
	}
	c.Output.Directory = ExpandVars(c.Output.Directory, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// ExpandVars expands ${VAR} and ${VAR:-default} patterns in s. Names
// are resolved from vars first, then the process environment. The
// command layer uses it for flag values so a path given on the
// command line expands the same way as one in the file.
func ExpandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Server.Host == "" {
		errs = append(errs, errors.New("server.host is required"))
	}
	if c.Server.PortBase < 1 || c.Server.PortBase > 65535 {
		errs = append(errs, fmt.Errorf("server.port_base %d is outside 1-65535", c.Server.PortBase))
	}
	if c.Server.PortMax < 1 || c.Server.PortMax > 65535 {
		errs = append(errs, fmt.Errorf("server.port_max %d is outside 1-65535", c.Server.PortMax))
	}
	if c.Server.PortBase > c.Server.PortMax {
		errs = append(errs, fmt.Errorf("server.port_base %d is above server.port_max %d", c.Server.PortBase, c.Server.PortMax))
	}
	if _, err := c.ShutdownTimeout(); err != nil {
		errs = append(errs, err)
	}

	if c.Output.Directory == "" {
		errs = append(errs, errors.New("output.directory is required"))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ShutdownTimeout parses Server.ShutdownTimeout.
func (c *Config) ShutdownTimeout() (time.Duration, error) {
	timeout, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 0, fmt.Errorf("server.shutdown_timeout: %w", err)
	}
	if timeout < 0 {
		return 0, fmt.Errorf("server.shutdown_timeout %s is negative", timeout)
	}
	return timeout, nil
}

// LogLevel parses Logging.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return 0, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}
