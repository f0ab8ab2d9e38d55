// Package config holds the interpreter's configuration, read from a YAML
// file and overridden by command line flags.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"go.creack.net/eqcalc/evaluator"
)

// Config is the interpreter's configuration.
type Config struct {
	// Lexing and evaluation.
	SkipSpaces        bool    `yaml:"skip-spaces,omitempty"`
	EqualityTolerance float64 `yaml:"equality-tolerance,omitempty"`

	DebugMode      bool              `yaml:"debug-mode,omitempty"`
	Logging        string            `yaml:"logging,omitempty"`
	LoggingOptions map[string]string `yaml:"logging-options,omitempty"`

	Server struct {
		ListenAddress   string `yaml:"address,omitempty"`
		MaxSessions     int    `yaml:"max-sessions,omitempty"`
		ShutdownTimeout string `yaml:"shutdown-timeout,omitempty"`
	} `yaml:"server,omitempty"`
}

// Default returns the default configuration.
func Default() Config {
	var cfg Config
	cfg.Logging = "info"
	cfg.Server.ListenAddress = ":8765"
	cfg.Server.MaxSessions = 1024
	cfg.Server.ShutdownTimeout = "5s"
	return cfg
}

// ParseFile reads a YAML configuration file on top of the current values.
func (cfg *Config) ParseFile(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read configuration")
	}
	return cfg.Parse(buf)
}

// Parse reads YAML configuration on top of the current values.
func (cfg *Config) Parse(buf []byte) error {
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return errors.Wrap(err, "failed to parse configuration")
	}
	return nil
}

// Validate checks the configuration values.
func (cfg Config) Validate() error {
	if cfg.EqualityTolerance < 0 {
		return errors.Errorf("equality-tolerance must not be negative, got %g", cfg.EqualityTolerance)
	}
	if cfg.Server.MaxSessions < 0 {
		return errors.Errorf("server.max-sessions must not be negative, got %d", cfg.Server.MaxSessions)
	}
	if _, err := cfg.ShutdownTimeout(); err != nil {
		return err
	}
	return nil
}

// ShutdownTimeout parses the server's graceful shutdown timeout.
func (cfg Config) ShutdownTimeout() (time.Duration, error) {
	if cfg.Server.ShutdownTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(cfg.Server.ShutdownTimeout)
	if err != nil {
		return 0, errors.Wrap(err, "failed to parse server.shutdown-timeout")
	}
	return d, nil
}

// SessionOptions translates the configuration into session options.
func (cfg Config) SessionOptions() []evaluator.Option {
	var opts []evaluator.Option
	if cfg.SkipSpaces {
		opts = append(opts, evaluator.WithSkipSpaces())
	}
	if cfg.EqualityTolerance > 0 {
		opts = append(opts, evaluator.WithTolerance(cfg.EqualityTolerance))
	}
	return opts
}

// NewSession creates an evaluation session with the configured options.
func (cfg Config) NewSession() *evaluator.Session {
	return evaluator.NewSession(cfg.SessionOptions()...)
}
