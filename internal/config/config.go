// Package config loads and persists the paneswitch configuration. The
// loaded value is immutable from the engine's point of view: it is built
// once at startup and passed into constructors, never read from ambient
// state.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"paneswitch/internal/score"
)

// Config is the complete paneswitch configuration.
type Config struct {
	Version  int            `json:"version" mapstructure:"version"`
	Weights  score.Weights  `json:"weights" mapstructure:"weights"`
	Feedback FeedbackConfig `json:"feedback" mapstructure:"feedback"`
	Tmux     TmuxConfig     `json:"tmux" mapstructure:"tmux"`
	Audit    AuditConfig    `json:"audit" mapstructure:"audit"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// FeedbackConfig bounds the in-memory feedback store. The decay horizon
// comes from Weights.Feedback.DecayMinutes.
type FeedbackConfig struct {
	MaxEntries int `json:"maxEntries" mapstructure:"maxEntries"`
}

// TmuxConfig controls how panes are enumerated.
type TmuxConfig struct {
	Binary     string `json:"binary" mapstructure:"binary"`
	SocketName string `json:"socketName,omitempty" mapstructure:"socketName"`
}

// AuditConfig controls the describe-call audit trail.
type AuditConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Dir     string `json:"dir,omitempty" mapstructure:"dir"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

const currentVersion = 1

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: currentVersion,
		Weights: score.DefaultWeights(),
		Feedback: FeedbackConfig{
			MaxEntries: 200,
		},
		Tmux: TmuxConfig{
			Binary: "tmux",
		},
		Audit: AuditConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// DefaultDir returns the default configuration directory,
// ~/.paneswitch, or "." if the home directory cannot be resolved.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".paneswitch")
}

// Load reads config.json from dir, returning defaults when no file
// exists. Partial files overlay the defaults.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to dir/config.json, creating dir if
// needed.
func (c *Config) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks invariants the rest of the system depends on. Scoring
// weights are deliberately not validated: negative multipliers are a
// supported tuning input.
func (c *Config) Validate() error {
	if c.Version != currentVersion {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Weights.Feedback.DecayMinutes <= 0 {
		return &ConfigError{Field: "weights.feedback.decayMinutes", Message: "must be positive"}
	}
	if c.Feedback.MaxEntries <= 0 {
		return &ConfigError{Field: "feedback.maxEntries", Message: "must be positive"}
	}
	if c.Tmux.Binary == "" {
		return &ConfigError{Field: "tmux.binary", Message: "must not be empty"}
	}
	return nil
}

// AuditDir resolves the audit database directory, defaulting to the
// config directory itself.
func (c *Config) AuditDir(configDir string) string {
	if c.Audit.Dir != "" {
		return c.Audit.Dir
	}
	return configDir
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
