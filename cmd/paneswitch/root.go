package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"paneswitch/internal/config"
	"paneswitch/internal/logging"
	"paneswitch/internal/version"
)

var (
	// configDirFlag is the CLI --config-dir flag value
	configDirFlag string
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "paneswitch",
	Short: "paneswitch - tmux pane context resolution",
	Long: `paneswitch ranks the panes of a running tmux server against a free-text
or structured hint so an automated caller can pick "the pane the user
means" without manual selection. It exposes the ranking engine over the
Model Context Protocol and as a plain CLI.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("paneswitch version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "",
		"Configuration directory (default: ~/.paneswitch)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error (overrides config)")
}

// configDir resolves the effective configuration directory.
func configDir() string {
	if configDirFlag != "" {
		return configDirFlag
	}
	return config.DefaultDir()
}

// loadConfig loads and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configDir())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds a logger honoring the --log-level override. Logs go
// to stderr so stdout stays clean for command output and the MCP stream.
func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	return logging.New(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  level,
	})
}
