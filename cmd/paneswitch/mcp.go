package main

import (
	"github.com/spf13/cobra"

	"paneswitch/internal/logging"
	"paneswitch/internal/mcp"
	"paneswitch/internal/version"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for pane context resolution",
	Long: `Start the Model Context Protocol (MCP) server.

The server communicates via stdio using JSON-RPC 2.0 and exposes:
  - describePanes: rank panes against a hint, with explanations
  - reportFeedback: record whether a pick was right or wrong
  - getStatus: server status

This command is typically invoked by MCP clients, not directly by users.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// stdout carries the protocol stream, so force JSON logs on stderr.
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	logger := logging.New(logging.Config{
		Format: logging.JSONFormat,
		Level:  level,
	})

	eng := buildEngine(cfg, logger)
	trail := openAudit(cfg, logger)
	if trail != nil {
		defer trail.Close()
	}

	server := mcp.NewServer(version.Version, eng, trail, logger)
	if err := server.Start(); err != nil {
		logger.Error("MCP server error", "error", err.Error())
		return err
	}
	return nil
}
