package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"paneswitch/internal/audit"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the describe-call audit trail",
}

var auditRecentN int

var auditRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the most recent describe calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		trail, err := openAuditOrFail()
		if err != nil {
			return err
		}
		defer trail.Close()

		entries, err := trail.Recent(auditRecentN)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	},
}

var auditExportGzip bool

var auditExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full trail as JSON lines to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		trail, err := openAuditOrFail()
		if err != nil {
			return err
		}
		defer trail.Close()
		return trail.Export(os.Stdout, auditExportGzip)
	},
}

func init() {
	auditRecentCmd.Flags().IntVarP(&auditRecentN, "count", "n", 20, "Number of entries")
	auditExportCmd.Flags().BoolVar(&auditExportGzip, "gzip", false, "Compress output with gzip")
	auditCmd.AddCommand(auditRecentCmd)
	auditCmd.AddCommand(auditExportCmd)
	rootCmd.AddCommand(auditCmd)
}

// openAuditOrFail opens the trail for inspection commands, where a
// missing or disabled trail is an error rather than a soft fallback.
func openAuditOrFail() (*audit.Log, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Audit.Enabled {
		return nil, fmt.Errorf("audit trail is disabled in config")
	}
	return audit.Open(cfg.AuditDir(configDir()), newLogger(cfg))
}
