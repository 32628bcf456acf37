package main

import (
	"log/slog"

	"paneswitch/internal/audit"
	"paneswitch/internal/config"
	"paneswitch/internal/engine"
	"paneswitch/internal/segment"
	"paneswitch/internal/tmux"
)

// buildEngine wires the engine's capability bundle from configuration:
// the tmux pane source, the default segmenter and the process clock.
func buildEngine(cfg *config.Config, logger *slog.Logger) *engine.Engine {
	return engine.New(cfg, engine.Options{
		Source:    tmux.NewClient(cfg.Tmux, logger),
		Segmenter: segment.NewSplitter(),
		Logger:    logger,
	})
}

// openAudit opens the audit trail when enabled; a nil return means
// auditing is off.
func openAudit(cfg *config.Config, logger *slog.Logger) *audit.Log {
	if !cfg.Audit.Enabled {
		return nil
	}
	trail, err := audit.Open(cfg.AuditDir(configDir()), logger)
	if err != nil {
		logger.Warn("audit trail disabled", "error", err.Error())
		return nil
	}
	return trail
}
