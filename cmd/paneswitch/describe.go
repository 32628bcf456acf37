package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"paneswitch/internal/audit"
	"paneswitch/internal/engine"
	"paneswitch/internal/hint"
	"paneswitch/internal/pane"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Rank tmux panes against a hint",
	Long: `Rank the current tmux panes against a free-text or structured hint and
print the scored list with per-stage explanations.

Examples:
  paneswitch describe --hint "dev server logs"
  paneswitch describe --hint "エディタ" --debug
  paneswitch describe --pane-hint vim --pane-hint backend --output yaml`,
	RunE: runDescribe,
}

var (
	describeHint           string
	describePaneHints      []string
	describeDebug          bool
	describeOutput         string
	describeFeedbackPane   string
	describeFeedbackRating string
)

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVar(&describeHint, "hint", "", "Free-text pane hint")
	describeCmd.Flags().StringArrayVar(&describePaneHints, "pane-hint", nil,
		"Structured hint value (repeatable)")
	describeCmd.Flags().BoolVar(&describeDebug, "debug", false,
		"Include hint interpretation and adjustment diagnostics")
	describeCmd.Flags().StringVar(&describeOutput, "output", "json",
		"Output format: json or yaml")
	describeCmd.Flags().StringVar(&describeFeedbackPane, "feedback-pane", "",
		"Pane id to attach a correction to; biases this very call")
	describeCmd.Flags().StringVar(&describeFeedbackRating, "feedback-rating", "",
		"Correction rating: match or mismatch")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	if describeOutput != "json" && describeOutput != "yaml" {
		return fmt.Errorf("unsupported output format %q (json or yaml)", describeOutput)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	eng := buildEngine(cfg, logger)

	req := engine.Request{Hint: describeHint, Debug: describeDebug}
	for _, v := range describePaneHints {
		req.Hints = append(req.Hints, hint.ValueHint{Value: v})
	}
	if describeFeedbackPane != "" || describeFeedbackRating != "" {
		report := engine.FeedbackReport{
			PaneID: describeFeedbackPane,
			Rating: pane.Rating(describeFeedbackRating),
		}
		if report.PaneID == "" || !report.Rating.Valid() {
			return fmt.Errorf("feedback needs --feedback-pane and --feedback-rating match|mismatch")
		}
		req.Feedback = &report
	}

	start := time.Now()
	result, err := eng.Describe(cmd.Context(), req)
	if err != nil {
		return err
	}

	if trail := openAudit(cfg, logger); trail != nil {
		top := result.Panes[0]
		if err := trail.Record(audit.Entry{
			RequestID:  uuid.NewString(),
			Timestamp:  time.Now().UnixMilli(),
			Hint:       describeHint,
			TopPane:    top.Pane.ID,
			TopScore:   top.Total,
			PaneCount:  len(result.Panes),
			DurationMs: time.Since(start).Milliseconds(),
		}); err != nil {
			logger.Warn("failed to record audit entry", "error", err.Error())
		}
		trail.Close()
	}

	if describeOutput == "yaml" {
		return yaml.NewEncoder(os.Stdout).Encode(result)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
