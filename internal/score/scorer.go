// Package score ranks pane candidates by combining weighted hint tokens
// with activity, layout, command and feedback signals into an
// explainable per-stage breakdown.
package score

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"paneswitch/internal/hint"
	"paneswitch/internal/pane"
)

// Stage names, in evaluation order. Reason strings follow this order so
// breakdowns read the same way across panes.
const (
	StageDefault       = "default"
	StageHint          = "hint"
	StageActivePane    = "activePane"
	StageActiveWindow  = "activeWindow"
	StageActiveSession = "activeSession"
	StageLayoutWindow  = "layoutSameWindow"
	StageLayoutSession = "layoutSameSession"
	StageCommand       = "commandCategory"
	StageFeedback      = "feedback"
)

var stageLabels = map[string]string{
	StageDefault:       "default pane weight",
	StageHint:          "hint match",
	StageActivePane:    "active pane",
	StageActiveWindow:  "active window",
	StageActiveSession: "active session",
	StageLayoutWindow:  "same window as active",
	StageLayoutSession: "same session as active",
	StageCommand:       "command category",
	StageFeedback:      "feedback",
}

var stageOrder = []string{
	StageDefault,
	StageHint,
	StageActivePane,
	StageActiveWindow,
	StageActiveSession,
	StageLayoutWindow,
	StageLayoutSession,
	StageCommand,
	StageFeedback,
}

// ScorePanes computes a full ranking for the candidate set. It is a pure
// function: no I/O, inputs are never mutated, and identical inputs
// produce byte-identical output order and scores.
func ScorePanes(panes []pane.Pane, hints []hint.WeightedHint, w Weights, adjustments map[string]float64) []pane.ScoredPane {
	// Active window/session sets are a property of the whole candidate
	// set, computed once per call.
	activeWindows := map[string]struct{}{}
	activeSessions := map[string]struct{}{}
	for _, p := range panes {
		if p.IsActiveWindow {
			activeWindows[layoutKey(p.Session, p.Window)] = struct{}{}
		}
		if p.IsActiveSession {
			activeSessions[p.Session] = struct{}{}
		}
	}

	scored := make([]pane.ScoredPane, 0, len(panes))
	for _, p := range panes {
		stages := map[string]float64{}

		stages[StageDefault] = w.DefaultPane

		if v := hintContribution(p, hints, w.Hint); v != 0 {
			stages[StageHint] = v
		}
		if p.IsActive {
			stages[StageActivePane] = w.ActivePane
		}
		if p.IsActiveWindow {
			stages[StageActiveWindow] = w.ActiveWindow
		}
		if p.IsActiveSession {
			stages[StageActiveSession] = w.ActiveSession
		}
		if _, ok := activeWindows[layoutKey(p.Session, p.Window)]; ok {
			stages[StageLayoutWindow] = w.LayoutBonus.SameWindow
		}
		if _, ok := activeSessions[p.Session]; ok {
			stages[StageLayoutSession] = w.LayoutBonus.SameSession
		}
		if p.CurrentCommand != "" {
			if bonus, ok := w.CommandCategories[strings.ToLower(p.CurrentCommand)]; ok {
				stages[StageCommand] = bonus
			}
		}
		if adj := adjustments[p.ID]; adj != 0 {
			if adj > 0 {
				stages[StageFeedback] = adj * w.Feedback.Positive
			} else {
				stages[StageFeedback] = adj * w.Feedback.Negative
			}
		}

		var total float64
		var reasons []string
		for _, stage := range stageOrder {
			v, ok := stages[stage]
			if !ok {
				continue
			}
			total += v
			if v != 0 {
				reasons = append(reasons, fmt.Sprintf("%s (%+.3f)", stageLabels[stage], v))
			}
		}

		scored = append(scored, pane.ScoredPane{
			Pane:    p,
			Total:   total,
			Stages:  stages,
			Reasons: reasons,
		})
	}

	sortScored(scored)
	return scored
}

// hintContribution sums weight*multiplier over every hint whose token
// appears case-insensitively in any searchable pane field.
func hintContribution(p pane.Pane, hints []hint.WeightedHint, multiplier float64) float64 {
	if len(hints) == 0 {
		return 0
	}
	fields := searchableFields(p)
	var sum float64
	for _, h := range hints {
		if h.Token == "" {
			continue
		}
		for _, f := range fields {
			if strings.Contains(f, h.Token) {
				sum += h.Weight * multiplier
				break
			}
		}
	}
	return sum
}

func searchableFields(p pane.Pane) []string {
	fields := []string{
		strings.ToLower(p.ID),
		strings.ToLower(p.Title),
		strings.ToLower(p.Window),
		strings.ToLower(p.Session),
	}
	if p.CurrentCommand != "" {
		fields = append(fields, strings.ToLower(p.CurrentCommand))
	}
	for _, tag := range p.Tags {
		fields = append(fields, strings.ToLower(tag))
	}
	return fields
}

func layoutKey(session, window string) string {
	return session + "\x00" + window
}

// sortScored applies the three-level deterministic tie-break: total
// descending, lastUsed descending (absent counts as the lowest possible
// value), then id ascending.
func sortScored(scored []pane.ScoredPane) {
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		au, bu := lastUsedOrMin(a.Pane), lastUsedOrMin(b.Pane)
		if au != bu {
			return au > bu
		}
		return a.Pane.ID < b.Pane.ID
	})
}

func lastUsedOrMin(p pane.Pane) int64 {
	if p.LastUsed == nil {
		return math.MinInt64
	}
	return *p.LastUsed
}
