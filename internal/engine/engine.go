// Package engine orchestrates hint interpretation, scoring and feedback
// against a pane source to answer "which pane does the user mean".
package engine

import (
	"context"
	"log/slog"
	"time"

	"paneswitch/internal/config"
	"paneswitch/internal/errors"
	"paneswitch/internal/feedback"
	"paneswitch/internal/hint"
	"paneswitch/internal/pane"
	"paneswitch/internal/score"
	"paneswitch/internal/segment"
)

// PaneSource enumerates candidate panes. Failures propagate to the
// caller unmodified; the engine performs no retries.
type PaneSource interface {
	ListPanes(ctx context.Context) ([]pane.Pane, error)
}

// SessionReporter is an optional extension of PaneSource: an explicit
// "current session" signal used to scope candidates before ranking. An
// empty string means no current session is known.
type SessionReporter interface {
	CurrentSession(ctx context.Context) (string, error)
}

// AdjustmentSource is an optional external feedback signal merged
// additively with the store's own adjustments.
type AdjustmentSource interface {
	Adjustments() map[string]float64
}

// Options carries the engine's injected capabilities.
type Options struct {
	Source    PaneSource
	Segmenter segment.Segmenter
	External  AdjustmentSource // optional
	Logger    *slog.Logger
	Now       func() time.Time // defaults to time.Now
}

// Engine is the composition root. It owns the feedback store for its
// lifetime; panes are borrowed per call and never retained.
type Engine struct {
	source      PaneSource
	interpreter *hint.Interpreter
	store       *feedback.Store
	external    AdjustmentSource
	weights     score.Weights
	logger      *slog.Logger
	now         func() time.Time
}

// New builds an engine from an explicit configuration value and
// capability bundle.
func New(cfg *config.Config, opts Options) *Engine {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	store := feedback.NewStore(feedback.Options{
		TTLMillis:  int64(cfg.Weights.Feedback.DecayMinutes) * 60 * 1000,
		MaxEntries: cfg.Feedback.MaxEntries,
	})
	return &Engine{
		source:      opts.Source,
		interpreter: hint.NewInterpreter(opts.Segmenter),
		store:       store,
		external:    opts.External,
		weights:     cfg.Weights,
		logger:      logger,
		now:         now,
	}
}

// FeedbackReport is a correction attached to a describe request.
type FeedbackReport struct {
	PaneID        string      `json:"paneId"`
	Rating        pane.Rating `json:"rating"`
	HintSignature string      `json:"hintSignature,omitempty"`
}

// Request is one describe call.
type Request struct {
	Hint     string           `json:"paneHint,omitempty"`
	Hints    []hint.ValueHint `json:"paneHints,omitempty"`
	Feedback *FeedbackReport  `json:"feedback,omitempty"`
	Debug    bool             `json:"debug,omitempty"`
}

// Diagnostics is attached to the result when debug output is requested.
type Diagnostics struct {
	Interpretation *hint.Result       `json:"interpretation"`
	Adjustments    map[string]float64 `json:"adjustments,omitempty"`
	Session        string             `json:"session,omitempty"`
}

// Result is the ranked outcome of a describe call.
type Result struct {
	Panes  []pane.ScoredPane `json:"sessionPanes"`
	Issues []string          `json:"issues,omitempty"`
	Debug  *Diagnostics      `json:"debug,omitempty"`
}

// RegisterFeedback validates and stores a correction using the engine's
// logical clock. Invalid reports return InvalidFeedback.
func (e *Engine) RegisterFeedback(report FeedbackReport) error {
	if report.PaneID == "" {
		return errors.NewInvalidFeedbackError("empty paneId")
	}
	if !report.Rating.Valid() {
		return errors.NewInvalidFeedbackError("rating must be match or mismatch")
	}
	e.store.Register(pane.FeedbackRecord{
		PaneID:        report.PaneID,
		Rating:        report.Rating,
		HintSignature: report.HintSignature,
		Timestamp:     e.now().UnixMilli(),
	})
	return nil
}

// Describe ranks the current panes against the request's hints. A
// feedback correction carried by the request is registered before
// adjustments are computed, so it affects this very call.
func (e *Engine) Describe(ctx context.Context, req Request) (*Result, error) {
	panes, err := e.source.ListPanes(ctx)
	if err != nil {
		return nil, err
	}
	if len(panes) == 0 {
		return nil, errors.NewNoCandidatesError("source")
	}

	session := e.currentSession(ctx)
	scoped := scopeToSession(panes, session)
	if len(scoped) == 0 {
		return nil, errors.NewNoCandidatesError("scoping")
	}

	interp, err := e.interpreter.Interpret(ctx, req.Hint, req.Hints)
	if err != nil {
		return nil, err
	}

	if req.Feedback != nil {
		// Intentional immediate registration: a just-reported correction
		// biases the same call.
		if err := e.RegisterFeedback(*req.Feedback); err != nil {
			e.logger.Warn("dropping invalid feedback", "error", err)
		}
	}

	adjustments := e.store.Adjustments(e.now().UnixMilli())
	if e.external != nil {
		for id, v := range e.external.Adjustments() {
			adjustments[id] += v
		}
	}

	scored := score.ScorePanes(scoped, interp.WeightedHints, e.weights, adjustments)
	if len(scored) == 0 {
		return nil, errors.NewNoCandidatesError("scoring")
	}

	e.logger.Debug("describe resolved",
		"panes", len(scored),
		"hints", len(interp.WeightedHints),
		"top", scored[0].Pane.ID,
	)

	res := &Result{Panes: scored, Issues: interp.Issues}
	if req.Debug {
		res.Debug = &Diagnostics{
			Interpretation: interp,
			Adjustments:    adjustments,
			Session:        session,
		}
	}
	return res, nil
}

// currentSession resolves the scoping session: the source's explicit
// signal when available, otherwise empty (scopeToSession then falls back
// to the active-session flags).
func (e *Engine) currentSession(ctx context.Context) string {
	if sr, ok := e.source.(SessionReporter); ok {
		session, err := sr.CurrentSession(ctx)
		if err != nil {
			e.logger.Debug("current session unavailable", "error", err)
			return ""
		}
		return session
	}
	return ""
}

// scopeToSession filters panes to the current session when known, else
// to the set of sessions flagged active, else returns the input as is.
func scopeToSession(panes []pane.Pane, current string) []pane.Pane {
	if current != "" {
		return filterSessions(panes, map[string]struct{}{current: {}})
	}

	active := map[string]struct{}{}
	for _, p := range panes {
		if p.IsActiveSession {
			active[p.Session] = struct{}{}
		}
	}
	if len(active) == 0 {
		return panes
	}
	return filterSessions(panes, active)
}

func filterSessions(panes []pane.Pane, sessions map[string]struct{}) []pane.Pane {
	scoped := make([]pane.Pane, 0, len(panes))
	for _, p := range panes {
		if _, ok := sessions[p.Session]; ok {
			scoped = append(scoped, p)
		}
	}
	return scoped
}

// StoreLen exposes the retained feedback record count for status
// reporting.
func (e *Engine) StoreLen() int {
	return e.store.Len()
}
