// Package pane defines the shared data model for rankable terminal panes.
package pane

// Pane is an immutable snapshot of one terminal pane at resolution time.
// Snapshots are produced by a pane source per call and never retained
// past the call that fetched them.
type Pane struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Session         string   `json:"session"`
	Window          string   `json:"window"`
	CurrentCommand  string   `json:"currentCommand,omitempty"`
	IsActive        bool     `json:"isActive"`
	IsActiveWindow  bool     `json:"isActiveWindow"`
	IsActiveSession bool     `json:"isActiveSession"`
	LastUsed        *int64   `json:"lastUsed,omitempty"` // unix millis
	Tags            []string `json:"tags,omitempty"`
}

// ScoredPane is a pane plus its computed ranking. Recomputed fresh on
// every resolution call; no ranking state survives between calls.
type ScoredPane struct {
	Pane    Pane               `json:"pane"`
	Total   float64            `json:"total"`
	Stages  map[string]float64 `json:"stages"`
	Reasons []string           `json:"reasons,omitempty"`
}

// Rating classifies a user correction.
type Rating string

const (
	// RatingMatch marks the pane as the one the user meant.
	RatingMatch Rating = "match"
	// RatingMismatch marks the pane as a wrong pick.
	RatingMismatch Rating = "mismatch"
)

// Valid reports whether r is a known rating value.
func (r Rating) Valid() bool {
	return r == RatingMatch || r == RatingMismatch
}

// FeedbackRecord is one timestamped correction. Records are append-only:
// created on each correction, pruned and evicted by the feedback store,
// never mutated in place.
type FeedbackRecord struct {
	PaneID        string `json:"paneId"`
	Rating        Rating `json:"rating"`
	HintSignature string `json:"hintSignature,omitempty"`
	Timestamp     int64  `json:"timestamp"` // unix millis
}
