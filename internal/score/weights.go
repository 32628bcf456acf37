package score

// Weights controls how the scoring stages are combined. All multipliers
// are caller-controlled; the scorer never clamps or validates their
// sign, so negative weights are scored faithfully.
type Weights struct {
	Hint              float64            `json:"hint" mapstructure:"hint"`
	ActivePane        float64            `json:"activePane" mapstructure:"activePane"`
	ActiveWindow      float64            `json:"activeWindow" mapstructure:"activeWindow"`
	ActiveSession     float64            `json:"activeSession" mapstructure:"activeSession"`
	DefaultPane       float64            `json:"defaultPane" mapstructure:"defaultPane"`
	CommandCategories map[string]float64 `json:"commandCategories" mapstructure:"commandCategories"`
	LayoutBonus       LayoutBonus        `json:"layoutBonus" mapstructure:"layoutBonus"`
	Feedback          FeedbackWeights    `json:"feedback" mapstructure:"feedback"`
}

// LayoutBonus rewards panes sharing a window or session with the active
// pane's window or session.
type LayoutBonus struct {
	SameWindow  float64 `json:"sameWindow" mapstructure:"sameWindow"`
	SameSession float64 `json:"sameSession" mapstructure:"sameSession"`
}

// FeedbackWeights scales the time-decayed feedback adjustment.
type FeedbackWeights struct {
	Positive     float64 `json:"positive" mapstructure:"positive"`
	Negative     float64 `json:"negative" mapstructure:"negative"`
	DecayMinutes int     `json:"decayMinutes" mapstructure:"decayMinutes"`
}

// DefaultWeights returns the stock scoring configuration.
func DefaultWeights() Weights {
	return Weights{
		Hint:          5.0,
		ActivePane:    3.0,
		ActiveWindow:  2.0,
		ActiveSession: 1.0,
		DefaultPane:   0.5,
		CommandCategories: map[string]float64{
			"vim":    2.0,
			"nvim":   2.0,
			"emacs":  2.0,
			"ssh":    1.5,
			"node":   1.0,
			"python": 1.0,
			"go":     1.0,
			"htop":   0.5,
			"tail":   0.5,
		},
		LayoutBonus: LayoutBonus{
			SameWindow:  1.0,
			SameSession: 0.5,
		},
		Feedback: FeedbackWeights{
			Positive:     2.0,
			Negative:     2.0,
			DecayMinutes: 30,
		},
	}
}
