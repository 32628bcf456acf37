package mcp

// Tool represents a paneswitch tool exposed via MCP
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// toolDefinitions returns all tool definitions
func (s *Server) toolDefinitions() []Tool {
	return []Tool{
		{
			Name: "describePanes",
			Description: "Rank the current tmux panes against a free-text or structured hint " +
				"and return an explained, scored list. Optionally fold in a feedback " +
				"correction from a previous pick.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paneHint": map[string]interface{}{
						"type":        "string",
						"description": "Free-text description of the pane the user means",
					},
					"paneHints": map[string]interface{}{
						"type":        "array",
						"description": "Pre-weighted structured hints; strings or {value, weight} objects",
						"items": map[string]interface{}{
							"type": []string{"string", "object"},
						},
					},
					"feedback": map[string]interface{}{
						"type":        "object",
						"description": "Correction for a previous pick",
						"properties": map[string]interface{}{
							"paneId": map[string]interface{}{"type": "string"},
							"rating": map[string]interface{}{
								"type": "string",
								"enum": []string{"match", "mismatch"},
							},
							"hintSignature": map[string]interface{}{"type": "string"},
						},
						"required": []string{"paneId", "rating"},
					},
					"debug": map[string]interface{}{
						"type":        "boolean",
						"description": "Attach hint interpretation and adjustment diagnostics",
					},
				},
			},
		},
		{
			Name:        "reportFeedback",
			Description: "Record whether a previously described pane was the right pick",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paneId": map[string]interface{}{"type": "string"},
					"rating": map[string]interface{}{
						"type": "string",
						"enum": []string{"match", "mismatch"},
					},
					"hintSignature": map[string]interface{}{"type": "string"},
				},
				"required": []string{"paneId", "rating"},
			},
		},
		{
			Name:        "getStatus",
			Description: "Get paneswitch server status: version, feedback store size, audit state",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// registerTools wires tool names to their handlers.
func (s *Server) registerTools() {
	s.tools["describePanes"] = s.toolDescribePanes
	s.tools["reportFeedback"] = s.toolReportFeedback
	s.tools["getStatus"] = s.toolGetStatus
}
