package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"

	"paneswitch/internal/audit"
	"paneswitch/internal/engine"
	"paneswitch/internal/envelope"
	"paneswitch/internal/errors"
	"paneswitch/internal/hint"
	"paneswitch/internal/pane"
)

// toolDescribePanes implements the describePanes tool
func (s *Server) toolDescribePanes(params map[string]interface{}) (*envelope.Response, error) {
	req, err := parseDescribeRequest(params)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	start := time.Now()

	result, err := s.engine.Describe(context.Background(), req)
	if err != nil {
		return nil, err
	}

	s.recordAudit(requestID, req, result, time.Since(start))

	data := map[string]interface{}{
		"requestId":    requestID,
		"sessionPanes": result.Panes,
	}
	if result.Debug != nil {
		data["debug"] = result.Debug
	}

	return envelope.New().
		Data(data).
		Issues("HINT_ISSUE", result.Issues).
		Build(), nil
}

// toolReportFeedback implements the reportFeedback tool
func (s *Server) toolReportFeedback(params map[string]interface{}) (*envelope.Response, error) {
	report, err := parseFeedback(params)
	if err != nil {
		return nil, err
	}
	if err := s.engine.RegisterFeedback(*report); err != nil {
		return nil, err
	}
	return envelope.New().Data(map[string]interface{}{"recorded": true}).Build(), nil
}

// toolGetStatus implements the getStatus tool
func (s *Server) toolGetStatus(params map[string]interface{}) (*envelope.Response, error) {
	return envelope.New().Data(map[string]interface{}{
		"version":         s.version,
		"feedbackRecords": s.engine.StoreLen(),
		"auditEnabled":    s.trail != nil,
	}).Build(), nil
}

// parseDescribeRequest maps loose MCP params onto the engine's typed
// request. Unknown shapes fail at this boundary rather than inside the
// core.
func parseDescribeRequest(params map[string]interface{}) (engine.Request, error) {
	var req engine.Request

	if v, ok := params["paneHint"]; ok {
		str, ok := v.(string)
		if !ok {
			return req, errors.NewInvalidParameterError("paneHint", "expected string")
		}
		req.Hint = str
	}

	if v, ok := params["paneHints"]; ok {
		list, ok := v.([]interface{})
		if !ok {
			return req, errors.NewInvalidParameterError("paneHints", "expected array")
		}
		for _, item := range list {
			switch entry := item.(type) {
			case string:
				req.Hints = append(req.Hints, hint.ValueHint{Value: entry})
			case map[string]interface{}:
				value, _ := entry["value"].(string)
				weight, _ := entry["weight"].(float64)
				req.Hints = append(req.Hints, hint.ValueHint{Value: value, Weight: weight})
			default:
				return req, errors.NewInvalidParameterError("paneHints", "entries must be strings or {value, weight} objects")
			}
		}
	}

	if v, ok := params["feedback"]; ok {
		fbParams, ok := v.(map[string]interface{})
		if !ok {
			return req, errors.NewInvalidParameterError("feedback", "expected object")
		}
		report, err := parseFeedback(fbParams)
		if err != nil {
			return req, err
		}
		req.Feedback = report
	}

	if v, ok := params["debug"].(bool); ok {
		req.Debug = v
	}

	return req, nil
}

// parseFeedback validates a feedback shape at the request boundary, so
// caller bugs surface here instead of being silently dropped by the
// store.
func parseFeedback(params map[string]interface{}) (*engine.FeedbackReport, error) {
	paneID, _ := params["paneId"].(string)
	if paneID == "" {
		return nil, errors.NewInvalidFeedbackError("empty paneId")
	}
	rating, _ := params["rating"].(string)
	if !pane.Rating(rating).Valid() {
		return nil, errors.NewInvalidFeedbackError("rating must be match or mismatch")
	}
	signature, _ := params["hintSignature"].(string)
	return &engine.FeedbackReport{
		PaneID:        paneID,
		Rating:        pane.Rating(rating),
		HintSignature: signature,
	}, nil
}

// recordAudit appends one row to the audit trail if it is enabled.
func (s *Server) recordAudit(requestID string, req engine.Request, result *engine.Result, elapsed time.Duration) {
	if s.trail == nil || len(result.Panes) == 0 {
		return
	}
	top := result.Panes[0]
	err := s.trail.Record(audit.Entry{
		RequestID:  requestID,
		Timestamp:  time.Now().UnixMilli(),
		Hint:       req.Hint,
		TopPane:    top.Pane.ID,
		TopScore:   top.Total,
		PaneCount:  len(result.Panes),
		DurationMs: elapsed.Milliseconds(),
	})
	if err != nil {
		s.logger.Warn("failed to record audit entry", "error", err.Error())
	}
}
