package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"paneswitch/internal/config"
	"paneswitch/internal/engine"
	"paneswitch/internal/envelope"
	"paneswitch/internal/logging"
	"paneswitch/internal/pane"
	"paneswitch/internal/segment"
)

type fakeSource struct {
	panes []pane.Pane
}

func (f *fakeSource) ListPanes(ctx context.Context) ([]pane.Pane, error) {
	return f.panes, nil
}

func newTestServer(t *testing.T, panes []pane.Pane) *Server {
	t.Helper()
	eng := engine.New(config.DefaultConfig(), engine.Options{
		Source:    &fakeSource{panes: panes},
		Segmenter: segment.NewSplitter(),
		Logger:    logging.NewDiscard(),
	})
	return NewServer("test", eng, nil, logging.NewDiscard())
}

func testServerPanes() []pane.Pane {
	return []pane.Pane{
		{ID: "%1", Title: "editor", Session: "s", Window: "w"},
		{ID: "%2", Title: "dev server", Session: "s", Window: "w"},
	}
}

// runMessages feeds line-delimited requests through the server loop and
// returns the decoded responses.
func runMessages(t *testing.T, s *Server, lines ...string) []Message {
	t.Helper()
	var out bytes.Buffer
	s.SetStdin(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	s.SetStdout(&out)

	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	var responses []Message
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var msg Message
		if err := json.Unmarshal(sc.Bytes(), &msg); err != nil {
			t.Fatalf("bad response line %q: %v", sc.Text(), err)
		}
		responses = append(responses, msg)
	}
	return responses
}

// toolEnvelope extracts the envelope a tools/call response carries as
// text content.
func toolEnvelope(t *testing.T, msg Message) envelope.Response {
	t.Helper()
	result, ok := msg.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("result = %v", msg.Result)
	}
	content := result["content"].([]interface{})
	text := content[0].(map[string]interface{})["text"].(string)

	var resp envelope.Response
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("bad envelope %q: %v", text, err)
	}
	return resp
}

func TestInitializeHandshake(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testServerPanes())
	responses := runMessages(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
	)

	// The notification produces no response.
	if len(responses) != 1 {
		t.Fatalf("got %d responses, want 1", len(responses))
	}
	result := responses[0].Result.(map[string]interface{})
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion = %v", result["protocolVersion"])
	}
	info := result["serverInfo"].(map[string]interface{})
	if info["name"] != "paneswitch" || info["version"] != "test" {
		t.Errorf("serverInfo = %v", info)
	}
}

func TestToolsList(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testServerPanes())
	responses := runMessages(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)

	result := responses[0].Result.(map[string]interface{})
	tools := result["tools"].([]interface{})
	if len(tools) != 3 {
		t.Fatalf("got %d tools, want 3", len(tools))
	}
	names := map[string]bool{}
	for _, raw := range tools {
		names[raw.(map[string]interface{})["name"].(string)] = true
	}
	for _, want := range []string{"describePanes", "reportFeedback", "getStatus"} {
		if !names[want] {
			t.Errorf("tool %s missing from %v", want, names)
		}
	}
}

func TestUnknownMethod(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testServerPanes())
	responses := runMessages(t, s, `{"jsonrpc":"2.0","id":1,"method":"bogus"}`)

	if responses[0].Error == nil || responses[0].Error.Code != MethodNotFound {
		t.Errorf("error = %+v, want method not found", responses[0].Error)
	}
}

func TestDescribePanesTool(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testServerPanes())
	responses := runMessages(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"describePanes","arguments":{"paneHint":"dev server"}}}`,
	)

	resp := toolEnvelope(t, responses[0])
	if resp.Error != nil {
		t.Fatalf("envelope error = %v", *resp.Error)
	}
	data := resp.Data.(map[string]interface{})
	if data["requestId"] == "" {
		t.Error("missing requestId")
	}
	panes := data["sessionPanes"].([]interface{})
	if len(panes) != 2 {
		t.Fatalf("got %d panes, want 2", len(panes))
	}
	top := panes[0].(map[string]interface{})["pane"].(map[string]interface{})
	if top["id"] != "%2" {
		t.Errorf("top pane = %v, want %%2", top["id"])
	}
}

func TestDescribePanesTool_NoCandidatesTravelsInEnvelope(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	responses := runMessages(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"describePanes","arguments":{}}}`,
	)

	// A tool failure is still a JSON-RPC result; the failure rides the
	// envelope.
	if responses[0].Error != nil {
		t.Fatalf("rpc error = %+v, want envelope error", responses[0].Error)
	}
	resp := toolEnvelope(t, responses[0])
	if resp.Error == nil || !strings.Contains(*resp.Error, "NO_CANDIDATES") {
		t.Errorf("envelope error = %v", resp.Error)
	}
}

func TestReportFeedbackTool(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testServerPanes())
	responses := runMessages(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"reportFeedback","arguments":{"paneId":"%1","rating":"match"}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"getStatus","arguments":{}}}`,
	)

	recorded := toolEnvelope(t, responses[0])
	if recorded.Error != nil {
		t.Fatalf("envelope error = %v", *recorded.Error)
	}

	status := toolEnvelope(t, responses[1]).Data.(map[string]interface{})
	if status["feedbackRecords"] != float64(1) {
		t.Errorf("feedbackRecords = %v, want 1", status["feedbackRecords"])
	}
	if status["auditEnabled"] != false {
		t.Errorf("auditEnabled = %v, want false", status["auditEnabled"])
	}
}

func TestReportFeedbackTool_InvalidRating(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testServerPanes())
	responses := runMessages(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"reportFeedback","arguments":{"paneId":"%1","rating":"great"}}}`,
	)

	resp := toolEnvelope(t, responses[0])
	if resp.Error == nil || !strings.Contains(*resp.Error, "INVALID_FEEDBACK") {
		t.Errorf("envelope error = %v", resp.Error)
	}
}

func TestUnknownTool(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testServerPanes())
	responses := runMessages(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"nope","arguments":{}}}`,
	)

	if responses[0].Error == nil || responses[0].Error.Code != MethodNotFound {
		t.Errorf("error = %+v, want method not found", responses[0].Error)
	}
}
