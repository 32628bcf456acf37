package envelope

import (
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"
)

func TestBuilder(t *testing.T) {
	t.Parallel()

	resp := New().
		Data(map[string]int{"panes": 3}).
		Warn("HINT_ISSUE", "paneHints[0] was empty after trimming").
		Build()

	if resp.SchemaVersion != CurrentSchemaVersion {
		t.Errorf("schemaVersion = %q", resp.SchemaVersion)
	}
	if len(resp.Warnings) != 1 || resp.Warnings[0].Code != "HINT_ISSUE" {
		t.Errorf("warnings = %+v", resp.Warnings)
	}
	if resp.Error != nil {
		t.Errorf("error = %v, want nil", *resp.Error)
	}
}

func TestIssues(t *testing.T) {
	t.Parallel()

	resp := New().Issues("HINT_ISSUE", []string{"a", "b"}).Build()
	if len(resp.Warnings) != 2 || resp.Warnings[1].Message != "b" {
		t.Errorf("warnings = %+v", resp.Warnings)
	}

	empty := New().Issues("HINT_ISSUE", nil).Build()
	if empty.Warnings != nil {
		t.Errorf("warnings = %+v, want none", empty.Warnings)
	}
}

func TestError(t *testing.T) {
	t.Parallel()

	resp := New().Error(stderrors.New("boom")).Build()
	if resp.Error == nil || *resp.Error != "boom" {
		t.Errorf("error = %v", resp.Error)
	}

	// A nil error leaves the envelope clean.
	clean := New().Error(nil).Build()
	if clean.Error != nil {
		t.Errorf("error = %v, want nil", *clean.Error)
	}
}

func TestJSONShape(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(New().Data("payload").Build())
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, `"schemaVersion":"1.0"`) || !strings.Contains(s, `"data":"payload"`) {
		t.Errorf("json = %s", s)
	}
	if strings.Contains(s, "warnings") || strings.Contains(s, "error") {
		t.Errorf("empty fields should be omitted: %s", s)
	}
}
