package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != currentVersion {
		t.Errorf("version = %d, want %d", cfg.Version, currentVersion)
	}
	if cfg.Tmux.Binary != "tmux" {
		t.Errorf("tmux binary = %q, want tmux", cfg.Tmux.Binary)
	}
	if cfg.Weights.Hint != 5.0 {
		t.Errorf("hint weight = %v, want 5", cfg.Weights.Hint)
	}
}

func TestLoad_PartialFileOverlaysDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	raw := `{"weights": {"hint": 9.5}, "logging": {"level": "debug"}}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Weights.Hint != 9.5 {
		t.Errorf("hint weight = %v, want 9.5", cfg.Weights.Hint)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched fields keep their defaults.
	if cfg.Weights.ActivePane != 3.0 {
		t.Errorf("activePane weight = %v, want default 3", cfg.Weights.ActivePane)
	}
	if cfg.Feedback.MaxEntries != 200 {
		t.Errorf("maxEntries = %d, want default 200", cfg.Feedback.MaxEntries)
	}
}

func TestLoad_MalformedFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	cfg := DefaultConfig()
	cfg.Weights.Hint = 7.0
	cfg.Tmux.SocketName = "dev"
	if err := cfg.Save(dir); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Weights.Hint != 7.0 {
		t.Errorf("hint weight = %v, want 7", loaded.Weights.Hint)
	}
	if loaded.Tmux.SocketName != "dev" {
		t.Errorf("socket = %q, want dev", loaded.Tmux.SocketName)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"negative weights allowed", func(c *Config) { c.Weights.ActivePane = -3 }, false},
		{"bad version", func(c *Config) { c.Version = 99 }, true},
		{"zero decay", func(c *Config) { c.Weights.Feedback.DecayMinutes = 0 }, true},
		{"zero max entries", func(c *Config) { c.Feedback.MaxEntries = 0 }, true},
		{"empty binary", func(c *Config) { c.Tmux.Binary = "" }, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuditDir(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if got := cfg.AuditDir("/cfg"); got != "/cfg" {
		t.Errorf("default audit dir = %q, want config dir", got)
	}
	cfg.Audit.Dir = "/elsewhere"
	if got := cfg.AuditDir("/cfg"); got != "/elsewhere" {
		t.Errorf("explicit audit dir = %q, want /elsewhere", got)
	}
}
