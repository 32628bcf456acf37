// Package tmux enumerates panes from a live tmux server. It is a thin
// I/O adapter: all ranking logic lives in the engine.
package tmux

import (
	"context"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"paneswitch/internal/config"
	"paneswitch/internal/errors"
	"paneswitch/internal/pane"
)

// runner abstracts command execution for testing.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Client lists panes via the tmux binary.
type Client struct {
	binary string
	socket string
	run    runner
	logger *slog.Logger
}

// NewClient builds a pane source from the tmux configuration.
func NewClient(cfg config.TmuxConfig, logger *slog.Logger) *Client {
	return &Client{
		binary: cfg.Binary,
		socket: cfg.SocketName,
		run:    execRunner,
		logger: logger,
	}
}

// listFormat pulls one tab-separated line per pane. window_activity is
// epoch seconds of the window's last activity.
const listFormat = "#{pane_id}\t#{pane_title}\t#{session_name}\t#{window_name}\t" +
	"#{pane_current_command}\t#{?pane_active,1,0}\t#{?window_active,1,0}\t" +
	"#{?session_attached,1,0}\t#{window_activity}"

// ListPanes enumerates every pane on the server. An unreachable server
// yields MULTIPLEXER_UNAVAILABLE.
func (c *Client) ListPanes(ctx context.Context) ([]pane.Pane, error) {
	out, err := c.run(ctx, c.binary, c.args("list-panes", "-a", "-F", listFormat)...)
	if err != nil {
		return nil, errors.NewMultiplexerError(err)
	}

	var panes []pane.Pane
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if line == "" {
			continue
		}
		p, ok := c.parseLine(line)
		if !ok {
			c.logger.Warn("skipping malformed list-panes line", "line", line)
			continue
		}
		panes = append(panes, p)
	}
	return panes, nil
}

// CurrentSession reports the session of the attached client, or "" when
// no client is attached. Being detached is not an error.
func (c *Client) CurrentSession(ctx context.Context) (string, error) {
	out, err := c.run(ctx, c.binary, c.args("display-message", "-p", "#{client_session}")...)
	if err != nil {
		c.logger.Debug("no attached tmux client", "error", err)
		return "", nil
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *Client) args(args ...string) []string {
	if c.socket == "" {
		return args
	}
	return append([]string{"-L", c.socket}, args...)
}

func (c *Client) parseLine(line string) (pane.Pane, bool) {
	fields := strings.Split(line, "\t")
	if len(fields) != 9 {
		return pane.Pane{}, false
	}

	p := pane.Pane{
		ID:              fields[0],
		Title:           fields[1],
		Session:         fields[2],
		Window:          fields[3],
		CurrentCommand:  fields[4],
		IsActive:        fields[5] == "1",
		IsActiveWindow:  fields[6] == "1",
		IsActiveSession: fields[7] == "1",
	}
	if p.ID == "" {
		return pane.Pane{}, false
	}
	if secs, err := strconv.ParseInt(fields[8], 10, 64); err == nil && secs > 0 {
		millis := secs * 1000
		p.LastUsed = &millis
	}
	return p, true
}
