package tmux

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"paneswitch/internal/config"
	"paneswitch/internal/errors"
	"paneswitch/internal/logging"
)

func newTestClient(out string, err error) (*Client, *[][]string) {
	var calls [][]string
	c := NewClient(config.TmuxConfig{Binary: "tmux"}, logging.NewDiscard())
	c.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, append([]string{name}, args...))
		return []byte(out), err
	}
	return c, &calls
}

func TestListPanes(t *testing.T) {
	t.Parallel()

	out := strings.Join([]string{
		"%1\teditor\twork\tcode\tnvim\t1\t1\t1\t1700000000",
		"%2\tdev server\twork\trun\tnode\t0\t0\t1\t1699999000",
		"%3\t\tother\tmisc\tbash\t0\t0\t0\t0",
		"",
	}, "\n")
	c, _ := newTestClient(out, nil)

	panes, err := c.ListPanes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(panes) != 3 {
		t.Fatalf("got %d panes, want 3", len(panes))
	}

	p := panes[0]
	if p.ID != "%1" || p.Title != "editor" || p.Session != "work" || p.Window != "code" {
		t.Errorf("pane = %+v", p)
	}
	if p.CurrentCommand != "nvim" || !p.IsActive || !p.IsActiveWindow || !p.IsActiveSession {
		t.Errorf("flags/command = %+v", p)
	}
	if p.LastUsed == nil || *p.LastUsed != 1700000000*1000 {
		t.Errorf("lastUsed = %v, want epoch millis", p.LastUsed)
	}

	// Zero activity means no lastUsed signal; empty title is fine.
	if panes[2].LastUsed != nil {
		t.Errorf("pane with zero activity should have nil lastUsed")
	}
}

func TestListPanes_SkipsMalformedLines(t *testing.T) {
	t.Parallel()

	out := "garbage line\n%1\tt\ts\tw\tbash\t0\t0\t0\t0\n\tmissing-id\ts\tw\tbash\t0\t0\t0\t0\n"
	c, _ := newTestClient(out, nil)

	panes, err := c.ListPanes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(panes) != 1 || panes[0].ID != "%1" {
		t.Errorf("panes = %+v, want just %%1", panes)
	}
}

func TestListPanes_ServerUnreachable(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient("", stderrors.New("no server running"))
	_, err := c.ListPanes(context.Background())
	if !errors.HasCode(err, errors.MultiplexerUnavailable) {
		t.Fatalf("err = %v, want MULTIPLEXER_UNAVAILABLE", err)
	}
}

func TestListPanes_EmptyOutput(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient("", nil)
	panes, err := c.ListPanes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(panes) != 0 {
		t.Errorf("panes = %+v, want none", panes)
	}
}

func TestCurrentSession(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient("work\n", nil)
	session, err := c.CurrentSession(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if session != "work" {
		t.Errorf("session = %q, want work", session)
	}
}

func TestCurrentSession_DetachedIsNotAnError(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient("", stderrors.New("no current client"))
	session, err := c.CurrentSession(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if session != "" {
		t.Errorf("session = %q, want empty", session)
	}
}

func TestSocketNamePrependsArgs(t *testing.T) {
	t.Parallel()

	c := NewClient(config.TmuxConfig{Binary: "tmux", SocketName: "dev"}, logging.NewDiscard())
	var got []string
	c.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		got = append([]string{name}, args...)
		return nil, nil
	}

	if _, err := c.ListPanes(context.Background()); err != nil {
		t.Fatal(err)
	}
	want := []string{"tmux", "-L", "dev", "list-panes", "-a", "-F", listFormat}
	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
