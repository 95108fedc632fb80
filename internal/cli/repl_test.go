package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubExec struct {
	connected bool
	calls     []string
}

func (s *stubExec) isConnected() bool { return s.connected }

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) Connect(ctx context.Context) error { return s.record("connect") }
func (s *stubExec) List(ctx context.Context) error    { return s.record("list") }
func (s *stubExec) Add(ctx context.Context) error     { return s.record("add") }
func (s *stubExec) Rent(ctx context.Context) error    { return s.record("rent") }
func (s *stubExec) Refresh(ctx context.Context) error { return s.record("refresh") }
func (s *stubExec) Status(ctx context.Context) error  { return s.record("status") }

func runScript(t *testing.T, a execIface, script string) []string {
	t.Helper()

	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		for _, arg := range args {
			lines = append(lines, arg.(string))
		}
		return 0, nil
	}
	defer func() { printlnFn = orig }()

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), a, func() string { return "" }, scanner)
	return lines
}

func TestREPL_DispatchesCommands(t *testing.T) {
	exec := &stubExec{connected: true}
	runScript(t, exec, "connect\nlist\nadd\nrent\nrefresh\nstatus\nexit\n")
	assert.Equal(t, []string{"connect", "list", "add", "rent", "refresh", "status"}, exec.calls)
}

func TestREPL_ListShortcut(t *testing.T) {
	exec := &stubExec{}
	runScript(t, exec, "l\nexit\n")
	assert.Equal(t, []string{"list"}, exec.calls)
}

func TestREPL_UnknownCommandReported(t *testing.T) {
	exec := &stubExec{}
	lines := runScript(t, exec, "frobnicate\nexit\n")
	assert.Empty(t, exec.calls)
	assert.Contains(t, lines, "Unknown command:")
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	exec := &stubExec{}
	runScript(t, exec, "list\n") // no exit, scanner just runs out
	assert.Equal(t, []string{"list"}, exec.calls)
}

func TestREPL_SkipsBlankLines(t *testing.T) {
	exec := &stubExec{}
	runScript(t, exec, "\n\nlist\nexit\n")
	assert.Equal(t, []string{"list"}, exec.calls)
}
