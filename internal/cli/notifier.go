package cli

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/aptrent/aptrent/internal/faults"
)

// ConsoleNotifier prints user-facing progress and outcome messages. Each
// notification carries a short token so a completion line can be matched to
// its earlier "in progress" line, mirroring the dismissable toasts of a GUI
// client. Raw diagnostics never go through here; the submitter logs those.
type ConsoleNotifier struct {
	out io.Writer
}

func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

func (n *ConsoleNotifier) token() string {
	return uuid.NewString()[:8]
}

func (n *ConsoleNotifier) Loading(msg string) string {
	t := n.token()
	fmt.Fprintf(n.out, "[%s] %s\n", t, msg)
	return t
}

func (n *ConsoleNotifier) Success(msg, token string) {
	if token == "" {
		token = n.token()
	}
	fmt.Fprintf(n.out, "[%s] %s\n", token, msg)
}

func (n *ConsoleNotifier) Fault(f faults.Fault, token string) {
	if token == "" {
		token = n.token()
	}
	fmt.Fprintf(n.out, "[%s] %s\n", token, f.Message)
}
