package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isConnected() bool
	Connect(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Rent(ctx context.Context) error
	Refresh(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a read–eval–print loop for the rental client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	help     — show available commands
//	connect  — attach the local wallet key
//	list     — print the current listing snapshot
//	add      — list new equipment (interactive prompts)
//	rent     — rent a listing (interactive prompts)
//	refresh  — force a listing refresh outside the poll cadence
//	status   — node health and wallet state
//	exit     — leave the program
//
// Errors returned by command handlers are ignored here; handlers notify the
// user themselves. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("rent> %s", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.isConnected() {
				printlnFn("Available commands: (l)ist, add, rent, refresh, status, exit")
			} else {
				printlnFn("Available commands: connect, (l)ist, refresh, status, exit")
			}

		case "connect":
			_ = a.Connect(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "add":
			_ = a.Add(ctx)

		case "rent":
			_ = a.Rent(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", parts[0])
		}
	}
}
