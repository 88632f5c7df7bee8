package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/prescreen/internal/client/guard"
	"github.com/dmitrijs2005/prescreen/internal/client/session"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface of the top-level REPL. *App satisfies
// it; tests provide a stub.
type execIface interface {
	snapshot() session.Session
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	ForgotID(ctx context.Context) error
	List(ctx context.Context) error
	New(ctx context.Context) error
	Open(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
}

// protected commands run only for a signed-in user.
var protected = map[string]bool{
	"l": true, "list": true, "new": true, "open": true, "logout": true,
}

func readCommand(in *bufio.Reader) (string, []string, bool) {
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", nil, false
	}
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil, true
	}
	return parts[0], parts[1:], true
}

// runREPL reads commands from in until EOF, "exit" or "quit".
//
//	Not logged in: help, register, login, forgotid, exit
//	Logged in:     help, (l)ist, new, open <id>, logout, exit
//
// Handler errors are not printed here; handlers report through the
// notifier or print their own hints.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("portal %s> ", statusFn()))
		cmd, args, ok := readCommand(in)
		if !ok {
			return
		}
		if cmd == "" {
			continue
		}

		signedIn := false
		if _, ok := guard.Evaluate(a.snapshot()).(guard.Authenticated); ok {
			signedIn = true
		}
		if protected[cmd] && !signedIn {
			printlnFn("Please login first")
			continue
		}

		switch cmd {
		case "help":
			if signedIn {
				printlnFn("Available commands: (l)ist, new, open <id>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, forgotid, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			if signedIn {
				printlnFn("Already logged in, logout first")
				continue
			}
			_ = a.Login(ctx)

		case "forgotid":
			_ = a.ForgotID(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "new":
			_ = a.New(ctx)

		case "open":
			_ = a.Open(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
