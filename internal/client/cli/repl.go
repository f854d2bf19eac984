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
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Photos(ctx context.Context, args []string) error
	Events(ctx context.Context) error
	EventInfo(ctx context.Context, args []string) error
	FolderSize(ctx context.Context, args []string) error
}

// runREPL starts a simple read-eval-print loop for the SkyVault CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands that need a session check isLoggedIn first and print a hint
// instead of calling through. Any errors returned by command handlers are
// ignored here; handlers report their own errors. This keeps the REPL loop
// resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sv %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		if !a.isLoggedIn() {
			switch cmd {
			case "help":
				printlnFn("Available commands: login, exit")
				continue
			case "login":
				_ = a.Login(ctx)
				continue
			case "exit", "quit":
				printlnFn("Bye!")
				return
			default:
				printlnFn("Not logged in (type 'login')")
				continue
			}
		}

		switch cmd {
		case "help":
			printlnFn("Available commands: (l)s [uuid], photos [all|years|months|days], events, eventinfo <uuid>, size <uuid>, logout, exit")

		case "login":
			_ = a.Login(ctx)

		case "l", "ls", "list":
			_ = a.List(ctx, args)

		case "photos":
			_ = a.Photos(ctx, args)

		case "events":
			_ = a.Events(ctx)

		case "eventinfo":
			_ = a.EventInfo(ctx, args)

		case "size":
			_ = a.FolderSize(ctx, args)

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
