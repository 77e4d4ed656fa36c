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
	Status(ctx context.Context) error
	Setup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Upload(ctx context.Context) error
	Resolve(ctx context.Context) error
	Screens(ctx context.Context) error
	Rotate(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the admin console.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("signage> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: status, upload, resolve, screens, rotate, logout, exit")
			} else {
				printlnFn("Available commands: status, setup, login, resolve, screens, exit")
			}
		case "status":
			_ = a.Status(ctx)
		case "setup":
			_ = a.Setup(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "upload":
			if !a.isLoggedIn() {
				printlnFn("Log in first.")
				continue
			}
			_ = a.Upload(ctx)
		case "resolve":
			_ = a.Resolve(ctx)
		case "screens":
			_ = a.Screens(ctx)
		case "rotate":
			if !a.isLoggedIn() {
				printlnFn("Log in first.")
				continue
			}
			_ = a.Rotate(ctx)
		case "exit", "quit":
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
