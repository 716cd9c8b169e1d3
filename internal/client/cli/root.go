package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

func (a *App) getStatus() string {
	if a.username != "" {
		return fmt.Sprintf("(%s)", a.username)
	}
	if a.isLoggedIn() {
		return "(logged in)"
	}
	return ""
}

// Root runs the command loop until EOF or an explicit exit.
//
// Commands when not logged in: register, login, passcode, chpass, exit.
// Commands when logged in: whoami, chpass, logout, exit.
// Handlers print their own errors; the loop only routes.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to EBBS CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("ebbs %s> ", a.getStatus())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, chpass, logout, exit")
			} else {
				printlnFn("Available commands: register, login, passcode, chpass, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "passcode":
			_ = a.RequestPasscode(ctx)

		case "chpass":
			_ = a.ChangePassword(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

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
