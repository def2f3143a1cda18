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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Dogs(ctx context.Context, args []string) error
	AddDog(ctx context.Context) error
	Adopt(ctx context.Context) error
	Adopted(ctx context.Context, args []string) error
	Remove(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from in and dispatches them to a. The
// same reader serves the commands' own prompts. The loop exits on EOF or
// when the user types "exit" or "quit".
//
// Commands
//
//	Not logged in:
//	  - help                          show available commands
//	  - register                      create an account and log in
//	  - login                         authenticate
//	  - exit | quit                   leave the program
//
//	Logged in:
//	  - dogs [adopted=true|false] [p=N]   list dogs you registered
//	  - adddog                        register a dog
//	  - adopt                         adopt a dog by ID
//	  - adopted [p=N]                 list dogs you adopted
//	  - remove                        remove one of your unadopted dogs
//	  - logout                        drop the session
//
// Errors returned by command handlers are ignored here; handlers print
// their own.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("dogs> %s > ", statusFn()))

		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: dogs, adddog, adopt, adopted, remove, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "dogs", "l", "list":
			_ = a.Dogs(ctx, args)

		case "adddog":
			_ = a.AddDog(ctx)

		case "adopt":
			_ = a.Adopt(ctx)

		case "adopted":
			_ = a.Adopted(ctx, args)

		case "remove":
			_ = a.Remove(ctx)

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
