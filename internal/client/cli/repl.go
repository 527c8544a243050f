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
	SignUp(ctx context.Context) error
	Logout(ctx context.Context) error
	Consent(ctx context.Context, arg string) error
	Select(ctx context.Context, path string) error
	Drop(ctx context.Context, path string) error
	Upload(ctx context.Context) error
	Summary(ctx context.Context) error
	Save(ctx context.Context, path string) error
	WhoAmI(ctx context.Context) error
	HowItWorks(ctx context.Context) error
	Home(ctx context.Context) error

	// afterCommand runs once per processed line, e.g. to follow a redirect
	// or open a requested sign-in prompt.
	afterCommand(ctx context.Context)
}

const (
	helpLoggedOut = "Available commands: login, signup, how, home, exit"
	helpLoggedIn  = "Available commands: consent [on|off], select <path>, drop <path>, upload, summary, save [path], whoami, logout, how, home, exit"
)

// runREPL starts a simple read–eval–print loop for the MedReport CLI.
//
// It reads a line from reader, takes the first token as the command and the
// rest of the line as its argument (so paths may contain spaces), and
// dispatches to methods on 'a'. The loop exits on EOF or when the user
// types "exit" or "quit".
//
// Prompt & Commands
//
//	Always:
//	  - help                 show available commands
//	  - how                  how it works
//	  - home                 show the landing screen
//	  - exit | quit          leave the program
//
//	Not logged in:
//	  - login | signin       sign in
//	  - signup | register    create an account
//
//	Logged in (the upload commands also prompt for sign-in when needed):
//	  - consent [on|off]     toggle or set HIPAA consent
//	  - select <path>        choose a PDF through the picker
//	  - drop <path>          drop a PDF onto the drop zone (needs consent)
//	  - upload               upload the selected PDF
//	  - summary              show the last summary
//	  - save [path]          save the summary HTML
//	  - whoami               show the signed-in user
//	  - logout               sign out
//
// Handlers print their own errors; the loop only keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("medreport%s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "login", "signin":
			_ = a.Login(ctx)

		case "signup", "register":
			_ = a.SignUp(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "consent":
			_ = a.Consent(ctx, arg)

		case "select", "pick":
			if arg == "" {
				printlnFn("Usage: select <path>")
				continue
			}
			_ = a.Select(ctx, arg)

		case "drop":
			if arg == "" {
				printlnFn("Usage: drop <path>")
				continue
			}
			_ = a.Drop(ctx, arg)

		case "upload":
			_ = a.Upload(ctx)

		case "summary":
			_ = a.Summary(ctx)

		case "save":
			_ = a.Save(ctx, arg)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "how":
			_ = a.HowItWorks(ctx)

		case "home":
			_ = a.Home(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.afterCommand(ctx)
	}
}
