package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/dossier/internal/common"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	SignUp(ctx context.Context) error
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	Profile(ctx context.Context) error
	EditName(ctx context.Context) error
	EditBio(ctx context.Context) error
	EditAvatar(ctx context.Context) error
	EditSocial(ctx context.Context) error
	Theme(ctx context.Context, args []string) error
}

const (
	helpSignedOut = "Available commands: signup, signin, theme [light|dark|camo], exit"
	helpSignedIn  = "Available commands: profile, name, bio, avatar, social, theme [light|dark|camo], signout, exit"
)

// runREPL starts a simple read-eval-print loop for the dossier CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Signed out:
//	  - help                  : show available commands
//	  - signup | register     : create an account and sign in
//	  - signin | login        : authenticate
//	  - theme [name]          : show or change the display theme
//	  - exit | quit           : leave the program
//
//	Signed in:
//	  - profile | whoami      : show the personnel card
//	  - name, bio, avatar     : edit a profile field
//	  - social                : edit a social link
//	  - theme [name]          : change the display theme (also saved to the profile)
//	  - signout | logout      : sign out
//	  - exit | quit           : leave the program
//
// Errors returned by command handlers are printed and the loop goes on;
// common.ErrUnauthenticated is shown as a hint to sign in.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "dossier %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, helpSignedIn)
			} else {
				fmt.Fprintln(out, helpSignedOut)
			}

		case "signup", "register":
			cmdErr = a.SignUp(ctx)

		case "signin", "login":
			cmdErr = a.SignIn(ctx)

		case "signout", "logout":
			cmdErr = a.SignOut(ctx)

		case "theme":
			cmdErr = a.Theme(ctx, args)

		case "profile", "whoami":
			cmdErr = requireLogin(ctx, a, a.Profile)

		case "name":
			cmdErr = requireLogin(ctx, a, a.EditName)

		case "bio":
			cmdErr = requireLogin(ctx, a, a.EditBio)

		case "avatar":
			cmdErr = requireLogin(ctx, a, a.EditAvatar)

		case "social":
			cmdErr = requireLogin(ctx, a, a.EditSocial)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		switch {
		case errors.Is(cmdErr, common.ErrUnauthenticated):
			fmt.Fprintln(out, "Sign in first (type 'signin').")
		case cmdErr != nil:
			fmt.Fprintln(out, "error:", cmdErr)
		}
	}
}

// requireLogin runs fn only for a signed-in user and returns
// common.ErrUnauthenticated otherwise.
func requireLogin(ctx context.Context, a execIface, fn func(context.Context) error) error {
	if !a.isLoggedIn() {
		return common.ErrUnauthenticated
	}
	return fn(ctx)
}
