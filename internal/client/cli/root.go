package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if p, ok := a.session.CurrentProfile(); ok {
		s = p.Email + " "
	}
	s = s + string(a.renderer.Theme())
	return fmt.Sprintf("(%s)", s)
}

// Root greets the user and runs the REPL until exit.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to dossier (type 'help' for commands)")
	if p, ok := a.session.CurrentProfile(); ok {
		a.println(a.renderer.Muted(fmt.Sprintf("Signed in as %s %s.", p.Rank, p.Name)))
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
