package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dossier/internal/client/models"
)

// Theme shows the current theme (no args) or switches to args[0]. The
// preference store is the source of truth; when signed in the new value is
// also written to the profile.
func (a *App) Theme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println(fmt.Sprintf("Theme: %s", a.prefs.Theme(ctx)))
		return nil
	}

	t := models.Theme(args[0])
	if !models.ValidTheme(t) {
		a.println(a.renderer.Result(false, fmt.Sprintf("Unknown theme %q (light, dark, camo).", args[0])))
		return nil
	}

	if err := a.prefs.SetTheme(ctx, t); err != nil {
		return err
	}
	if a.session.IsAuthenticated() {
		if err := a.session.UpdateProfile(ctx, models.ProfilePatch{Theme: &t}); err != nil {
			return err
		}
	}

	a.println(a.renderer.Result(true, fmt.Sprintf("Display mode set to %s.", t)))
	return nil
}
