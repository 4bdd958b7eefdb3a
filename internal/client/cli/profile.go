package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dossier/internal/client/models"
	"github.com/dmitrijs2005/dossier/internal/common"
)

// Profile prints the personnel card of the signed-in account.
func (a *App) Profile(ctx context.Context) error {
	p, ok := a.session.CurrentProfile()
	if !ok {
		return common.ErrUnauthenticated
	}
	a.println(a.renderer.Profile(p))
	return nil
}

func (a *App) EditName(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter new name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		a.println(a.renderer.Result(false, "Name cannot be empty."))
		return nil
	}
	return a.update(ctx, models.ProfilePatch{Name: &name}, "Name updated.")
}

func (a *App) EditBio(ctx context.Context) error {
	bio, err := getMultiline(a.reader, "Enter bio", a.out)
	if err != nil {
		return err
	}
	return a.update(ctx, models.ProfilePatch{Bio: &bio}, "Bio updated.")
}

// EditAvatar sets the avatar URI. An empty line clears it.
func (a *App) EditAvatar(ctx context.Context) error {
	uri, err := getSimpleText(a.reader, "Enter avatar URL (empty to clear)", a.out)
	if err != nil {
		return err
	}
	return a.update(ctx, models.ProfilePatch{Avatar: &uri}, "Avatar updated.")
}

// EditSocial changes one platform's link. The whole link set is written
// back as one value.
func (a *App) EditSocial(ctx context.Context) error {
	current, ok := a.session.CurrentProfile()
	if !ok {
		return common.ErrUnauthenticated
	}

	name, err := getSimpleText(a.reader, "Platform (linkedin, instagram, facebook, twitter)", a.out)
	if err != nil {
		return err
	}
	platform, ok := models.ParsePlatform(name)
	if !ok {
		a.println(a.renderer.Result(false, fmt.Sprintf("Unknown platform %q.", name)))
		return nil
	}

	url, err := getSimpleText(a.reader, "Enter URL (empty to clear)", a.out)
	if err != nil {
		return err
	}

	links := current.SocialLinks.With(platform, url)
	return a.update(ctx, models.ProfilePatch{SocialLinks: &links}, "Comms updated.")
}

func (a *App) update(ctx context.Context, patch models.ProfilePatch, done string) error {
	if err := a.session.UpdateProfile(ctx, patch); err != nil {
		return err
	}
	a.println(a.renderer.Result(true, done))
	return nil
}
