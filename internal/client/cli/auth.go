package cli

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/dossier/internal/client/models"
	"github.com/dmitrijs2005/dossier/internal/client/services"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Sign-up form messages.
const (
	msgNameRequired     = "Name is required."
	msgEmailInvalid     = "Valid email is required."
	msgPasswordShort    = "Password must be at least 6 characters."
	msgPasswordMismatch = "Passwords do not match."
)

const minPasswordLen = 6

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// validateSignUp checks the form fields and returns every problem found, in
// form order.
func validateSignUp(name, email, secret, confirm string) []string {
	var problems []string
	if strings.TrimSpace(name) == "" {
		problems = append(problems, msgNameRequired)
	}
	if strings.TrimSpace(email) == "" || !emailPattern.MatchString(email) {
		problems = append(problems, msgEmailInvalid)
	}
	if utf8.RuneCountInString(secret) < minPasswordLen {
		problems = append(problems, msgPasswordShort)
	}
	if secret != confirm {
		problems = append(problems, msgPasswordMismatch)
	}
	return problems
}

// SignUp prompts for the registration fields and creates the account via
// the session manager, which also signs it in. The form is checked here
// and the session manager is not called when it is invalid.
func (a *App) SignUp(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	secret, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	rank, err := getSimpleText(a.reader, "Enter rank ("+rankChoices()+")", a.out)
	if err != nil {
		return err
	}

	if problems := validateSignUp(name, email, secret, confirm); len(problems) > 0 {
		for _, p := range problems {
			a.println(a.renderer.Result(false, p))
		}
		return nil
	}

	res := a.session.SignUp(ctx, services.SignUpInput{Name: name, Email: email, Secret: secret, Rank: rank})
	a.println(a.renderer.Result(res.Success, res.Message))
	return nil
}

// SignIn prompts for credentials and authenticates.
func (a *App) SignIn(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	secret, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}

	res := a.session.SignIn(ctx, email, secret)
	a.println(a.renderer.Result(res.Success, res.Message))
	return nil
}

// SignOut ends the session. Safe to call when signed out.
func (a *App) SignOut(ctx context.Context) error {
	a.session.SignOut(ctx)
	a.println(a.renderer.Muted("Signed out."))
	return nil
}

func rankChoices() string {
	names := make([]string, len(models.Ranks))
	for i, r := range models.Ranks {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
