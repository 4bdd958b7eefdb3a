// Package cli provides the interactive dossier command-line client.
//
// It wires configuration, local storage, the session and preference
// services, and an interactive REPL. On start the persisted session is
// restored, so a user who did not sign out lands straight in their
// profile.
//
// Key features:
//   - Sign up / sign in / sign out
//   - View the personnel card
//   - Edit name, bio, avatar and social links
//   - Switch the display theme, signed in or not
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
