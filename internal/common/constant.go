// Package common contains shared constants and sentinel errors used across
// dossier components.
package common

// Durable medium keys. Values are kept byte-compatible with the browser
// portal's localStorage layout so an exported snapshot can be imported as is.
const (
	// UsersKey holds the JSON account table: email -> account.
	UsersKey = "army_users"

	// SessionKey holds the JSON-encoded email of the signed-in account.
	SessionKey = "army_session"

	// ThemeKey holds the display theme as plain text.
	ThemeKey = "army_theme"
)
