// Package common defines shared constants and sentinel errors used across
// the dossier client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Account store errors.
	ErrAccountExists = errors.New("account already exists")
	ErrNotFound      = errors.New("not found")
	ErrWrongSecret   = errors.New("wrong secret")

	// Validation errors.
	ErrInvalidRank  = errors.New("invalid rank")
	ErrInvalidTheme = errors.New("invalid theme")

	// Session errors.
	ErrUnauthenticated = errors.New("unauthenticated")
)
