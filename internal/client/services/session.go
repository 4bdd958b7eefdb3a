// Package services contains application services for the dossier client.
// This file defines the session manager: sign-up, sign-in, sign-out and
// profile edits for the one account that is currently signed in.
package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/dossier/internal/client/models"
	"github.com/dmitrijs2005/dossier/internal/client/repositories/kv"
	"github.com/dmitrijs2005/dossier/internal/common"
	"github.com/dmitrijs2005/dossier/internal/logging"
)

// User-facing outcome messages.
const (
	MsgSignedUp       = "Account created successfully!"
	MsgAccountExists  = "An account with this email already exists."
	MsgInvalidRank    = "Rank must be one of Cadet, Soldier, Officer, Commander."
	MsgWelcomeBack    = "Welcome back, soldier!"
	MsgNoAccount      = "No account found with this email."
	MsgWrongPassword  = "Incorrect password."
	MsgStorageFailure = "Storage unavailable, please try again."
)

// AccountStore is the subset of accounts.Store the session manager needs.
type AccountStore interface {
	Register(ctx context.Context, name, email, secret string, rank models.Rank) (models.Profile, error)
	Verify(ctx context.Context, email, secret string) (models.Profile, error)
	Lookup(ctx context.Context, email string) (models.Profile, bool, error)
	ApplyUpdate(ctx context.Context, email string, patch models.ProfilePatch) (models.Profile, bool, error)
}

// Result is what sign-up and sign-in report back to the UI.
type Result struct {
	Success bool
	Message string
}

// SignUpInput carries the registration form fields.
type SignUpInput struct {
	Name   string
	Email  string
	Secret string
	Rank   string
}

// SessionManager tracks the signed-in account. It is either
// unauthenticated (current == nil) or authenticated with a profile.
//
// Only the email is persisted (under common.SessionKey); the profile is
// looked up again on every start.
type SessionManager struct {
	kv       kv.Store
	accounts AccountStore
	logger   logging.Logger

	current *models.Profile
}

// NewSessionManager builds a SessionManager and restores any persisted
// session.
func NewSessionManager(ctx context.Context, store kv.Store, accounts AccountStore, logger logging.Logger) *SessionManager {
	m := &SessionManager{kv: store, accounts: accounts, logger: logger}
	m.Restore(ctx)
	return m
}

// Restore re-reads the persisted session pointer. A missing, malformed or
// dangling pointer leaves the manager unauthenticated; none of these are
// errors.
func (m *SessionManager) Restore(ctx context.Context) {
	m.current = nil

	raw, err := m.kv.Get(ctx, common.SessionKey)
	if err != nil {
		m.logger.Warn(ctx, "session restore: storage error", "error", err)
		return
	}
	if len(raw) == 0 {
		return
	}

	var email string
	if err := json.Unmarshal(raw, &email); err != nil || email == "" {
		m.logger.Debug(ctx, "session restore: malformed session pointer")
		return
	}

	p, ok, err := m.accounts.Lookup(ctx, email)
	if err != nil {
		m.logger.Warn(ctx, "session restore: lookup failed", "error", err)
		return
	}
	if !ok {
		m.logger.Debug(ctx, "session restore: dangling session pointer")
		return
	}
	m.current = &p
}

// SignUp registers a new account and signs it in. On failure nothing is
// persisted and the state is left unchanged.
func (m *SessionManager) SignUp(ctx context.Context, in SignUpInput) Result {
	rank, err := models.ParseRank(in.Rank)
	if err != nil {
		return Result{Message: MsgInvalidRank}
	}

	p, err := m.accounts.Register(ctx, in.Name, in.Email, in.Secret, rank)
	switch {
	case errors.Is(err, common.ErrAccountExists):
		return Result{Message: MsgAccountExists}
	case errors.Is(err, common.ErrInvalidRank):
		return Result{Message: MsgInvalidRank}
	case err != nil:
		m.logger.Error(ctx, "sign-up failed", "error", err)
		return Result{Message: MsgStorageFailure}
	}

	if err := m.persist(ctx, in.Email); err != nil {
		m.logger.Error(ctx, "sign-up: session not persisted", "error", err)
		return Result{Message: MsgStorageFailure}
	}
	m.current = &p
	return Result{Success: true, Message: MsgSignedUp}
}

// SignIn verifies the credentials and, on success, makes the account the
// current one. A failed attempt leaves the previous state in place.
func (m *SessionManager) SignIn(ctx context.Context, email, secret string) Result {
	p, err := m.accounts.Verify(ctx, email, secret)
	switch {
	case errors.Is(err, common.ErrNotFound):
		return Result{Message: MsgNoAccount}
	case errors.Is(err, common.ErrWrongSecret):
		return Result{Message: MsgWrongPassword}
	case err != nil:
		m.logger.Error(ctx, "sign-in failed", "error", err)
		return Result{Message: MsgStorageFailure}
	}

	if err := m.persist(ctx, email); err != nil {
		m.logger.Error(ctx, "sign-in: session not persisted", "error", err)
		return Result{Message: MsgStorageFailure}
	}
	m.current = &p
	return Result{Success: true, Message: MsgWelcomeBack}
}

// SignOut forgets the session, persisted and in memory. It is safe to call
// when nobody is signed in.
func (m *SessionManager) SignOut(ctx context.Context) {
	if err := m.kv.Delete(ctx, common.SessionKey); err != nil {
		m.logger.Warn(ctx, "sign-out: session pointer not cleared", "error", err)
	}
	m.current = nil
}

// UpdateProfile applies patch to the signed-in account. It does nothing
// when unauthenticated. An unknown rank or theme is rejected with
// common.ErrInvalidRank or common.ErrInvalidTheme and leaves the profile
// as it was; otherwise only storage failures are returned.
func (m *SessionManager) UpdateProfile(ctx context.Context, patch models.ProfilePatch) error {
	if m.current == nil {
		return nil
	}
	patch, err := patch.Validate()
	if err != nil {
		return err
	}

	merged, found, err := m.accounts.ApplyUpdate(ctx, m.current.Email, patch)
	if err != nil {
		return err
	}
	if !found {
		// The account vanished underneath us; keep the edit for this run.
		m.logger.Warn(ctx, "profile update: account missing from store")
		merged = patch.Apply(*m.current)
		merged.Email = m.current.Email
	}
	m.current = &merged
	return nil
}

// IsAuthenticated reports whether an account is signed in.
func (m *SessionManager) IsAuthenticated() bool {
	return m.current != nil
}

// CurrentProfile returns a copy of the signed-in profile.
func (m *SessionManager) CurrentProfile() (models.Profile, bool) {
	if m.current == nil {
		return models.Profile{}, false
	}
	return *m.current, true
}

func (m *SessionManager) persist(ctx context.Context, email string) error {
	b, err := json.Marshal(email)
	if err != nil {
		return err
	}
	return m.kv.Set(ctx, common.SessionKey, b)
}
