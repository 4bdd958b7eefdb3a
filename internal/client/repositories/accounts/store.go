// Package accounts implements the credential and profile store: a single
// JSON table of accounts, keyed by email, kept under one durable key.
//
// Every mutation rewrites the whole table. The table is small and has a
// single writer, so there is no per-account addressing.
package accounts

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dossier/internal/client/models"
	"github.com/dmitrijs2005/dossier/internal/client/repositories/kv"
	"github.com/dmitrijs2005/dossier/internal/common"
	"github.com/dmitrijs2005/dossier/internal/logging"
	"github.com/google/uuid"
)

// table is the decoded form of the common.UsersKey blob.
type table map[string]models.Account

// Store reads and writes accounts through a kv.Store.
type Store struct {
	kv     kv.Store
	logger logging.Logger

	now   func() time.Time
	newID func() string
}

// NewStore returns a Store backed by s.
func NewStore(s kv.Store, logger logging.Logger) *Store {
	return &Store{
		kv:     s,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Register creates an account for email. It fails with
// common.ErrAccountExists if the email is taken and common.ErrInvalidRank
// if rank is not one of models.Ranks. The new profile starts with an empty
// bio, avatar and social links and the default theme.
func (s *Store) Register(ctx context.Context, name, email, secret string, rank models.Rank) (models.Profile, error) {
	rank, err := models.ParseRank(string(rank))
	if err != nil {
		return models.Profile{}, err
	}

	var created models.Account
	err = s.mutate(ctx, func(t table) (bool, error) {
		if _, ok := t[email]; ok {
			return false, common.ErrAccountExists
		}

		now := s.now()
		created = models.Account{
			ID:     s.newID(),
			Secret: secret,
			Profile: models.Profile{
				Name:  name,
				Email: email,
				Rank:  rank,
				Theme: models.DefaultTheme,
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		t[email] = created
		return true, nil
	})
	if err != nil {
		return models.Profile{}, err
	}

	s.logger.Info(ctx, "account registered", "account_id", created.ID, "rank", string(rank))
	return created.Profile, nil
}

// Verify checks secret against the account stored for email. The
// comparison is exact; there is no hashing.
func (s *Store) Verify(ctx context.Context, email, secret string) (models.Profile, error) {
	t, err := s.load(ctx)
	if err != nil {
		return models.Profile{}, err
	}

	acc, ok := t[email]
	if !ok {
		return models.Profile{}, common.ErrNotFound
	}
	if subtle.ConstantTimeCompare([]byte(acc.Secret), []byte(secret)) == 0 {
		s.logger.Warn(ctx, "wrong secret", "account_id", acc.ID)
		return models.Profile{}, common.ErrWrongSecret
	}
	return acc.Profile, nil
}

// Lookup returns the profile stored for email, if any.
func (s *Store) Lookup(ctx context.Context, email string) (models.Profile, bool, error) {
	t, err := s.load(ctx)
	if err != nil {
		return models.Profile{}, false, err
	}
	acc, ok := t[email]
	return acc.Profile, ok, nil
}

// ApplyUpdate merges patch into the profile stored for email and persists
// the result. The bool reports whether an account was found; an unknown
// email is not an error and nothing is written. A patch carrying an unknown
// rank or theme is rejected before anything is read or written.
func (s *Store) ApplyUpdate(ctx context.Context, email string, patch models.ProfilePatch) (models.Profile, bool, error) {
	patch, err := patch.Validate()
	if err != nil {
		return models.Profile{}, false, err
	}

	var (
		merged models.Profile
		found  bool
		id     string
	)
	err = s.mutate(ctx, func(t table) (bool, error) {
		acc, ok := t[email]
		if !ok {
			return false, nil
		}
		found, id = true, acc.ID

		merged = patch.Apply(acc.Profile)
		merged.Email = email
		if patch.IsEmpty() {
			return false, nil
		}

		acc.Profile = merged
		acc.UpdatedAt = s.now()
		t[email] = acc
		return true, nil
	})
	if err != nil {
		return models.Profile{}, false, err
	}

	if found && !patch.IsEmpty() {
		s.logger.Debug(ctx, "profile updated", "account_id", id)
	}
	return merged, found, nil
}

// load reads the whole table. A missing or malformed blob reads as an
// empty table.
func (s *Store) load(ctx context.Context) (table, error) {
	raw, err := s.kv.Get(ctx, common.UsersKey)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	return s.decode(ctx, raw), nil
}

func (s *Store) decode(ctx context.Context, raw []byte) table {
	t := make(table)
	if len(raw) == 0 {
		return t
	}
	if err := json.Unmarshal(raw, &t); err != nil {
		s.logger.Warn(ctx, "account table unreadable, treating as empty", "error", err)
		return make(table)
	}
	if t == nil {
		// the blob was JSON null
		t = make(table)
	}
	for email, acc := range t {
		acc.Profile.Email = email
		acc.Profile.Theme = models.NormalizeTheme(acc.Profile.Theme)
		t[email] = acc
	}
	return t
}

// mutate runs fn against the decoded table and writes it back when fn
// reports a change.
func (s *Store) mutate(ctx context.Context, fn func(t table) (bool, error)) error {
	return kv.Update(ctx, s.kv, common.UsersKey, func(current []byte) ([]byte, bool, error) {
		t := s.decode(ctx, current)

		changed, err := fn(t)
		if err != nil || !changed {
			return nil, false, err
		}

		next, err := json.Marshal(t)
		if err != nil {
			return nil, false, fmt.Errorf("encode accounts: %w", err)
		}
		return next, true, nil
	})
}
