package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/dossier/internal/client/models"
	"github.com/dmitrijs2005/dossier/internal/client/repositories/kv"
	"github.com/dmitrijs2005/dossier/internal/common"
	"github.com/dmitrijs2005/dossier/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *kv.MemoryStore) {
	t.Helper()
	mem := kv.NewMemoryStore()
	s := NewStore(mem, logging.Nop())
	s.now = func() time.Time { return fixedNow }
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("acc-%d", n)
	}
	return s, mem
}

func rawUsers(t *testing.T, mem *kv.MemoryStore) map[string]models.Account {
	t.Helper()
	b, err := mem.Get(context.Background(), common.UsersKey)
	require.NoError(t, err)
	var out map[string]models.Account
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestRegister_CreatesDefaultProfile(t *testing.T) {
	s, mem := newTestStore(t)

	p, err := s.Register(context.Background(), "Jane", "jane@x.mil", "secret1", models.RankCadet)
	require.NoError(t, err)

	assert.Equal(t, models.Profile{
		Name:  "Jane",
		Email: "jane@x.mil",
		Rank:  models.RankCadet,
		Theme: models.ThemeLight,
	}, p)

	users := rawUsers(t, mem)
	require.Contains(t, users, "jane@x.mil")
	acc := users["jane@x.mil"]
	assert.Equal(t, "acc-1", acc.ID)
	assert.Equal(t, "secret1", acc.Secret)
	assert.Equal(t, fixedNow, acc.CreatedAt)
	assert.Equal(t, p, acc.Profile)
}

func TestRegister_CanonicalizesRank(t *testing.T) {
	s, _ := newTestStore(t)

	p, err := s.Register(context.Background(), "Ann", "ann@x.mil", "pw", "officer")
	require.NoError(t, err)
	assert.Equal(t, models.RankOfficer, p.Rank)
}

func TestRegister_InvalidRank(t *testing.T) {
	s, mem := newTestStore(t)

	_, err := s.Register(context.Background(), "Ann", "ann@x.mil", "pw", "General")
	require.ErrorIs(t, err, common.ErrInvalidRank)

	v, err := mem.Get(context.Background(), common.UsersKey)
	require.NoError(t, err)
	assert.Nil(t, v, "nothing must be written")
}

func TestRegister_DuplicateEmailLeavesFirstUntouched(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "Jane", "jane@x.mil", "secret1", models.RankCadet)
	require.NoError(t, err)
	before := rawUsers(t, mem)

	_, err = s.Register(ctx, "Impostor", "jane@x.mil", "other", models.RankCommander)
	require.ErrorIs(t, err, common.ErrAccountExists)

	assert.Equal(t, before, rawUsers(t, mem))
}

func TestRegister_EmailIsCaseSensitive(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "Jane", "jane@x.mil", "a", models.RankCadet)
	require.NoError(t, err)
	_, err = s.Register(ctx, "Jane", "Jane@x.mil", "b", models.RankCadet)
	require.NoError(t, err)

	_, err = s.Verify(ctx, "Jane@x.mil", "a")
	require.ErrorIs(t, err, common.ErrWrongSecret)
}

func TestRegisterThenVerify_DistinctEmails(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	creds := map[string]string{
		"a@x.mil": "alpha",
		"b@x.mil": "bravo",
		"c@x.mil": "",
		"d@x.mil": "päss wörd",
	}
	for email, secret := range creds {
		_, err := s.Register(ctx, "N", email, secret, models.RankSoldier)
		require.NoError(t, err)
	}
	for email, secret := range creds {
		p, err := s.Verify(ctx, email, secret)
		require.NoError(t, err, email)
		assert.Equal(t, email, p.Email)
	}
}

func TestVerify_Failures(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "Jane", "jane@x.mil", "secret1", models.RankCadet)
	require.NoError(t, err)
	before := rawUsers(t, mem)

	_, err = s.Verify(ctx, "jane@x.mil", "wrong")
	require.ErrorIs(t, err, common.ErrWrongSecret)

	_, err = s.Verify(ctx, "jane@x.mil", "secret1 ")
	require.ErrorIs(t, err, common.ErrWrongSecret)

	_, err = s.Verify(ctx, "nobody@x.mil", "secret1")
	require.ErrorIs(t, err, common.ErrNotFound)

	assert.Equal(t, before, rawUsers(t, mem), "verify never mutates")
}

func TestVerify_EmptyOrCorruptTable(t *testing.T) {
	for name, blob := range map[string][]byte{
		"absent":   nil,
		"null":     []byte("null"),
		"garbage":  []byte("{not json"),
		"wrongTyp": []byte(`["jane@x.mil"]`),
	} {
		t.Run(name, func(t *testing.T) {
			s, mem := newTestStore(t)
			if blob != nil {
				require.NoError(t, mem.Set(context.Background(), common.UsersKey, blob))
			}
			_, err := s.Verify(context.Background(), "jane@x.mil", "x")
			require.ErrorIs(t, err, common.ErrNotFound)
		})
	}
}

func TestRegister_OverCorruptTableStartsFresh(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, common.UsersKey, []byte("{oops")))

	_, err := s.Register(ctx, "Jane", "jane@x.mil", "secret1", models.RankCadet)
	require.NoError(t, err)
	assert.Len(t, rawUsers(t, mem), 1)
}

func TestLookup(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, ok, err := s.Lookup(ctx, "jane@x.mil")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Register(ctx, "Jane", "jane@x.mil", "secret1", models.RankCadet)
	require.NoError(t, err)

	p, ok, err := s.Lookup(ctx, "jane@x.mil")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Jane", p.Name)
}

func TestLookup_RepairsDenormalizedFields(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, common.UsersKey, []byte(
		`{"jane@x.mil":{"password":"p","profile":{"name":"Jane","email":"evil@x.mil","rank":"Cadet","theme":"neon"}}}`)))

	p, ok, err := s.Lookup(ctx, "jane@x.mil")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "jane@x.mil", p.Email)
	assert.Equal(t, models.ThemeLight, p.Theme)
}

func TestApplyUpdate_BioOnly(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "Jane", "jane@x.mil", "secret1", models.RankCadet)
	require.NoError(t, err)
	_, _, err = s.ApplyUpdate(ctx, "jane@x.mil", models.ProfilePatch{
		SocialLinks: &models.SocialLinks{LinkedIn: "https://linkedin.com/in/jane"},
	})
	require.NoError(t, err)
	before := rawUsers(t, mem)["jane@x.mil"].Profile

	s.now = func() time.Time { return fixedNow.Add(time.Hour) }
	got, found, err := s.ApplyUpdate(ctx, "jane@x.mil", models.ProfilePatch{Bio: models.Ptr("x")})
	require.NoError(t, err)
	require.True(t, found)

	want := before
	want.Bio = "x"
	assert.Equal(t, want, got)

	acc := rawUsers(t, mem)["jane@x.mil"]
	assert.Equal(t, want, acc.Profile)
	assert.Equal(t, fixedNow.Add(time.Hour), acc.UpdatedAt)
	assert.Equal(t, fixedNow, acc.CreatedAt)
	assert.Equal(t, "secret1", acc.Secret)
}

func TestApplyUpdate_UnknownEmailIsNoop(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	p, found, err := s.ApplyUpdate(ctx, "ghost@x.mil", models.ProfilePatch{Bio: models.Ptr("boo")})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, models.Profile{}, p)

	v, err := mem.Get(ctx, common.UsersKey)
	require.NoError(t, err)
	assert.Nil(t, v, "nothing must be written")
}

func TestApplyUpdate_EmptyPatchDoesNotWrite(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "Jane", "jane@x.mil", "secret1", models.RankCadet)
	require.NoError(t, err)
	before := rawUsers(t, mem)

	s.now = func() time.Time { return fixedNow.Add(time.Hour) }
	p, found, err := s.ApplyUpdate(ctx, "jane@x.mil", models.ProfilePatch{})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Jane", p.Name)
	assert.Equal(t, before, rawUsers(t, mem))
}

func TestApplyUpdate_ThemeAndRank(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "Jane", "jane@x.mil", "secret1", models.RankCadet)
	require.NoError(t, err)

	p, _, err := s.ApplyUpdate(ctx, "jane@x.mil", models.ProfilePatch{
		Theme: models.Ptr(models.ThemeCamo),
		Rank:  models.Ptr(models.RankOfficer),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ThemeCamo, p.Theme)
	assert.Equal(t, models.RankOfficer, p.Rank)

	p, err = s.Verify(ctx, "jane@x.mil", "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.ThemeCamo, p.Theme)
}

func TestApplyUpdate_RejectsOutOfEnumValues(t *testing.T) {
	tests := []struct {
		name    string
		patch   models.ProfilePatch
		wantErr error
	}{
		{"rank", models.ProfilePatch{Rank: models.Ptr(models.Rank("General"))}, common.ErrInvalidRank},
		{"theme", models.ProfilePatch{Theme: models.Ptr(models.Theme("neon"))}, common.ErrInvalidTheme},
		{"both with valid bio", models.ProfilePatch{
			Bio:   models.Ptr("x"),
			Rank:  models.Ptr(models.Rank("General")),
			Theme: models.Ptr(models.Theme("neon")),
		}, common.ErrInvalidRank},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, mem := newTestStore(t)
			ctx := context.Background()
			_, err := s.Register(ctx, "Jane", "jane@x.mil", "secret1", models.RankCadet)
			require.NoError(t, err)
			before := rawUsers(t, mem)

			p, found, err := s.ApplyUpdate(ctx, "jane@x.mil", tc.patch)
			require.ErrorIs(t, err, tc.wantErr)
			assert.False(t, found)
			assert.Equal(t, models.Profile{}, p)
			assert.Equal(t, before, rawUsers(t, mem), "nothing must be written")
		})
	}
}

func TestApplyUpdate_CanonicalizesRank(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	_, err := s.Register(ctx, "Jane", "jane@x.mil", "secret1", models.RankCadet)
	require.NoError(t, err)

	p, _, err := s.ApplyUpdate(ctx, "jane@x.mil", models.ProfilePatch{Rank: models.Ptr(models.Rank("commander"))})
	require.NoError(t, err)
	assert.Equal(t, models.RankCommander, p.Rank)
	assert.Equal(t, models.RankCommander, rawUsers(t, mem)["jane@x.mil"].Profile.Rank)
}

// failingKV fails every call with err.
type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingKV) Set(context.Context, string, []byte) error   { return f.err }
func (f failingKV) Delete(context.Context, string) error        { return f.err }

func TestStorageErrorsPropagate(t *testing.T) {
	ioErr := errors.New("disk gone")
	s := NewStore(failingKV{err: ioErr}, logging.Nop())
	ctx := context.Background()

	_, err := s.Register(ctx, "Jane", "jane@x.mil", "secret1", models.RankCadet)
	require.ErrorIs(t, err, ioErr)

	_, err = s.Verify(ctx, "jane@x.mil", "secret1")
	require.ErrorIs(t, err, ioErr)
	require.NotErrorIs(t, err, common.ErrNotFound)

	_, _, err = s.Lookup(ctx, "jane@x.mil")
	require.ErrorIs(t, err, ioErr)

	_, _, err = s.ApplyUpdate(ctx, "jane@x.mil", models.ProfilePatch{Bio: models.Ptr("x")})
	require.ErrorIs(t, err, ioErr)
}

func TestStore_OverSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := kv.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(kv.NewSQLiteStore(db), logging.Nop())

	_, err = s.Register(ctx, "Jane", "jane@x.mil", "secret1", models.RankCadet)
	require.NoError(t, err)
	_, err = s.Register(ctx, "Jane", "jane@x.mil", "secret1", models.RankCadet)
	require.ErrorIs(t, err, common.ErrAccountExists)

	_, _, err = s.ApplyUpdate(ctx, "jane@x.mil", models.ProfilePatch{Avatar: models.Ptr("https://img.example/jane.png")})
	require.NoError(t, err)

	p, err := s.Verify(ctx, "jane@x.mil", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/jane.png", p.Avatar)
}
