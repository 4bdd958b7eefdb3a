package models

import (
	"fmt"

	"github.com/dmitrijs2005/dossier/internal/common"
)

// ProfilePatch describes a partial profile update. A nil field is left
// untouched; a non-nil field replaces the stored value wholesale, so
// SocialLinks is swapped as a unit rather than merged per platform.
//
// There is no Email field: the email is the account key and never changes.
type ProfilePatch struct {
	Name        *string
	Rank        *Rank
	Bio         *string
	Avatar      *string
	SocialLinks *SocialLinks
	Theme       *Theme
}

// IsEmpty reports whether the patch would change nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Rank == nil && p.Bio == nil &&
		p.Avatar == nil && p.SocialLinks == nil && p.Theme == nil
}

// Apply returns base with the patch's non-nil fields replaced.
func (p ProfilePatch) Apply(base Profile) Profile {
	if p.Name != nil {
		base.Name = *p.Name
	}
	if p.Rank != nil {
		base.Rank = *p.Rank
	}
	if p.Bio != nil {
		base.Bio = *p.Bio
	}
	if p.Avatar != nil {
		base.Avatar = *p.Avatar
	}
	if p.SocialLinks != nil {
		base.SocialLinks = *p.SocialLinks
	}
	if p.Theme != nil {
		base.Theme = *p.Theme
	}
	return base
}

// Validate checks the enumerated fields and returns the patch with Rank in
// canonical form. It fails with common.ErrInvalidRank or
// common.ErrInvalidTheme.
func (p ProfilePatch) Validate() (ProfilePatch, error) {
	if p.Rank != nil {
		r, err := ParseRank(string(*p.Rank))
		if err != nil {
			return ProfilePatch{}, err
		}
		p.Rank = &r
	}
	if p.Theme != nil && !ValidTheme(*p.Theme) {
		return ProfilePatch{}, fmt.Errorf("%w: %q", common.ErrInvalidTheme, *p.Theme)
	}
	return p, nil
}

// Ptr is a small helper for building patches inline:
//
//	models.ProfilePatch{Bio: models.Ptr("Infantry, 3rd platoon")}
func Ptr[T any](v T) *T {
	return &v
}
