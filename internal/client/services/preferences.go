package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dossier/internal/client/models"
	"github.com/dmitrijs2005/dossier/internal/client/repositories/kv"
	"github.com/dmitrijs2005/dossier/internal/common"
	"github.com/dmitrijs2005/dossier/internal/logging"
)

// ThemeObserver is called with the new theme after it has been saved.
type ThemeObserver func(models.Theme)

type subscription struct {
	id int
	fn ThemeObserver
}

// PreferenceStore persists the display theme. It does not depend on the
// session: the theme can be changed while signed out.
type PreferenceStore struct {
	kv     kv.Store
	logger logging.Logger

	nextID    int
	observers []subscription
}

func NewPreferenceStore(store kv.Store, logger logging.Logger) *PreferenceStore {
	return &PreferenceStore{kv: store, logger: logger}
}

// Theme returns the saved theme, or models.DefaultTheme when nothing valid
// is stored.
func (p *PreferenceStore) Theme(ctx context.Context) models.Theme {
	raw, err := p.kv.Get(ctx, common.ThemeKey)
	if err != nil {
		p.logger.Warn(ctx, "theme read failed, using default", "error", err)
		return models.DefaultTheme
	}
	return models.NormalizeTheme(models.Theme(raw))
}

// SetTheme saves t and then calls every observer, in subscription order,
// before returning.
func (p *PreferenceStore) SetTheme(ctx context.Context, t models.Theme) error {
	if !models.ValidTheme(t) {
		return fmt.Errorf("%w: %q", common.ErrInvalidTheme, t)
	}
	if err := p.kv.Set(ctx, common.ThemeKey, []byte(t)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}

	for _, s := range append([]subscription(nil), p.observers...) {
		s.fn(t)
	}
	return nil
}

// Subscribe registers fn for theme changes and returns a function that
// removes it again.
func (p *PreferenceStore) Subscribe(fn ThemeObserver) (unsubscribe func()) {
	p.nextID++
	id := p.nextID
	p.observers = append(p.observers, subscription{id: id, fn: fn})

	return func() {
		for i, s := range p.observers {
			if s.id == id {
				p.observers = append(p.observers[:i:i], p.observers[i+1:]...)
				return
			}
		}
	}
}
