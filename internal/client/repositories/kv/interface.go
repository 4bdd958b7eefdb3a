// Package kv is the durable key-value medium underneath the account table,
// the session pointer and the theme preference.
package kv

import (
	"context"
)

// Store is a byte-oriented key-value store.
//
// Get returns (nil, nil) when the key is absent. Delete of an absent key
// is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// UpdateFunc receives the current value (nil if absent) and returns the
// value to store. Returning write=false leaves the key untouched.
type UpdateFunc func(current []byte) (next []byte, write bool, err error)

// Updater is implemented by stores that can run a read-modify-write of a
// single key atomically.
type Updater interface {
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// Update runs fn against key, atomically if s implements Updater and as a
// plain Get followed by Set otherwise.
func Update(ctx context.Context, s Store, key string, fn UpdateFunc) error {
	if u, ok := s.(Updater); ok {
		return u.Update(ctx, key, fn)
	}

	current, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	next, write, err := fn(current)
	if err != nil || !write {
		return err
	}
	return s.Set(ctx, key, next)
}
