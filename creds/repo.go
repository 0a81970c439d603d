package creds

import "errors"

// ErrNotFound is returned by Store.Load when no credential pair is persisted.
var ErrNotFound = errors.New("credential pair not found")

// Store persists the current credential pair across process restarts. The
// pair is the only client-side state the application keeps.
//
// Save must be atomic with respect to concurrent Loads: a reader observes
// either the previous pair or the fully-written new one, never a mix.
type Store interface {
	// Load returns the persisted pair, or ErrNotFound when absent.
	Load() (Pair, error)

	// Save replaces the persisted pair.
	Save(pair Pair) error

	// Delete removes the persisted pair. Deleting an absent pair is not an
	// error.
	Delete() error
}
