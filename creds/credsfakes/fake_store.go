package credsfakes

import (
	"sync"

	"github.com/fplassist/go-fpl-client/creds"
)

var _ creds.Store = (*FakeStore)(nil)

// FakeStore is an in-memory credential store for tests.
type FakeStore struct {
	lock sync.RWMutex
	pair creds.Pair
	held bool

	// Error overrides for exercising failure paths.
	LoadErr   error
	SaveErr   error
	DeleteErr error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (f *FakeStore) Load() (creds.Pair, error) {
	f.lock.RLock()
	defer f.lock.RUnlock()

	if f.LoadErr != nil {
		return creds.Pair{}, f.LoadErr
	}
	if !f.held {
		return creds.Pair{}, creds.ErrNotFound
	}
	return f.pair, nil
}

func (f *FakeStore) Save(pair creds.Pair) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.pair = pair
	f.held = true
	return nil
}

func (f *FakeStore) Delete() error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.pair = creds.Pair{}
	f.held = false
	return nil
}

// Seed installs a pair directly, bypassing Save validation, so tests can set
// up pre-existing (including partial) on-disk state.
func (f *FakeStore) Seed(pair creds.Pair) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.pair = pair
	f.held = true
}
