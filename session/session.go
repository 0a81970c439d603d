package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/fplassist/go-fpl-client/creds"
)

// ErrNoSession is returned when an operation requires a held credential pair
// and none is present.
var ErrNoSession = errors.New("no active session")

// Manager owns the credential pair in memory and mirrors it into a
// creds.Store for durability. It is an explicit instance rather than
// process-wide state so tests can construct one per fixture with an injected
// store.
//
// State machine: Unauthenticated -> (Adopt) -> Authenticated -> (Clear) ->
// Unauthenticated. No other transitions exist.
type Manager struct {
	store     creds.Store
	onCleared func()

	lock sync.RWMutex
	pair creds.Pair
	held bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithClearedHook registers a callback invoked after a held session is
// cleared. The surrounding application decides what to do with it (typically
// routing to re-authentication); the manager itself never navigates.
func WithClearedHook(fn func()) Option {
	return func(m *Manager) {
		m.onCleared = fn
	}
}

// NewManager creates a session manager over the given credential store. The
// session starts empty; call Restore to pick up a persisted pair.
func NewManager(store creds.Store, options ...Option) (*Manager, error) {
	if store == nil {
		return nil, errors.New("[NewManager] credential store is required")
	}

	m := &Manager{store: store}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Restore loads a persisted pair into memory. It is idempotent, performs no
// network call, and never fails: store errors and partial pairs yield an
// empty session.
func (m *Manager) Restore() {
	pair, err := m.store.Load()
	if err != nil || !pair.Valid() {
		return
	}

	m.lock.Lock()
	m.pair = pair
	m.held = true
	m.lock.Unlock()
}

// Adopt installs a new pair in memory and persists it. Concurrent readers
// observe either the previous pair or the new one, never half of each.
func (m *Manager) Adopt(pair creds.Pair) error {
	if !pair.Valid() {
		return errors.New("[Adopt] partial credential pair")
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	m.pair = pair
	m.held = true
	return errors.Wrap(m.store.Save(pair), "[Adopt] store.Save")
}

// Clear drops the pair from memory and from the store. Idempotent; the
// cleared hook fires only when a session was actually held.
func (m *Manager) Clear() {
	m.lock.Lock()
	had := m.held
	m.pair = creds.Pair{}
	m.held = false
	_ = m.store.Delete()
	m.lock.Unlock()

	if had && m.onCleared != nil {
		m.onCleared()
	}
}

// Current returns the held pair, if any. Synchronous and side-effect free.
func (m *Manager) Current() (creds.Pair, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.pair, m.held
}

// Authenticated reports whether an access credential is present.
func (m *Manager) Authenticated() bool {
	_, held := m.Current()
	return held
}

// Claims are display-only fields peeked from the access token. The token is
// parsed without signature verification: the client treats it as opaque for
// all authorization decisions, and verification belongs to the server.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Claims returns the subject and expiry of the held access token, or
// ErrNoSession when none is held.
func (m *Manager) Claims() (Claims, error) {
	pair, held := m.Current()
	if !held {
		return Claims{}, ErrNoSession
	}

	registered := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(pair.Access, &registered); err != nil {
		return Claims{}, errors.Wrap(err, "[Claims] parse access token")
	}

	c := Claims{Subject: registered.Subject}
	if registered.ExpiresAt != nil {
		c.ExpiresAt = registered.ExpiresAt.Time
	}
	return c, nil
}
