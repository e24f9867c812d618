// Package session holds the locally persisted logged-in flag and the gate that reads it.
//
// The flag is a presentation guard only. Nothing here proves identity to the data
// gateway, and whether the hosted backend enforces its own authorization is unknown.
// File: session/gate.go
package session

import (
	"sync"

	"english-hub/logger"
)

// FlagKey is the key under which every store persists the flag.
const FlagKey = "isLoggedIn"

// FlagStore persists the logged-in flag across restarts.
type FlagStore interface {
	LoadFlag() (bool, error)
	SaveFlag(loggedIn bool) error
	ClearFlag() error
}

// Gate decides whether the authenticated views may render.
type Gate struct {
	store FlagStore

	mu       sync.Mutex
	loggedIn bool
	started  bool
}

// NewGate creates a gate over store.
func NewGate(store FlagStore) *Gate {
	return &Gate{store: store}
}

// Start reads the stored flag once. A read failure counts as logged out.
// No remote service is contacted.
func (g *Gate) Start() (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.started {
		return g.loggedIn, nil
	}
	g.started = true

	flag, err := g.store.LoadFlag()
	if err != nil {
		logger.Warn.Printf("Gate.Start: could not read session flag, starting logged out: %v", err)
		g.loggedIn = false
		return false, err
	}
	g.loggedIn = flag
	return flag, nil
}

// Login sets and persists the flag.
func (g *Gate) Login() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.started = true
	g.loggedIn = true
	if err := g.store.SaveFlag(true); err != nil {
		logger.Error.Printf("Gate.Login: failed to persist session flag: %v", err)
		return err
	}
	return nil
}

// Logout clears the flag and its persisted state.
func (g *Gate) Logout() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.started = true
	g.loggedIn = false
	if err := g.store.ClearFlag(); err != nil {
		logger.Error.Printf("Gate.Logout: failed to clear session flag: %v", err)
		return err
	}
	return nil
}

// IsLoggedIn reports the current flag.
func (g *Gate) IsLoggedIn() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loggedIn
}
