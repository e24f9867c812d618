// File: session/cookie_store.go
package session

import (
	"github.com/gin-contrib/sessions"
)

// CookieStore keeps the flag in the browser's gin session cookie.
type CookieStore struct {
	s sessions.Session
}

// NewCookieStore wraps the request's session.
func NewCookieStore(s sessions.Session) *CookieStore {
	return &CookieStore{s: s}
}

// LoadFlag implements FlagStore.
func (c *CookieStore) LoadFlag() (bool, error) {
	flag, _ := c.s.Get(FlagKey).(bool)
	return flag, nil
}

// SaveFlag implements FlagStore.
func (c *CookieStore) SaveFlag(loggedIn bool) error {
	c.s.Set(FlagKey, loggedIn)
	return c.s.Save()
}

// ClearFlag implements FlagStore. The whole cookie session is cleared.
func (c *CookieStore) ClearFlag() error {
	c.s.Clear()
	return c.s.Save()
}
