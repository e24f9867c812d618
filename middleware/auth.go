// Package middleware provides request filters for the web surface.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"english-hub/logger"
	"english-hub/session"
)

// -------------- authentication middleware --------------

// AuthRequired lets the request through only when the session cookie carries the
// logged-in flag; otherwise it redirects to /login.
//
// The flag decides what is rendered. It is not a credential.
func AuthRequired(c *gin.Context) {
	gate := session.NewGate(session.NewCookieStore(sessions.Default(c)))
	loggedIn, err := gate.Start()
	if err != nil || !loggedIn {
		logger.Debug.Printf("AuthRequired: no session flag for %s; redirecting to /login", c.Request.URL.Path)
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	c.Next()
}
