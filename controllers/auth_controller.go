// file: controllers/auth_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"english-hub/logger"
	"english-hub/middleware"
	"english-hub/session"
	"english-hub/workspace"
)

// AuthController serves the login screen and toggles the session flag.
type AuthController struct {
	// PassphraseHash is an optional bcrypt hash the login form must match.
	PassphraseHash string
	Registry       *workspace.Registry
}

// NewAuthController creates an AuthController.
func NewAuthController(passphraseHash string, reg *workspace.Registry) *AuthController {
	return &AuthController{PassphraseHash: passphraseHash, Registry: reg}
}

// checkPasswordHash verifies if the provided plain-text password matches the stored hashed password.
func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func gateFor(c *gin.Context) *session.Gate {
	return session.NewGate(session.NewCookieStore(sessions.Default(c)))
}

// ShowLoginPage renders the login form, or sends a logged-in viewer home.
func (ac *AuthController) ShowLoginPage(c *gin.Context) {
	if loggedIn, _ := gateFor(c).Start(); loggedIn {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"RequirePassphrase": ac.PassphraseHash != "",
	})
}

// PerformLogin sets the session flag. No identity is checked unless a passphrase is configured.
func (ac *AuthController) PerformLogin(c *gin.Context) {
	if ac.PassphraseHash != "" && !checkPasswordHash(c.PostForm("passphrase"), ac.PassphraseHash) {
		logger.Warn.Println("PerformLogin: incorrect passphrase")
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"RequirePassphrase": true,
			"Error":             "Incorrect passphrase.",
		})
		return
	}

	if err := gateFor(c).Login(); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"RequirePassphrase": ac.PassphraseHash != "",
			"Error":             "Internal error, please try again.",
		})
		return
	}

	logger.Info.Println("PerformLogin: session flag set")
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session and forgets the viewer's workspace.
func (ac *AuthController) Logout(c *gin.Context) {
	id, _ := sessions.Default(c).Get(middleware.WorkspaceSessionKey).(string)

	if err := gateFor(c).Logout(); err != nil {
		logger.Error.Printf("Logout: Error saving session during logout: %v", err)
	} else {
		logger.Info.Println("Logout: Session cleared successfully")
	}
	if id != "" && ac.Registry != nil {
		ac.Registry.Drop(id)
	}

	c.Redirect(http.StatusFound, "/login")
}
