// file: middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"english-hub/session"
)

// Helper function to create a test router with session middleware
func setupAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	store := cookie.NewStore([]byte("secret"))
	router.Use(sessions.Sessions("testsession", store))

	router.GET("/set-flag", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Set(session.FlagKey, true)
		_ = s.Save()
		c.String(http.StatusOK, "flag set")
	})
	router.GET("/protected", AuthRequired, func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the protected page")
	})

	return router
}

func sessionCookie(t *testing.T, router *gin.Engine, path string) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	for _, c := range w.Result().Cookies() {
		if c.Name == "testsession" {
			return c
		}
	}
	require.FailNow(t, "no session cookie set by "+path)
	return nil
}

// Test: Unauthenticated users should be redirected to `/login`
func TestAuthRequired_Unauthenticated(t *testing.T) {
	router := setupAuthTestRouter()

	req, _ := http.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code, "Expected 302 Redirect")
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

// Test: a session carrying the flag reaches the protected route
func TestAuthRequired_Authenticated(t *testing.T) {
	router := setupAuthTestRouter()
	cookie := sessionCookie(t, router, "/set-flag")

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Expected 200 OK for authenticated user")
	assert.Contains(t, w.Body.String(), "Welcome to the protected page")
}
