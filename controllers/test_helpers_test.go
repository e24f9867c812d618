// file: controllers/test_helpers_test.go
package controllers

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"english-hub/gateway"
	"english-hub/services"
	"english-hub/session"
	"english-hub/workspace"
)

// testApp is a router wired like the real server, backed by the in-memory gateway.
type testApp struct {
	router   *gin.Engine
	gw       *gateway.Memory
	registry *workspace.Registry
	cookies  []*http.Cookie
}

// setupTestRouter creates a new Gin engine with session middleware and fake HTML templates.
func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Set up sessions with cookie store.
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", store))

	// Create minimal templates to avoid panics during testing.
	tmpDir := t.TempDir()
	if err := createDummyTemplates(tmpDir); err != nil {
		t.Fatalf("Failed to create dummy templates: %v", err)
	}
	router.LoadHTMLGlob(filepath.Join(tmpDir, "*.html"))
	return router
}

// createDummyTemplates writes a set of minimal HTML templates to the provided directory.
func createDummyTemplates(dir string) error {
	templates := map[string]string{
		"login.html":     `<html><body>login|{{.RequirePassphrase}}|{{.Error}}</body></html>`,
		"home.html":      `<html><body>home|{{range .Clubs}}{{.ID}};{{end}}</body></html>`,
		"not_found.html": `<html><body>Club not found: {{.ClubID}}</body></html>`,
		"club.html": `<html><body>club|{{.Club.Name}}|feed:{{range .Activities}}[{{.Title}}:{{.Thread.Expanded}}:{{.Thread.Count}}]{{end}}` +
			`|upload:{{.Upload.State}}:{{.Upload.Error}}|comments:{{range .CommentErrors}}{{.}};{{end}}</body></html>`,
	}

	for name, content := range templates {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

func newTestApp(t *testing.T, passphraseHash string) *testApp {
	t.Helper()
	gw := gateway.NewMemory()
	reg := workspace.NewRegistry(workspace.Deps{
		Gateway: gw,
		Upload:  services.UploadOptions{RequireTitle: true},
	})
	router := setupTestRouter(t)
	RegisterRoutes(router, Routes{
		Auth:     NewAuthController(passphraseHash, reg),
		Pages:    NewPageController("http://hub.test", ""),
		Uploads:  NewUploadController(),
		Comments: NewCommentController(),
		Registry: reg,
	})
	return &testApp{router: router, gw: gw, registry: reg}
}

// do sends a request carrying the app's cookie jar and keeps any cookies set in reply.
func (a *testApp) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	for _, c := range a.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		a.setCookie(c)
	}
	return w
}

func (a *testApp) setCookie(c *http.Cookie) {
	for i, old := range a.cookies {
		if old.Name == c.Name {
			a.cookies[i] = c
			return
		}
	}
	a.cookies = append(a.cookies, c)
}

func (a *testApp) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return a.postFormContext(t, context.Background(), path, form)
}

// postFormContext posts a form on a request bound to ctx.
func (a *testApp) postFormContext(t *testing.T, ctx context.Context, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode())).WithContext(ctx)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(t, req)
}

// canceledContext is a context already done, like a request whose browser went away.
func canceledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func (a *testApp) postFile(t *testing.T, path, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.do(t, req)
}

// login runs the login form and fails the test unless it redirects home.
func (a *testApp) login(t *testing.T) {
	t.Helper()
	w := a.postForm(t, "/login", url.Values{})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
}

// SetSession sets the given key/value pairs in the session using a helper route
// and returns the session cookie that can be attached to subsequent test requests.
func SetSession(router *gin.Engine, route string, data map[string]interface{}) *http.Cookie {
	router.GET(route, func(c *gin.Context) {
		s := sessions.Default(c)
		for key, value := range data {
			s.Set(key, value)
		}
		if err := s.Save(); err != nil {
			c.String(http.StatusInternalServerError, "session save failed")
			return
		}
		c.String(http.StatusOK, "session set")
	})

	req, _ := http.NewRequest("GET", route, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == "testsession" {
			return c
		}
	}
	return nil
}

// loggedInCookie is a session cookie that already carries the flag.
func loggedInCookie(router *gin.Engine) *http.Cookie {
	return SetSession(router, "/test/set-session", map[string]interface{}{session.FlagKey: true})
}

// hashPassword hashes the given password using bcrypt.
func hashPassword(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic("failed to hash password: " + err.Error())
	}
	return string(hashed)
}

// pngOfSize returns a valid PNG padded with trailing zero bytes to size.
func pngOfSize(t *testing.T, size int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	data := buf.Bytes()
	require.LessOrEqual(t, len(data), size)
	return append(data, make([]byte, size-len(data))...)
}
