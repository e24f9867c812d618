package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"english-hub/config"
	"english-hub/gateway"
	"english-hub/services"
	"english-hub/websocket"
)

func testConfig() config.Config {
	return config.Config{
		ApplicationURL: "http://localhost:8080",
		SessionSecret:  "test-secret",
		Env:            "test",
		GatewayDriver:  config.DriverMemory,
		RequireTitle:   true,
	}
}

func serve(router http.Handler, req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestNewServer_EndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gw := gateway.NewMemory()
	router, reg, err := newServer(testConfig(), gw, websocket.NewHub(""))
	require.NoError(t, err)
	require.NotNil(t, reg)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/health", nil), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "english_hub_web_active_workspaces")

	w = serve(router, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = serve(router, httptest.NewRequest(http.MethodGet, "/login", nil), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The English Hub")
	assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(url.Values{}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = serve(router, req, nil)
	require.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()

	w = serve(router, httptest.NewRequest(http.MethodGet, "/", nil), cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `href="/clubs/wall-magazine"`)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/clubs/quiz-club", nil), cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Quiz Club")
	assert.Contains(t, body, "No activities posted yet. Be the first to share!")
	assert.Contains(t, body, "ws://localhost:8080/feed-updates")

	w = serve(router, httptest.NewRequest(http.MethodGet, "/clubs/nonexistent-id", nil), cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Club not found")
}

func TestWebsocketURL(t *testing.T) {
	assert.Equal(t, "ws://localhost:8080/feed-updates", websocketURL("http://localhost:8080"))
	assert.Equal(t, "wss://hub.example.edu/feed-updates", websocketURL("https://hub.example.edu/"))
	assert.Equal(t, "", websocketURL("localhost"))
}

func TestUploadOptions(t *testing.T) {
	cfg := testConfig()
	opts := uploadOptions(cfg)
	assert.True(t, opts.RequireTitle)
	assert.Nil(t, opts.Assets)

	cfg.AssetFunctionURL = "https://functions.example.edu/upload-activity-image"
	opts = uploadOptions(cfg)
	assert.IsType(t, &services.AssetUploader{}, opts.Assets)
}

func TestMigrateCommand_SQLite(t *testing.T) {
	t.Setenv("GATEWAY_DRIVER", config.DriverSQLite)
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "hub.db"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"migrate"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "schema applied (sqlite)")
}

func TestMigrateCommand_Memory(t *testing.T) {
	t.Setenv("GATEWAY_DRIVER", config.DriverMemory)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"migrate"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "nothing to migrate")
}
