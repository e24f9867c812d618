// file: controllers/page_controller_test.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"english-hub/models"
)

func TestHealth(t *testing.T) {
	router := setupTestRouter(t)
	router.GET("/health", Health)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestClubPage_UnknownClubIsNotFound(t *testing.T) {
	app := newTestApp(t, "")
	app.login(t)

	w := app.get(t, "/clubs/nonexistent-id")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Club not found: nonexistent-id")
	assert.Zero(t, app.gw.TotalCalls())
}

func TestClubPage_EmptyFeed(t *testing.T) {
	app := newTestApp(t, "")
	app.login(t)

	w := app.get(t, "/clubs/cine-club")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "club|Cine Club|feed:|upload:closed:")
	assert.Equal(t, 1, app.gw.Calls("ListActivities"))
}

func TestClubPage_NewestFirst(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()
	for _, title := range []string{"First", "Second"} {
		_, err := app.gw.InsertActivity(ctx, models.NewActivity{
			ClubID: "quiz-club", ImageURL: "data:image/png;base64,AA==", Title: title,
		})
		require.NoError(t, err)
	}
	_, err := app.gw.InsertActivity(ctx, models.NewActivity{
		ClubID: "cine-club", ImageURL: "data:image/png;base64,AA==", Title: "Elsewhere",
	})
	require.NoError(t, err)

	app.login(t)
	w := app.get(t, "/clubs/quiz-club")

	assert.Contains(t, w.Body.String(), "feed:[Second:false:0][First:false:0]|")
	assert.NotContains(t, w.Body.String(), "Elsewhere")
}

func TestClubPage_LoadFailureKeepsPriorListSilently(t *testing.T) {
	app := newTestApp(t, "")
	_, err := app.gw.InsertActivity(context.Background(), models.NewActivity{
		ClubID: "wall-magazine", ImageURL: "data:image/png;base64,AA==", Title: "Issue One",
	})
	require.NoError(t, err)

	app.login(t)
	w := app.get(t, "/clubs/wall-magazine")
	require.Contains(t, w.Body.String(), "feed:[Issue One:false:0]|")

	app.gw.FailNext(errors.New("connection refused"))
	w = app.get(t, "/clubs/wall-magazine")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "feed:[Issue One:false:0]|")
	assert.NotContains(t, w.Body.String(), "Could not load")
}

func TestClubQRCode(t *testing.T) {
	var encoded string
	pc := &PageController{
		ApplicationURL: "http://hub.test/",
		QREncoder: func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error) {
			encoded = content
			return []byte("\x89PNG fake"), nil
		},
	}
	router := setupTestRouter(t)
	router.GET("/clubs/:clubID/qrcode", pc.ClubQRCode)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clubs/reading-session/qrcode", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "http://hub.test/clubs/reading-session", encoded)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clubs/nope/qrcode", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClubQRCode_EncoderFailure(t *testing.T) {
	pc := &PageController{
		ApplicationURL: "http://hub.test",
		QREncoder: func(string, qrcode.RecoveryLevel, int) ([]byte, error) {
			return nil, errors.New("boom")
		},
	}
	router := setupTestRouter(t)
	router.GET("/clubs/:clubID/qrcode", pc.ClubQRCode)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clubs/quiz-club/qrcode", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
