// file: websocket/hub_test.go
package websocket

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"english-hub/models"
)

// fakeConn implements WSConn without any network I/O.
type fakeConn struct {
	mu      sync.Mutex
	written [][]byte
}

func (fc *fakeConn) WriteMessage(messageType int, data []byte) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if messageType == websocket.TextMessage {
		fc.written = append(fc.written, data)
	}
	return nil
}
func (fc *fakeConn) SetWriteDeadline(time.Time) error { return nil }
func (fc *fakeConn) ReadMessage() (int, []byte, error) {
	return websocket.TextMessage, []byte(`{}`), nil
}
func (fc *fakeConn) Close() error { return nil }
func (fc *fakeConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 12345}
}
func (fc *fakeConn) SetReadLimit(int64) {}
func (fc *fakeConn) SetReadDeadline(time.Time) error { return nil }
func (fc *fakeConn) SetPongHandler(func(string) error) {}

func TestHub_RegisterAndUnregister(t *testing.T) {
	h := NewHub("")
	c := &Connection{conn: &fakeConn{}, send: make(chan []byte, 1), clubID: "quiz-club"}

	h.register(c)
	assert.Equal(t, 1, h.Subscribers("quiz-club"))
	assert.Equal(t, 0, h.Subscribers("cine-club"))

	h.unregister(c)
	assert.Equal(t, 0, h.Subscribers("quiz-club"))
	h.unregister(c) // second call is a no-op
}

func TestHub_BroadcastOnlyToSameClub(t *testing.T) {
	h := NewHub("")
	quiz := &Connection{conn: &fakeConn{}, send: make(chan []byte, 1), clubID: "quiz-club"}
	cine := &Connection{conn: &fakeConn{}, send: make(chan []byte, 1), clubID: "cine-club"}
	h.register(quiz)
	h.register(cine)

	done := make(chan struct{})
	defer close(done)
	go h.Run(done)

	h.ActivityPosted("quiz-club", models.Activity{ID: "a1", ClubID: "quiz-club"})

	select {
	case msg := <-quiz.send:
		var n Notice
		require.NoError(t, json.Unmarshal(msg, &n))
		assert.Equal(t, Notice{Action: "activityPosted", ClubID: "quiz-club", ActivityID: "a1"}, n)
	case <-time.After(time.Second):
		t.Fatal("expected a notice for quiz-club")
	}
	select {
	case <-cine.send:
		t.Fatal("cine-club should not receive quiz-club notices")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_ActivityPostedNeverBlocks(t *testing.T) {
	h := NewHub("")
	finished := make(chan struct{})
	go func() {
		for i := 0; i < cap(h.broadcast)+10; i++ {
			h.ActivityPosted("quiz-club", models.Activity{})
		}
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("ActivityPosted blocked without a running hub")
	}
}

func TestWritePump_DeliversAndClosesOnChannelClose(t *testing.T) {
	fc := &fakeConn{}
	c := &Connection{conn: fc, send: make(chan []byte, 2), clubID: "quiz-club"}
	c.send <- []byte(`{"action":"activityPosted"}`)
	close(c.send)

	c.writePump()

	fc.mu.Lock()
	defer fc.mu.Unlock()
	require.Len(t, fc.written, 1)
	assert.Contains(t, string(fc.written[0]), "activityPosted")
}

func TestServeWs_RejectsUnknownClub(t *testing.T) {
	h := NewHub("")
	w := httptest.NewRecorder()
	h.ServeWs(w, httptest.NewRequest(http.MethodGet, "/feed-updates?clubId=nope", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServeWs_NonUpgradeRequestFails(t *testing.T) {
	h := NewHub("")
	w := httptest.NewRecorder()
	h.ServeWs(w, httptest.NewRequest(http.MethodGet, "/feed-updates?clubId=quiz-club", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServeWs_EndToEndNotice(t *testing.T) {
	h := NewHub("")
	done := make(chan struct{})
	defer close(done)
	go h.Run(done)

	server := httptest.NewServer(http.HandlerFunc(h.ServeWs))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?clubId=wall-magazine"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.Subscribers("wall-magazine") == 1 },
		time.Second, 10*time.Millisecond)

	h.ActivityPosted("wall-magazine", models.Activity{ID: "a9"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"activityPosted","clubId":"wall-magazine","activityId":"a9"}`, string(msg))
}

func TestCheckOrigin(t *testing.T) {
	h := NewHub("https://hub.example.edu")
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, h.upgrader.CheckOrigin(req))

	req.Header.Set("Test-Mode", "true")
	assert.False(t, h.upgrader.CheckOrigin(req), "no header skips the origin check")
	req.Header.Del("Test-Mode")

	req.Header.Set("Origin", "https://hub.example.edu")
	assert.True(t, h.upgrader.CheckOrigin(req))
}
