package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-counter/console"
	"github.com/vcrobe/nojs-counter/internal/app"
	"github.com/vcrobe/nojs-counter/internal/app/components"
	"github.com/vcrobe/nojs-counter/internal/config"
)

func newTestServer(t *testing.T) (*Server, *app.App, *httptest.Server) {
	t.Helper()
	a := app.New(config.Default())
	s := New(a)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.closeSessions()
		ts.Close()
		a.Close()
	})
	return s, a, ts
}

func dial(t *testing.T, ts *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?path=" + path
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads frames until one satisfies match.
func readUntil(t *testing.T, conn *websocket.Conn, match func(Message) bool) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		if match(msg) {
			return msg
		}
	}
}

func renderWithCount(n int) func(Message) bool {
	return func(m Message) bool {
		return m.Type == TypeRender && m.Count != nil && *m.Count == n
	}
}

func TestSession_InitialRender(t *testing.T) {
	_, _, ts := newTestServer(t)
	conn := dial(t, ts, "/")

	msg := readUntil(t, conn, func(m Message) bool { return m.Type == TypeRender })

	assert.Equal(t, "/", msg.Path)
	assert.Contains(t, msg.HTML, "Count: 0")
	assert.Contains(t, msg.HTML, `data-click="increment"`)
}

// A click in one tab is rendered in every other tab.
func TestSession_ClickPropagatesAcrossTabs(t *testing.T) {
	// Arrange
	_, a, ts := newTestServer(t)
	tabA := dial(t, ts, "/")
	tabB := dial(t, ts, "/")
	readUntil(t, tabA, renderWithCount(0))
	readUntil(t, tabB, renderWithCount(0))

	// Act
	require.NoError(t, tabA.WriteJSON(Message{Type: TypeClick, Target: components.IncrementID}))

	// Assert
	msgA := readUntil(t, tabA, renderWithCount(1))
	msgB := readUntil(t, tabB, renderWithCount(1))
	assert.Contains(t, msgA.HTML, "Count: 1")
	assert.Contains(t, msgB.HTML, "Count: 1")
	assert.Equal(t, 1, a.Store().Count())

	// Act: decrement twice from B
	require.NoError(t, tabB.WriteJSON(Message{Type: TypeClick, Target: components.DecrementID}))
	require.NoError(t, tabB.WriteJSON(Message{Type: TypeClick, Target: components.DecrementID}))

	msgA = readUntil(t, tabA, renderWithCount(-1))
	assert.Contains(t, msgA.HTML, "Count: -1")
}

func TestSession_SharedPageParentAndChild(t *testing.T) {
	_, _, ts := newTestServer(t)
	conn := dial(t, ts, "/shared")
	readUntil(t, conn, renderWithCount(0))

	require.NoError(t, conn.WriteJSON(Message{Type: TypeClick, Target: components.ChildIncrementID}))

	msg := readUntil(t, conn, func(m Message) bool {
		return m.Type == TypeRender && strings.Contains(m.HTML, "Parent View Count: 1") &&
			strings.Contains(m.HTML, "Child View Count: 1")
	})
	assert.Equal(t, "/shared", msg.Path)
}

func TestSession_Navigate(t *testing.T) {
	_, _, ts := newTestServer(t)
	conn := dial(t, ts, "/")
	readUntil(t, conn, renderWithCount(0))

	require.NoError(t, conn.WriteJSON(Message{Type: TypeNavigate, Path: "/debug"}))

	msg := readUntil(t, conn, func(m Message) bool { return m.Type == TypeRender && m.Path == "/debug" })
	assert.Contains(t, msg.HTML, "Debug")
}

func TestSession_RejectsUnknownTargetAndType(t *testing.T) {
	_, _, ts := newTestServer(t)
	conn := dial(t, ts, "/")
	readUntil(t, conn, renderWithCount(0))

	require.NoError(t, conn.WriteJSON(Message{Type: TypeClick, Target: "launch"}))
	msg := readUntil(t, conn, func(m Message) bool { return m.Type == TypeError })
	assert.Contains(t, msg.Error, "launch")

	require.NoError(t, conn.WriteJSON(Message{Type: "dance"}))
	msg = readUntil(t, conn, func(m Message) bool { return m.Type == TypeError })
	assert.Contains(t, msg.Error, "dance")

	// The session stays usable.
	require.NoError(t, conn.WriteJSON(Message{Type: TypeClick, Target: components.IncrementID}))
	readUntil(t, conn, renderWithCount(1))
}

func TestSession_CloseReleasesComponents(t *testing.T) {
	s, a, ts := newTestServer(t)
	conn := dial(t, ts, "/shared")
	readUntil(t, conn, renderWithCount(0))
	require.Eventually(t, func() bool { return s.Sessions() == 1 }, 5*time.Second, 10*time.Millisecond)

	conn.Close()

	// Only the metrics observer stays subscribed once the tab is gone.
	assert.Eventually(t, func() bool {
		return s.Sessions() == 0 && a.Store().Subscribers() == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestAPI_CounterPushesToSessions(t *testing.T) {
	_, _, ts := newTestServer(t)
	conn := dial(t, ts, "/")
	readUntil(t, conn, renderWithCount(0))

	resp, err := http.Post(ts.URL+"/api/counter/increment", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body counterResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, body.Count)

	readUntil(t, conn, renderWithCount(1))
}

func TestAPI_GetAndDecrement(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/counter/decrement", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/api/counter")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body counterResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, -1, body.Count)
}

func TestAPI_UnknownOperation(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/counter/reset", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPage_ServerSideRender(t *testing.T) {
	_, a, ts := newTestServer(t)
	a.Store().Increment()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	html, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(html), "Count: 1")
	assert.Contains(t, string(html), `data-nav="/shared"`)
	assert.Equal(t, 1, a.Store().Subscribers(), "the render surface is released after the response")
}

func TestPage_TrailingSlashUsesRouteTitle(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/shared/")
	require.NoError(t, err)
	defer resp.Body.Close()
	html, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(html), "<title>nojs counter · Parent &amp; child</title>")
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// The server-side render of a page is not an appearance; only the live
// session that takes the page over is.
func TestPage_DebugAppearsOncePerVisit(t *testing.T) {
	// Arrange
	_, _, ts := newTestServer(t)
	logs := &lockedBuffer{}
	console.SetOutput(logs)
	t.Cleanup(func() { console.SetOutput(os.Stderr) })

	// Act: load the page, then open its live session
	resp, err := http.Get(ts.URL + "/debug")
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotContains(t, logs.String(), "DebugView appeared")

	conn := dial(t, ts, "/debug")
	readUntil(t, conn, func(m Message) bool { return m.Type == TypeRender })

	// Assert
	assert.Equal(t, 1, strings.Count(logs.String(), "DebugView appeared"))
}

func TestPage_NotFound(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nowhere")
	require.NoError(t, err)
	defer resp.Body.Close()
	html, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(html), "Page not found: /nowhere")
}

func TestHealth(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 0, body.Count)
}

func TestMetricsEndpoint(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "nojs_counter_store_count")
}
