package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/service"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/rest"
)

const readWait = 5 * time.Second

type testServer struct {
	t      *testing.T
	http   *httptest.Server
	server *Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	prefs := service.NewPreferenceService(logger, repository.NewMemoryPreferenceRepository())
	tables := usecase.NewTables(logger, prefs)
	server := New(logger, tables)

	mux := http.NewServeMux()
	rest.NewHandlers(logger, tables).Register(mux)
	mux.Handle("GET /ws", server)

	sessions := rest.NewSessions(logger, service.NewAuthService("test-secret", time.Hour), time.Hour)
	ts := httptest.NewServer(sessions.Middleware(mux))
	t.Cleanup(func() {
		server.CloseAll()
		ts.Close()
	})

	return &testServer{t: t, http: ts, server: server}
}

// session - opens a new browser session and returns its cookie header.
func (that *testServer) session() http.Header {
	that.t.Helper()

	resp, err := http.Get(that.http.URL + "/state")
	require.NoError(that.t, err)
	defer resp.Body.Close()

	header := http.Header{}
	for _, cookie := range resp.Cookies() {
		header.Add("Cookie", (&http.Cookie{Name: cookie.Name, Value: cookie.Value}).String())
	}
	require.NotEmpty(that.t, header.Get("Cookie"))

	return header
}

func (that *testServer) dial(header http.Header) *websocket.Conn {
	that.t.Helper()

	url := "ws" + strings.TrimPrefix(that.http.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(that.t, err)
	_ = resp.Body.Close()

	that.t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func send(t *testing.T, conn *websocket.Conn, action string, payload any) {
	t.Helper()

	message := map[string]any{"action": action}
	if payload != nil {
		message["payload"] = payload
	}

	require.NoError(t, conn.WriteJSON(message))
}

func receive(t *testing.T, conn *websocket.Conn) (string, ResponsePayload) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(readWait)))

	var message Message
	require.NoError(t, conn.ReadJSON(&message))

	var payload ResponsePayload
	require.NoError(t, json.Unmarshal(message.Payload, &payload))

	return message.Action, payload
}

func receiveView(t *testing.T, conn *websocket.Conn, expectedAction string) entity.View {
	t.Helper()

	action, payload := receive(t, conn)
	require.Equal(t, expectedAction, action)
	require.Empty(t, payload.Error)
	require.NotNil(t, payload.View)

	return *payload.View
}

func TestServer_Connect(t *testing.T) {
	// Given: a session with a move played over REST
	ts := newTestServer(t)
	header := ts.session()

	req, err := http.NewRequest(http.MethodPost, ts.http.URL+"/cells/4", nil)
	require.NoError(t, err)
	req.Header = header.Clone()
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	// When: the same session connects over WebSocket
	conn := ts.dial(header)
	send(t, conn, "connect", nil)

	// Then: the current table is returned
	view := receiveView(t, conn, "connect")
	assert.Equal(t, entity.PlayerX, view.Board[4])
	assert.Equal(t, "O’s turn", view.StatusText)
}

func TestServer_RejectsMissingSession(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := New(logger, nil)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_Actions(t *testing.T) {
	t.Run("Cell activation plays the current mark", func(t *testing.T) {
		ts := newTestServer(t)
		conn := ts.dial(ts.session())

		send(t, conn, "cell:activate", map[string]any{"cell": 0})
		first := receiveView(t, conn, "cell:activate")
		send(t, conn, "cell:activate", map[string]any{"cell": 0})
		repeated := receiveView(t, conn, "cell:activate")

		assert.Equal(t, entity.PlayerX, first.Board[0])
		assert.Equal(t, first, repeated)
	})

	t.Run("Full game through restart", func(t *testing.T) {
		// Given: a connected session
		ts := newTestServer(t)
		conn := ts.dial(ts.session())

		// When: X wins on the left column
		var view entity.View
		for _, cell := range []int{0, 1, 3, 2, 6} {
			send(t, conn, "cell:activate", map[string]any{"cell": cell})
			view = receiveView(t, conn, "cell:activate")
		}

		// Then: the game is over until restarted
		assert.Equal(t, "X wins!", view.StatusText)
		assert.Equal(t, []int{0, 3, 6}, view.WinningLine)

		send(t, conn, "game:restart", nil)
		view = receiveView(t, conn, "game:restart")
		assert.Equal(t, entity.NewView(entity.NewGame(), entity.NewAppearance()), view)
	})

	t.Run("Theme toggle and preference change", func(t *testing.T) {
		ts := newTestServer(t)
		conn := ts.dial(ts.session())

		send(t, conn, "theme:toggle", nil)
		view := receiveView(t, conn, "theme:toggle")
		assert.Equal(t, entity.ThemeLight, view.Appearance.Theme)

		send(t, conn, "preference:change", map[string]any{"key": entity.BoardColorKey, "value": "orange"})
		view = receiveView(t, conn, "preference:change")
		assert.Equal(t, "orange", view.Appearance.Board.Name)
		assert.Equal(t, entity.ThemeLight, view.Appearance.Theme)
	})

	t.Run("Invalid requests get an error and keep the connection", func(t *testing.T) {
		ts := newTestServer(t)
		conn := ts.dial(ts.session())

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
		_, payload := receive(t, conn)
		assert.Equal(t, "malformed message", payload.Error)

		send(t, conn, "game:leave", nil)
		action, payload := receive(t, conn)
		assert.Equal(t, "game:leave", action)
		assert.Contains(t, payload.Error, "unknown action")

		send(t, conn, "cell:activate", map[string]any{})
		_, payload = receive(t, conn)
		assert.Equal(t, errCellRequired.Error(), payload.Error)

		send(t, conn, "preference:change", map[string]any{"value": "red"})
		_, payload = receive(t, conn)
		assert.Equal(t, errKeyRequired.Error(), payload.Error)

		send(t, conn, "cell:activate", map[string]any{"cell": "center"})
		_, payload = receive(t, conn)
		assert.Equal(t, "malformed payload", payload.Error)

		send(t, conn, "connect", nil)
		view := receiveView(t, conn, "connect")
		assert.Equal(t, entity.NewView(entity.NewGame(), entity.NewAppearance()), view)
	})
}

func TestServer_Broadcast(t *testing.T) {
	t.Run("Other tabs of the same session see the update", func(t *testing.T) {
		// Given: two connections sharing a session
		ts := newTestServer(t)
		header := ts.session()
		first := ts.dial(header)
		second := ts.dial(header)

		send(t, first, "connect", nil)
		receiveView(t, first, "connect")
		send(t, second, "connect", nil)
		receiveView(t, second, "connect")

		// When: the first tab plays a move
		send(t, first, "cell:activate", map[string]any{"cell": 8})

		// Then: both tabs receive the new view
		assert.Equal(t, entity.PlayerX, receiveView(t, first, "cell:activate").Board[8])
		assert.Equal(t, entity.PlayerX, receiveView(t, second, "cell:activate").Board[8])
	})

	t.Run("Connect answers only the tab that asked", func(t *testing.T) {
		// Given: a connected tab
		ts := newTestServer(t)
		header := ts.session()
		first := ts.dial(header)
		send(t, first, "connect", nil)
		receiveView(t, first, "connect")

		// When: a second tab of the same session connects
		second := ts.dial(header)
		send(t, second, "connect", nil)
		receiveView(t, second, "connect")

		// Then: the first tab's next message is the reply to its own action, not a connect
		send(t, first, "game:restart", nil)
		action, payload := receive(t, first)
		assert.Equal(t, "game:restart", action)
		assert.NotNil(t, payload.View)
	})

	t.Run("Other sessions are not notified", func(t *testing.T) {
		ts := newTestServer(t)
		mine := ts.dial(ts.session())
		theirs := ts.dial(ts.session())

		send(t, mine, "cell:activate", map[string]any{"cell": 2})
		receiveView(t, mine, "cell:activate")

		send(t, theirs, "connect", nil)
		view := receiveView(t, theirs, "connect")
		assert.Equal(t, entity.EmptyCell, view.Board[2])
	})
}

func TestServer_Connections(t *testing.T) {
	ts := newTestServer(t)
	header := ts.session()
	conn := ts.dial(header)

	send(t, conn, "connect", nil)
	receiveView(t, conn, "connect")

	ts.server.connectionsMutex.RLock()
	assert.Len(t, ts.server.connections, 1)
	ts.server.connectionsMutex.RUnlock()

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))

	assert.Eventually(t, func() bool {
		ts.server.connectionsMutex.RLock()
		defer ts.server.connectionsMutex.RUnlock()
		return len(ts.server.connections) == 0
	}, readWait, 10*time.Millisecond)
}
