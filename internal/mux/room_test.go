package mux

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func Test_postRoom(t *testing.T) {
	a := assert.New(t)

	m, _ := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	var resp postRoomResponse
	assertPost(t, ts, "/room", &resp, http.StatusCreated)
	a.Regexp(`^[0-9A-F]{6}$`, resp.RoomID)

	assertGet(t, ts, "/room", nil, http.StatusMethodNotAllowed)
	assertGet(t, ts, "/room/not-a-code/ws", nil, http.StatusNotFound)
}

type wsMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	RoomID   string `json:"roomId"`
	Token    string `json:"token"`
	Message  string `json:"message"`
	HostID   string `json:"hostId"`
}

func dial(t *testing.T, ts *httptest.Server, roomID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/room/" + roomID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	return conn
}

// readUntil reads messages until one of the type arrives
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) wsMessage {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second * 5))
	for {
		_, b, err := conn.ReadMessage()
		if !assert.NoError(t, err, "waiting for %s", msgType) {
			t.FailNow()
		}

		var msg wsMessage
		if !assert.NoError(t, json.Unmarshal(b, &msg)) {
			t.FailNow()
		}

		if msg.Type == msgType {
			return msg
		}
	}
}

func Test_getRoomIDWS(t *testing.T) {
	a := assert.New(t)

	m, pitBoss := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	conn := dial(t, ts, "abc123")
	defer conn.Close()

	// the room sends its state on connect
	state := readUntil(t, conn, "state")
	a.Equal("", state.HostID)
	a.Equal(1, pitBoss.RoomCount())

	a.NoError(conn.WriteMessage(websocket.TextMessage, []byte("{")))
	a.Equal("invalid message format", readUntil(t, conn, "error").Message)

	a.NoError(conn.WriteJSON(map[string]string{"type": "join", "name": "Alice"}))
	joined := readUntil(t, conn, "joined")
	a.Equal("p1", joined.PlayerID)
	a.Equal("ABC123", joined.RoomID)
	a.Equal("p1", readUntil(t, conn, "state").HostID)

	a.NoError(conn.WriteJSON(map[string]string{"type": "chat", "message": "hello"}))
	a.Equal("hello", readUntil(t, conn, "chat").Message)

	// the room is retired once the last client leaves a lobby
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	a.Eventually(func() bool {
		return pitBoss.RoomCount() == 0
	}, time.Second*2, time.Millisecond*10)
}
