package mux

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"pineapple-server/pkg/room"
)

// wsAwait reads messages off the socket until every wanted key has
// been seen, discarding the rest
func wsAwait(t *testing.T, conn *websocket.Conn, keys ...string) map[string]*room.Response {
	t.Helper()

	want := make(map[string]bool)
	for _, key := range keys {
		want[key] = true
	}

	got := make(map[string]*room.Response)
	_ = conn.SetReadDeadline(time.Now().Add(time.Second * 5))
	for len(got) < len(want) {
		var msg room.Response
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("did not receive %v: %v", keys, err)
		}

		if want[msg.Key] && got[msg.Key] == nil {
			msg := msg
			got[msg.Key] = &msg
		}
	}

	return got
}

func wsURL(ts *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + path
}

func Test_getRoomUUIDWS(t *testing.T) {
	m, _ := testMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	p1 := uuid.New().String()
	p2 := uuid.New().String()
	token1 := playerToken(t, p1)
	token2 := playerToken(t, p2)

	var state room.RoomState
	assertPost(t, ts, "/room", postRoomPayload{Name: "Friday Night"}, &state, 201, token1)
	roomPath := "/room/" + state.ID

	// must join before connecting
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts, roomPath+"/ws?access_token="+token1), nil)
	assert.Error(t, err)
	if assert.NotNil(t, resp) {
		assert.Equal(t, 403, resp.StatusCode)
	}

	assertPost(t, ts, roomPath+"/join", postJoinPayload{DisplayName: "Alice"}, nil, 201, token1)
	assertPost(t, ts, roomPath+"/join", postJoinPayload{DisplayName: "Bob"}, nil, 201, token2)

	conn1, _, err := websocket.DefaultDialer.Dial(wsURL(ts, roomPath+"/ws?access_token="+token1), nil)
	assert.NoError(t, err)
	defer conn1.Close()

	wsAwait(t, conn1, "logs", "roomState")

	conn2, _, err := websocket.DefaultDialer.Dial(wsURL(ts, roomPath+"/ws?access_token="+token2), nil)
	assert.NoError(t, err)
	defer conn2.Close()

	wsAwait(t, conn2, "logs", "roomState")

	assert.NoError(t, conn1.WriteJSON(room.PayloadIn{Action: "startRound", Context: "ctx-1"}))

	msgs := wsAwait(t, conn1, "status", "dealBatch")
	assert.Equal(t, "OK", msgs["status"].Value)
	assert.Equal(t, "ctx-1", msgs["status"].Context)

	data, ok := msgs["dealBatch"].Data.(map[string]interface{})
	if assert.True(t, ok) {
		assert.Equal(t, float64(0), data["roundIndex"])
		assert.Len(t, data["cards"], 5)
	}

	// the other player gets their own five
	msgs = wsAwait(t, conn2, "dealBatch")
	data, ok = msgs["dealBatch"].Data.(map[string]interface{})
	if assert.True(t, ok) {
		assert.Len(t, data["cards"], 5)
	}

	assert.NoError(t, conn1.WriteJSON(room.PayloadIn{Action: "shuffleUp", Context: "ctx-2"}))
	msgs = wsAwait(t, conn1, "error")
	assert.Equal(t, "unknown action: shuffleUp", msgs["error"].Value)
	assert.Equal(t, "ctx-2", msgs["error"].Context)
}
