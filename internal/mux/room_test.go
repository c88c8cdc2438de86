package mux

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"pineapple-server/pkg/history"
	"pineapple-server/pkg/pineapple"
	"pineapple-server/pkg/room"
)

func batchFromState(state *pineapple.State, rows []pineapple.Row, discard bool) *pineapple.Batch {
	batch := &pineapple.Batch{}
	for i, row := range rows {
		batch.Placements = append(batch.Placements, pineapple.Placement{
			Card: state.Player.Hand[i],
			Row:  row,
		})
	}

	if discard {
		batch.Discard = state.Player.Hand[len(rows)]
	}

	return batch
}

// playRESTHand drives a hand over the HTTP API, from the initial set
// through the reveal
func playRESTHand(t *testing.T, ts *httptest.Server, roomPath string, players []string, tokens map[string]string) {
	t.Helper()

	playerState := func(playerID string) *pineapple.State {
		var state pineapple.State
		assertGet(t, ts, roomPath+"/player", &state, 200, tokens[playerID])
		return &state
	}

	bottomFive := []pineapple.Row{
		pineapple.RowBottom, pineapple.RowBottom, pineapple.RowBottom,
		pineapple.RowBottom, pineapple.RowBottom,
	}

	for _, playerID := range players {
		batch := batchFromState(playerState(playerID), bottomFive, false)
		assertPost(t, ts, roomPath+"/submit", batch, nil, 200, tokens[playerID])
	}

	plans := [][]pineapple.Row{
		{pineapple.RowMiddle, pineapple.RowMiddle},
		{pineapple.RowMiddle, pineapple.RowMiddle},
		{pineapple.RowMiddle, pineapple.RowTop},
		{pineapple.RowTop, pineapple.RowTop},
	}

	for _, rows := range plans {
		for _, playerID := range players {
			batch := batchFromState(playerState(playerID), rows, true)
			assertPost(t, ts, roomPath+"/submit", batch, nil, 200, tokens[playerID])
		}
	}
}

func Test_postRoom(t *testing.T) {
	m, _ := testMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	token := playerToken(t, uuid.New().String())

	var errObj errorResponse
	assertPost(t, ts, "/room", postRoomPayload{Name: "Friday Night"}, &errObj, 401)
	assert.Equal(t, "Unauthorized", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts, "/room", postRoomPayload{Name: "ab"}, &errObj, 400, token)
	assert.Equal(t, "name must be 3-40 characters", errObj.Message)

	var state room.RoomState
	assertPost(t, ts, "/room", postRoomPayload{Name: "Friday Night", Passcode: "hunter2"}, &state, 201, token)
	assert.NotEmpty(t, state.ID)
	assert.Equal(t, "Friday Night", state.Name)
	assert.True(t, state.HasPasscode)
	assert.Equal(t, room.PhaseWaiting, state.Phase)
	assert.Equal(t, 0, state.Round)
	assert.Nil(t, state.Game)

	var got room.RoomState
	assertGet(t, ts, "/room/"+state.ID, &got, 200, token)
	assert.Equal(t, state.ID, got.ID)
	assert.Equal(t, "Friday Night", got.Name)

	errObj = errorResponse{}
	assertGet(t, ts, "/room/"+uuid.New().String(), &errObj, 404, token)
	assert.Equal(t, "room not found", errObj.Message)

	// not a UUID, so the route never matches
	assertGet(t, ts, "/room/not-a-uuid", nil, 404, token)
}

func Test_postRoomUUIDJoin(t *testing.T) {
	m, _ := testMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	token := playerToken(t, uuid.New().String())

	var state room.RoomState
	assertPost(t, ts, "/room", postRoomPayload{Name: "Secret Room", Passcode: "hunter2"}, &state, 201, token)
	roomPath := "/room/" + state.ID

	var errObj errorResponse
	assertPost(t, ts, roomPath+"/join", postJoinPayload{DisplayName: "Alice"}, &errObj, 403, token)
	assert.Equal(t, "incorrect passcode", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts, roomPath+"/join", postJoinPayload{DisplayName: "no-good!", Passcode: "hunter2"}, &errObj, 400, token)
	assert.Equal(t, "display name must only contain letters, numbers, and spaces, and be 40 characters or less", errObj.Message)

	state = room.RoomState{}
	assertPost(t, ts, roomPath+"/join", postJoinPayload{DisplayName: "Alice", Passcode: "hunter2"}, &state, 201, token)
	if assert.Len(t, state.Members, 1) {
		assert.Equal(t, "Alice", state.Members[0].DisplayName)
	}
}

func Test_roomLifecycle(t *testing.T) {
	m, recorder := testMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	p1 := uuid.New().String()
	p2 := uuid.New().String()
	players := []string{p1, p2}
	tokens := map[string]string{
		p1: playerToken(t, p1),
		p2: playerToken(t, p2),
	}

	var state room.RoomState
	assertPost(t, ts, "/room", postRoomPayload{Name: "Friday Night"}, &state, 201, tokens[p1])
	roomPath := "/room/" + state.ID

	var errObj errorResponse
	assertGet(t, ts, roomPath+"/player", &errObj, 404, tokens[p1])
	assert.Equal(t, "no active hand", errObj.Message)

	assertPost(t, ts, roomPath+"/join", postJoinPayload{DisplayName: "Alice"}, nil, 201, tokens[p1])

	errObj = errorResponse{}
	assertPost(t, ts, roomPath+"/start", "{}", &errObj, 400, tokens[p1])
	assert.Equal(t, "expected between 2 and 3 players, got 1", errObj.Message)

	// an empty display name gets a generated one
	state = room.RoomState{}
	assertPost(t, ts, roomPath+"/join", postJoinPayload{}, &state, 201, tokens[p2])
	if assert.Len(t, state.Members, 2) {
		assert.NotEmpty(t, state.Members[1].DisplayName)
	}

	outsider := playerToken(t, uuid.New().String())
	errObj = errorResponse{}
	assertPost(t, ts, roomPath+"/start", "{}", &errObj, 403, outsider)
	assert.Equal(t, "you are not in this room", errObj.Message)

	state = room.RoomState{}
	assertPost(t, ts, roomPath+"/start", "{}", &state, 200, tokens[p1])
	assert.Equal(t, 1, state.Round)
	assert.Equal(t, string(pineapple.PhaseInitialSet), state.Phase)
	if assert.NotNil(t, state.Game) {
		assert.Len(t, state.Game.Participants, 2)
	}

	errObj = errorResponse{}
	assertPost(t, ts, roomPath+"/start", "{}", &errObj, 409, tokens[p1])
	assert.Equal(t, "a hand is already in progress", errObj.Message)

	var ps pineapple.State
	assertGet(t, ts, roomPath+"/player", &ps, 200, tokens[p1])
	assert.Equal(t, p1, ps.Player.PlayerID)
	assert.Len(t, ps.Player.Hand, 5)
	assert.False(t, ps.Player.Ready)

	playRESTHand(t, ts, roomPath, players, tokens)

	state = room.RoomState{}
	assertGet(t, ts, roomPath, &state, 200, tokens[p1])
	assert.Equal(t, string(pineapple.PhaseReveal), state.Phase)

	var hands []*history.HandRecord
	assertGet(t, ts, roomPath+"/history", &hands, 200, tokens[p1])
	if assert.Len(t, hands, 1) {
		assert.Equal(t, state.ID, hands[0].RoomID)
		assert.Equal(t, 1, hands[0].Round)
		if assert.NotNil(t, hands[0].Reveal) {
			assert.Len(t, hands[0].Reveal.Boards, 2)
		}
	}

	errObj = errorResponse{}
	assertGet(t, ts, roomPath+"/history?rows=0", &errObj, 400, tokens[p1])
	assert.Equal(t, "rows must be greater than zero", errObj.Message)

	var entries []*history.LeaderboardEntry
	assertGet(t, ts, "/leaderboard", &entries, 200, tokens[p1])
	if assert.Len(t, entries, 2) {
		// pineapple settles zero sum
		assert.Equal(t, 0, entries[0].Total+entries[1].Total)
		assert.True(t, entries[0].Total >= entries[1].Total)
	}

	errObj = errorResponse{}
	assertPost(t, ts, roomPath+"/submit", &pineapple.Batch{}, &errObj, 400, tokens[p1])
	assert.Equal(t, "the hand is over", errObj.Message)

	assertPost(t, ts, roomPath+"/submit", `{"placements":"nope"}`, nil, 400, tokens[p1])

	assertPost(t, ts, roomPath+"/leave", "{}", nil, 200, tokens[p1])
	assertPost(t, ts, roomPath+"/leave", "{}", nil, 200, tokens[p2])

	// the last leave tears the room down
	errObj = errorResponse{}
	assertGet(t, ts, roomPath, &errObj, 404, tokens[p1])
	assert.Equal(t, "room not found", errObj.Message)

	// the hand record outlives the room
	records, err := recorder.RecentHands(context.Background(), state.ID, 10)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
}
