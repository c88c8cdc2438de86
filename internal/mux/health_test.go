package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/bmizerany/assert"

	"pineapple-server/pkg/history"
	"pineapple-server/pkg/pineapple"
	"pineapple-server/pkg/room"
)

func TestHealthHandler(t *testing.T) {
	setupJWT()
	recorder := history.NewMemory()
	lobby := room.NewLobby(room.NewMemoryStore(), recorder, pineapple.DefaultOptions())
	lobby.StartShift()

	ts := httptest.NewServer(NewMux("v1.2.3", lobby, recorder))
	defer ts.Close()

	var expects healthResponse
	assertGet(t, ts, "/health", &expects, 200)
	assert.Equal(t, "OK", expects.Status)
	assert.Equal(t, "v1.2.3", expects.Version)
}
