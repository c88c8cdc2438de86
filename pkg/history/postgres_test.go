package history

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"pineapple-server/pkg/db"
)

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("PINEAPPLE_PG_DSN")
	if dsn == "" {
		t.Skip("PINEAPPLE_PG_DSN is not set")
	}

	db.SetDSN(dsn)
	db.Migrate()

	ctx := context.Background()
	recorder := NewPostgres()

	roomID := uuid.New().String()
	p1 := uuid.New().String()
	p2 := uuid.New().String()

	hands, err := recorder.RecentHands(ctx, roomID, 10)
	assert.NoError(t, err)
	assert.Empty(t, hands)

	assert.NoError(t, recorder.RecordHand(ctx, roomID, testReveal(1, map[string]string{p1: "Alice", p2: "Bob"}, map[string]int{p1: 4, p2: -4})))
	assert.NoError(t, recorder.RecordHand(ctx, roomID, testReveal(2, map[string]string{p1: "Alicia", p2: "Bob"}, map[string]int{p1: -1, p2: 1})))

	hands, err = recorder.RecentHands(ctx, roomID, 10)
	assert.NoError(t, err)
	if assert.Len(t, hands, 2) {
		assert.Equal(t, 2, hands[0].Round)
		assert.Equal(t, 1, hands[1].Round)
		assert.Equal(t, roomID, hands[0].RoomID)
		assert.True(t, hands[0].ID > hands[1].ID)
		assert.False(t, hands[0].Settled.IsZero())

		if assert.NotNil(t, hands[0].Reveal) {
			assert.Len(t, hands[0].Reveal.Boards, 2)
			assert.Equal(t, -1, hands[0].Reveal.Results[p1])
		}
	}

	hands, err = recorder.RecentHands(ctx, roomID, 1)
	assert.NoError(t, err)
	assert.Len(t, hands, 1)

	entries, err := recorder.Leaderboard(ctx, 100)
	assert.NoError(t, err)

	byID := make(map[string]*LeaderboardEntry)
	for _, entry := range entries {
		byID[entry.PlayerID] = entry
	}

	if entry := byID[p1]; assert.NotNil(t, entry) {
		// the display name follows the latest board
		assert.Equal(t, "Alicia", entry.DisplayName)
		assert.Equal(t, 2, entry.Hands)
		assert.Equal(t, 3, entry.Total)
	}

	if entry := byID[p2]; assert.NotNil(t, entry) {
		assert.Equal(t, "Bob", entry.DisplayName)
		assert.Equal(t, -3, entry.Total)
	}
}
