package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"pineapple-server/pkg/pineapple"
)

func testReveal(round int, names map[string]string, results map[string]int) *pineapple.Reveal {
	boards := make([]*pineapple.RevealedBoard, 0, len(names))
	for id, name := range names {
		boards = append(boards, &pineapple.RevealedBoard{PlayerID: id, DisplayName: name})
	}

	return &pineapple.Reveal{Round: round, Boards: boards, Results: results}
}

func TestMemory_RecentHands(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	hands, err := m.RecentHands(ctx, "room-a", 10)
	assert.NoError(t, err)
	assert.Empty(t, hands)

	names := map[string]string{"p1": "Alice", "p2": "Bob"}
	assert.NoError(t, m.RecordHand(ctx, "room-a", testReveal(1, names, map[string]int{"p1": 4, "p2": -4})))
	assert.NoError(t, m.RecordHand(ctx, "room-b", testReveal(1, names, map[string]int{"p1": 2, "p2": -2})))
	assert.NoError(t, m.RecordHand(ctx, "room-a", testReveal(2, names, map[string]int{"p1": -1, "p2": 1})))

	hands, err = m.RecentHands(ctx, "room-a", 10)
	assert.NoError(t, err)
	if assert.Len(t, hands, 2) {
		assert.Equal(t, 2, hands[0].Round)
		assert.Equal(t, 1, hands[1].Round)
		assert.True(t, hands[0].ID > hands[1].ID)
		assert.False(t, hands[0].Settled.IsZero())
		assert.Equal(t, "room-a", hands[0].RoomID)
	}

	hands, err = m.RecentHands(ctx, "room-a", 1)
	assert.NoError(t, err)
	if assert.Len(t, hands, 1) {
		assert.Equal(t, 2, hands[0].Round)
	}
}

func TestMemory_Leaderboard(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	entries, err := m.Leaderboard(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, entries)

	assert.NoError(t, m.RecordHand(ctx, "room-a", testReveal(1,
		map[string]string{"p-alice": "Alice", "p-bob": "Bob"},
		map[string]int{"p-alice": 5, "p-bob": -5})))
	assert.NoError(t, m.RecordHand(ctx, "room-b", testReveal(1,
		map[string]string{"p-alice": "Alice", "p-cara": "Cara"},
		map[string]int{"p-alice": 3, "p-cara": -3})))
	assert.NoError(t, m.RecordHand(ctx, "room-a", testReveal(2,
		map[string]string{"p-bob": "Bob", "p-cara": "Cara"},
		map[string]int{"p-bob": 2, "p-cara": -2})))
	assert.NoError(t, m.RecordHand(ctx, "room-b", testReveal(2,
		map[string]string{"p-alice": "Alice", "p-dan": "Dan"},
		map[string]int{"p-alice": 5, "p-dan": -5})))

	entries, err = m.Leaderboard(ctx, 10)
	assert.NoError(t, err)
	if assert.Len(t, entries, 4) {
		assert.Equal(t, &LeaderboardEntry{PlayerID: "p-alice", DisplayName: "Alice", Hands: 3, Total: 13}, entries[0])
		assert.Equal(t, &LeaderboardEntry{PlayerID: "p-bob", DisplayName: "Bob", Hands: 2, Total: -3}, entries[1])

		// cara and dan are tied, so the id breaks it
		assert.Equal(t, "p-cara", entries[2].PlayerID)
		assert.Equal(t, -5, entries[2].Total)
		assert.Equal(t, "p-dan", entries[3].PlayerID)
		assert.Equal(t, -5, entries[3].Total)
	}

	entries, err = m.Leaderboard(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}
