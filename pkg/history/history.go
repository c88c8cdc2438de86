package history

import (
	"context"
	"time"

	"pineapple-server/pkg/pineapple"
)

// HandRecord is one settled hand in the ledger
type HandRecord struct {
	ID      int64             `json:"id"`
	RoomID  string            `json:"roomId"`
	Round   int               `json:"round"`
	Settled time.Time         `json:"settled"`
	Reveal  *pineapple.Reveal `json:"reveal"`
}

// LeaderboardEntry is a player's running score across all recorded hands
type LeaderboardEntry struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
	Hands       int    `json:"hands"`
	Total       int    `json:"total"`
}

// Recorder persists settled hands and answers history queries
type Recorder interface {
	RecordHand(ctx context.Context, roomID string, reveal *pineapple.Reveal) error
	RecentHands(ctx context.Context, roomID string, count int) ([]*HandRecord, error)
	Leaderboard(ctx context.Context, count int) ([]*LeaderboardEntry, error)
}
