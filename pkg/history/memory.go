package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"pineapple-server/pkg/pineapple"
)

// memoryLimit caps how many hands the in-memory recorder retains
const memoryLimit = 1000

// Memory is a Recorder that keeps the ledger in process memory. It is
// the fallback when the server runs without a database.
type Memory struct {
	lock   sync.RWMutex
	nextID int64
	hands  []*HandRecord
}

// NewMemory returns an empty in-memory recorder
func NewMemory() *Memory {
	return &Memory{}
}

// RecordHand appends the settled hand, dropping the oldest once over
// the retention limit
func (m *Memory) RecordHand(ctx context.Context, roomID string, reveal *pineapple.Reveal) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.nextID++
	m.hands = append(m.hands, &HandRecord{
		ID:      m.nextID,
		RoomID:  roomID,
		Round:   reveal.Round,
		Settled: time.Now(),
		Reveal:  reveal,
	})

	if len(m.hands) > memoryLimit {
		m.hands = m.hands[len(m.hands)-memoryLimit:]
	}

	return nil
}

// RecentHands returns the room's most recent hands, newest first
func (m *Memory) RecentHands(ctx context.Context, roomID string, count int) ([]*HandRecord, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	records := make([]*HandRecord, 0, count)
	for i := len(m.hands) - 1; i >= 0 && len(records) < count; i-- {
		if m.hands[i].RoomID == roomID {
			records = append(records, m.hands[i])
		}
	}

	return records, nil
}

// Leaderboard totals every player's results, best first
func (m *Memory) Leaderboard(ctx context.Context, count int) ([]*LeaderboardEntry, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	byPlayer := make(map[string]*LeaderboardEntry)
	for _, record := range m.hands {
		for _, board := range record.Reveal.Boards {
			entry, found := byPlayer[board.PlayerID]
			if !found {
				entry = &LeaderboardEntry{PlayerID: board.PlayerID}
				byPlayer[board.PlayerID] = entry
			}

			entry.DisplayName = board.DisplayName
			entry.Hands++
			entry.Total += record.Reveal.Results[board.PlayerID]
		}
	}

	entries := make([]*LeaderboardEntry, 0, len(byPlayer))
	for _, entry := range byPlayer {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}

		return entries[i].PlayerID < entries[j].PlayerID
	})

	if len(entries) > count {
		entries = entries[:count]
	}

	return entries, nil
}
