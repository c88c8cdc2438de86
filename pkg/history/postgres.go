package history

import (
	"context"
	"encoding/json"

	"pineapple-server/pkg/db"
	"pineapple-server/pkg/pineapple"
)

const handColumns = `
hands.id,
hands.room_id,
hands.round,
hands.settled,
hands.reveal`

// Postgres keeps the hand ledger in the database
type Postgres struct{}

// NewPostgres returns a database-backed recorder
func NewPostgres() *Postgres {
	return &Postgres{}
}

func getHandByRow(row db.Scanner) (*HandRecord, error) {
	var record HandRecord
	var reveal []byte
	if err := row.Scan(&record.ID, &record.RoomID, &record.Round, &record.Settled, &reveal); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(reveal, &record.Reveal); err != nil {
		return nil, err
	}

	return &record, nil
}

// RecordHand writes a settled hand to the ledger
func (p *Postgres) RecordHand(ctx context.Context, roomID string, reveal *pineapple.Reveal) error {
	payload, err := json.Marshal(reveal)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO hands (room_id, round, reveal)
VALUES ($1, $2, $3)`

	_, err = db.Instance().ExecContext(ctx, query, roomID, reveal.Round, payload)
	return err
}

// RecentHands returns the most recently settled hands in the room, newest first
func (p *Postgres) RecentHands(ctx context.Context, roomID string, count int) ([]*HandRecord, error) {
	const query = `
SELECT ` + handColumns + `
FROM hands
WHERE room_id = $1
ORDER BY id DESC
LIMIT $2`

	rows, err := db.Instance().QueryContext(ctx, query, roomID, count)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*HandRecord, 0)
	for rows.Next() {
		record, err := getHandByRow(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, nil
}

// Leaderboard ranks players by their total across every recorded hand.
// Display names come from the most recent board a player showed up on.
func (p *Postgres) Leaderboard(ctx context.Context, count int) ([]*LeaderboardEntry, error) {
	const query = `
WITH results AS (
	SELECT r.key AS player_id, COUNT(*) AS hands, SUM(r.value::int) AS total
	FROM hands
	CROSS JOIN jsonb_each_text(hands.reveal -> 'results') AS r
	GROUP BY r.key
), names AS (
	SELECT DISTINCT ON (b ->> 'playerId') b ->> 'playerId' AS player_id, b ->> 'displayName' AS display_name
	FROM hands
	CROSS JOIN jsonb_array_elements(hands.reveal -> 'boards') AS b
	ORDER BY b ->> 'playerId', hands.id DESC
)
SELECT results.player_id, COALESCE(names.display_name, ''), results.hands, results.total
FROM results
LEFT JOIN names ON names.player_id = results.player_id
ORDER BY results.total DESC, results.player_id ASC
LIMIT $1`

	rows, err := db.Instance().QueryContext(ctx, query, count)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*LeaderboardEntry, 0)
	for rows.Next() {
		var entry LeaderboardEntry
		if err := rows.Scan(&entry.PlayerID, &entry.DisplayName, &entry.Hands, &entry.Total); err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}

	return entries, nil
}
