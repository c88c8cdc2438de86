package pineapple

import "pineapple-server/pkg/deck"

// PlacedCounts is how many cards a player has placed per row
type PlacedCounts struct {
	Top    int `json:"top"`
	Middle int `json:"middle"`
	Bottom int `json:"bottom"`
}

// participantJSON is the public, redacted view of a participant.
// Opponents only ever learn how many cards sit on each row, never
// which cards.
type participantJSON struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	PlacedCounts PlacedCounts `json:"placedCounts"`
	Ready        bool         `json:"ready"`
}

// GameState is the public state of the hand
type GameState struct {
	Phase        Phase              `json:"phase"`
	Round        int                `json:"round"`
	RoundIndex   int                `json:"roundIndex"`
	Participants []*participantJSON `json:"participants"`
}

// PlayerState is the private state for a single player
type PlayerState struct {
	PlayerID string    `json:"playerId"`
	Hand     deck.Hand `json:"hand"`
	Board    *Board    `json:"board"`
	Discards deck.Hand `json:"discards"`
	Ready    bool      `json:"ready"`
}

// State is everything a single player may see
type State struct {
	Player    *PlayerState `json:"player"`
	GameState *GameState   `json:"gameState"`
}

func (b *Board) placedCounts() PlacedCounts {
	return PlacedCounts{
		Top:    len(b.Top),
		Middle: len(b.Middle),
		Bottom: len(b.Bottom),
	}
}

// State returns the public state of the hand
func (g *Game) State() *GameState {
	participants := make([]*participantJSON, len(g.playerIDs))
	for i, id := range g.playerIDs {
		p := g.idToParticipant[id]
		participants[i] = &participantJSON{
			ID:           p.PlayerID,
			Name:         p.DisplayName,
			PlacedCounts: p.board.placedCounts(),
			Ready:        p.ready,
		}
	}

	return &GameState{
		Phase:        g.phase,
		Round:        g.round,
		RoundIndex:   g.roundIndex,
		Participants: participants,
	}
}

// GetPlayerState returns the state of the hand as seen by one player
func (g *Game) GetPlayerState(playerID string) (*State, error) {
	p, ok := g.idToParticipant[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	return &State{
		Player: &PlayerState{
			PlayerID: p.PlayerID,
			Hand:     p.hand.Clone(),
			Board:    p.board.Clone(),
			Discards: p.discards.Clone(),
			Ready:    p.ready,
		},
		GameState: g.State(),
	}, nil
}
