package pineapple

import "pineapple-server/pkg/deck"

// Participant is an individual player in a hand of pineapple
type Participant struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`

	hand     deck.Hand
	board    *Board
	discards deck.Hand
	ready    bool

	// dealt is how many cards this participant has been dealt so far
	dealt int
}

func newParticipant(id, name string) *Participant {
	return &Participant{
		PlayerID:    id,
		DisplayName: name,
		hand:        make(deck.Hand, 0),
		board:       NewBoard(),
		discards:    make(deck.Hand, 0),
	}
}

// cardCount is the total number of cards the participant is accountable for
func (p *Participant) cardCount() int {
	return len(p.hand) + p.board.CardCount() + len(p.discards)
}
