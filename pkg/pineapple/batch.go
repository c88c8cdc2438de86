package pineapple

import "pineapple-server/pkg/deck"

// Placement asks for a single card to be placed on a row
type Placement struct {
	Card *deck.Card `json:"card"`
	Row  Row        `json:"row"`
}

// Batch is everything a player commits for one round.
// During the initial set the batch carries zero or more placements and no
// discard. During a pineapple round it must carry exactly the required
// number of placements plus one discard.
type Batch struct {
	Placements []Placement `json:"placements"`
	Discard    *deck.Card  `json:"discard"`
}

// applyBatch validates the batch against working copies of the player's
// hand, board, and discard pile, then swaps the copies in. A failed
// validation leaves the participant untouched.
func (g *Game) applyBatch(p *Participant, batch *Batch) error {
	if batch == nil {
		batch = &Batch{}
	}

	switch g.phase {
	case PhaseInitialSet:
		if batch.Discard != nil {
			return ErrDiscardNotAllowed
		}
	case PhaseRound:
		if len(batch.Placements) != g.options.PlacementsPerRound {
			return ErrWrongPlacementCount
		}

		if batch.Discard == nil {
			return ErrDiscardRequired
		}
	}

	hand := p.hand.Clone()
	board := p.board.Clone()
	discards := p.discards.Clone()

	for _, placement := range batch.Placements {
		if placement.Card == nil || !hand.HasCard(placement.Card) {
			return ErrCardNotInHand
		}

		if err := board.PlaceCard(placement.Row, placement.Card); err != nil {
			return err
		}

		hand.Remove(placement.Card)
	}

	if batch.Discard != nil {
		if !hand.HasCard(batch.Discard) {
			return ErrCardNotInHand
		}

		hand.Remove(batch.Discard)
		discards.AddCard(batch.Discard)
	}

	p.hand = hand
	p.board = board
	p.discards = discards
	return nil
}
