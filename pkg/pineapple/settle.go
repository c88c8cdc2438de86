package pineapple

import (
	"pineapple-server/pkg/pineapple/handrank"
)

// PairSide is one player's half of a pairwise settlement
type PairSide struct {
	PlayerID  string `json:"playerId"`
	Lines     int    `json:"lines"`
	Scoop     int    `json:"scoop"`
	Royalties int    `json:"royalties"`
	Total     int    `json:"total"`
	Foul      bool   `json:"foul"`
}

// PairResult is the settlement between two players
type PairResult struct {
	A PairSide `json:"a"`
	B PairSide `json:"b"`
}

// RevealedBoard is one player's final board along with its judgment.
// Discards stay private even at the reveal.
type RevealedBoard struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
	Board       *Board `json:"board"`
	Fouled      bool   `json:"fouled"`
	Reason      string `json:"reason,omitempty"`
	Royalties   int    `json:"royalties"`
}

// Reveal is the final accounting of a hand
type Reveal struct {
	Round    int             `json:"round"`
	Boards   []*RevealedBoard `json:"boards"`
	Results  map[string]int  `json:"results"`
	Pairwise []*PairResult   `json:"pairwise"`
}

// evaluatedBoard caches one player's ranked rows for settlement
type evaluatedBoard struct {
	playerID  string
	fouled    bool
	reason    string
	rows      [3]*handrank.Rank
	royalties int
}

func evaluateBoard(p *Participant) (*evaluatedBoard, error) {
	validation := p.board.Validate()
	eb := &evaluatedBoard{
		playerID: p.PlayerID,
		fouled:   validation.Fouled,
		reason:   validation.Reason,
	}

	if !p.board.Complete() {
		return eb, nil
	}

	top, middle, bottom, err := p.board.evaluate()
	if err != nil {
		return nil, err
	}

	eb.rows = [3]*handrank.Rank{top, middle, bottom}
	if !eb.fouled {
		eb.royalties = handrank.RoyaltyTop(top) + handrank.RoyaltyMiddle(middle) + handrank.RoyaltyBottom(bottom)
	}

	return eb, nil
}

// settlePair scores two boards head-to-head. A fouled board loses all
// three rows, forfeits its royalties, and can neither score nor concede
// the scoop bonus.
func settlePair(a, b *evaluatedBoard, scoopBonus int) *PairResult {
	sideA := PairSide{PlayerID: a.playerID, Foul: a.fouled}
	sideB := PairSide{PlayerID: b.playerID, Foul: b.fouled}

	switch {
	case a.fouled && b.fouled:
	case a.fouled:
		sideB.Lines = 3
		sideB.Royalties = b.royalties
	case b.fouled:
		sideA.Lines = 3
		sideA.Royalties = a.royalties
	default:
		for i := 0; i < 3; i++ {
			if cmp := a.rows[i].Compare(b.rows[i]); cmp > 0 {
				sideA.Lines++
			} else if cmp < 0 {
				sideB.Lines++
			}
		}

		if sideA.Lines == 3 {
			sideA.Scoop = scoopBonus
		} else if sideB.Lines == 3 {
			sideB.Scoop = scoopBonus
		}

		sideA.Royalties = a.royalties
		sideB.Royalties = b.royalties
	}

	sideA.Total = (sideA.Lines - sideB.Lines) + sideA.Royalties + sideA.Scoop - sideB.Scoop
	sideB.Total = (sideB.Lines - sideA.Lines) + sideB.Royalties + sideB.Scoop - sideA.Scoop

	return &PairResult{A: sideA, B: sideB}
}

// settleAll judges every board, settles every pair, and sums each
// player's pairwise totals into the final results
func (g *Game) settleAll() (*Reveal, error) {
	evals := make([]*evaluatedBoard, len(g.playerIDs))
	for i, id := range g.playerIDs {
		eb, err := evaluateBoard(g.idToParticipant[id])
		if err != nil {
			return nil, err
		}

		evals[i] = eb
	}

	results := make(map[string]int, len(evals))
	boards := make([]*RevealedBoard, len(evals))
	for i, eb := range evals {
		results[eb.playerID] = 0

		p := g.idToParticipant[eb.playerID]
		boards[i] = &RevealedBoard{
			PlayerID:    eb.playerID,
			DisplayName: p.DisplayName,
			Board:       p.board.Clone(),
			Fouled:      eb.fouled,
			Reason:      eb.reason,
			Royalties:   eb.royalties,
		}
	}

	pairwise := make([]*PairResult, 0, len(evals)*(len(evals)-1)/2)
	for i := 0; i < len(evals); i++ {
		for j := i + 1; j < len(evals); j++ {
			pair := settlePair(evals[i], evals[j], g.options.ScoopBonus)
			pairwise = append(pairwise, pair)

			results[pair.A.PlayerID] += pair.A.Total
			results[pair.B.PlayerID] += pair.B.Total
		}
	}

	return &Reveal{
		Round:    g.round,
		Boards:   boards,
		Results:  results,
		Pairwise: pairwise,
	}, nil
}
