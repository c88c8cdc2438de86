package handrank

import "pineapple-server/pkg/deck"

// Royalties are bonus points for sufficiently strong rows, independent of the
// pairwise outcome. The tables are the standard open-face values

// RoyaltyTop returns the royalty for the three-card top row
// Pairs of sixes or better earn 1 through 9; trips earn 10 through 22
func RoyaltyTop(r *Rank) int {
	switch r.category {
	case OnePair:
		if rank := r.kickers[0]; rank >= 6 {
			return rank - 5
		}
	case ThreeOfAKind:
		return r.kickers[0] + 8
	}

	return 0
}

// RoyaltyMiddle returns the royalty for the five-card middle row
func RoyaltyMiddle(r *Rank) int {
	switch r.category {
	case ThreeOfAKind:
		return 2
	case Straight:
		return 4
	case Flush:
		return 8
	case FullHouse:
		return 12
	case FourOfAKind:
		return 20
	case StraightFlush:
		if r.kickers[0] == deck.Ace {
			return 50
		}

		return 30
	}

	return 0
}

// RoyaltyBottom returns the royalty for the five-card bottom row
func RoyaltyBottom(r *Rank) int {
	switch r.category {
	case Straight:
		return 2
	case Flush:
		return 4
	case FullHouse:
		return 6
	case FourOfAKind:
		return 10
	case StraightFlush:
		if r.kickers[0] == deck.Ace {
			return 25
		}

		return 15
	}

	return 0
}
