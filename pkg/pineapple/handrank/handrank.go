// Package handrank classifies the three- and five-card rows of a pineapple
// board and provides a total order for comparing them.
package handrank

import (
	"errors"
	"math"
	"sort"

	"pineapple-server/pkg/deck"
)

// row sizes the evaluator accepts
const (
	shortRow = 3
	fullRow  = 5
)

// ErrInvalidRowSize is an error when a row does not contain exactly 3 or 5 cards
var ErrInvalidRowSize = errors.New("row must contain exactly 3 or 5 cards")

// Rank is the evaluated strength of a single row
type Rank struct {
	category Category
	kickers  []int
	strength int
}

// Evaluate will rank a single row of 3 or 5 cards
// A three-card row can only make high card, a pair, or three of a kind
func Evaluate(cards deck.Hand) (*Rank, error) {
	switch len(cards) {
	case shortRow, fullRow:
	default:
		return nil, ErrInvalidRowSize
	}

	// clone to prevent modifying the original
	sorted := make(deck.Hand, len(cards))
	copy(sorted, cards)
	sort.Sort(sort.Reverse(sortByRank(sorted)))

	r := &Rank{}
	r.analyze(sorted)
	r.strength = calculateStrength(r.category, r.kickers)

	return r, nil
}

// Category returns the category of the row
func (r *Rank) Category() Category {
	return r.category
}

// Strength returns the strength of the row
// A greater strength always beats a lesser strength, and equal strengths tie
func (r *Rank) Strength() int {
	return r.strength
}

// Compare returns a negative value if r loses to o, a positive value if
// r beats o, and zero if the rows tie exactly
func (r *Rank) Compare(o *Rank) int {
	return r.strength - o.strength
}

func (r *Rank) String() string {
	return r.category.String()
}

// analyze determines the category and kickers from cards sorted by descending rank
func (r *Rank) analyze(sorted deck.Hand) {
	var quads, trips, pairs, singles []int

	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j].Rank == sorted[i].Rank {
			j++
		}

		rank := sorted[i].Rank
		switch j - i {
		case 4:
			quads = append(quads, rank)
		case 3:
			trips = append(trips, rank)
		case 2:
			pairs = append(pairs, rank)
		default:
			singles = append(singles, rank)
		}

		i = j
	}

	// straights and flushes require five cards
	if len(sorted) == fullRow {
		flush := isFlush(sorted)
		straightHigh := straightHighCard(sorted)

		switch {
		case flush && straightHigh > 0:
			r.category = StraightFlush
			r.kickers = []int{straightHigh}
			return
		case len(quads) > 0:
			r.category = FourOfAKind
			r.kickers = []int{quads[0], singles[0]}
			return
		case len(trips) > 0 && len(pairs) > 0:
			r.category = FullHouse
			r.kickers = []int{trips[0], pairs[0]}
			return
		case flush:
			r.category = Flush
			r.kickers = ranks(sorted)
			return
		case straightHigh > 0:
			r.category = Straight
			r.kickers = []int{straightHigh}
			return
		}
	}

	switch {
	case len(trips) > 0:
		r.category = ThreeOfAKind
		r.kickers = append([]int{trips[0]}, singles...)
	case len(pairs) > 1:
		r.category = TwoPair
		r.kickers = []int{pairs[0], pairs[1], singles[0]}
	case len(pairs) == 1:
		r.category = OnePair
		r.kickers = append([]int{pairs[0]}, singles...)
	default:
		r.category = HighCard
		r.kickers = ranks(sorted)
	}
}

// calculateStrength packs the category and up to five kickers into a single
// comparable integer. Kickers are positional, most significant first
func calculateStrength(category Category, kickers []int) int {
	fiveCards := make([]int, 5)
	copy(fiveCards, kickers)

	strength := math.Pow(15, 5) * float64(category)
	for i := 0; i < 5; i++ {
		val := fiveCards[4-i]
		strength += math.Pow(15, float64(i)) * float64(val)
	}

	return int(strength)
}

func isFlush(sorted deck.Hand) bool {
	for _, card := range sorted[1:] {
		if card.Suit != sorted[0].Suit {
			return false
		}
	}

	return true
}

// straightHighCard returns the rank of the highest card in the straight, or
// zero if the cards do not form one. The wheel (A-5-4-3-2) is five high
func straightHighCard(sorted deck.Hand) int {
	wheel := sorted[0].Rank == deck.Ace && sorted[1].Rank == 5

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Rank == sorted[i].Rank+1 {
			continue
		}

		if i == 1 && wheel {
			continue
		}

		return 0
	}

	if wheel {
		return 5
	}

	return sorted[0].Rank
}

func ranks(sorted deck.Hand) []int {
	r := make([]int, len(sorted))
	for i, card := range sorted {
		r[i] = card.Rank
	}

	return r
}

type sortByRank []*deck.Card

func (s sortByRank) Len() int {
	return len(s)
}

func (s sortByRank) Less(i, j int) bool {
	return s[i].Rank < s[j].Rank
}

func (s sortByRank) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}
