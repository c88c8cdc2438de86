package pineapple

import (
	"fmt"

	"pineapple-server/pkg/deck"
	"pineapple-server/pkg/pineapple/handrank"
)

// Row identifies one of the three board rows
type Row string

// the rows of a pineapple board
const (
	RowTop    Row = "top"
	RowMiddle Row = "middle"
	RowBottom Row = "bottom"
)

// row capacities
const (
	topRowSize    = 3
	middleRowSize = 5
	bottomRowSize = 5
	boardSize     = topRowSize + middleRowSize + bottomRowSize
)

// Board is the three rows a player builds over the course of a hand
type Board struct {
	Top    deck.Hand `json:"top"`
	Middle deck.Hand `json:"middle"`
	Bottom deck.Hand `json:"bottom"`
}

// Validation is the outcome of checking a board for a foul
type Validation struct {
	Fouled bool   `json:"fouled"`
	Reason string `json:"reason,omitempty"`
}

// NewBoard returns an empty board
func NewBoard() *Board {
	return &Board{
		Top:    make(deck.Hand, 0, topRowSize),
		Middle: make(deck.Hand, 0, middleRowSize),
		Bottom: make(deck.Hand, 0, bottomRowSize),
	}
}

func (b *Board) row(row Row) (*deck.Hand, int, error) {
	switch row {
	case RowTop:
		return &b.Top, topRowSize, nil
	case RowMiddle:
		return &b.Middle, middleRowSize, nil
	case RowBottom:
		return &b.Bottom, bottomRowSize, nil
	}

	return nil, 0, ErrInvalidRow
}

// PlaceCard puts a card on the named row
func (b *Board) PlaceCard(row Row, card *deck.Card) error {
	cards, capacity, err := b.row(row)
	if err != nil {
		return err
	}

	if len(*cards) >= capacity {
		return ErrRowFull
	}

	cards.AddCard(card)
	return nil
}

// CardCount returns how many cards have been placed on the board
func (b *Board) CardCount() int {
	return len(b.Top) + len(b.Middle) + len(b.Bottom)
}

// Complete returns true if every row is at capacity
func (b *Board) Complete() bool {
	return len(b.Top) == topRowSize &&
		len(b.Middle) == middleRowSize &&
		len(b.Bottom) == bottomRowSize
}

// Clone returns a deep-enough copy of the board for speculative placements
func (b *Board) Clone() *Board {
	return &Board{
		Top:    b.Top.Clone(),
		Middle: b.Middle.Clone(),
		Bottom: b.Bottom.Clone(),
	}
}

// Validate checks the board against the row-ordering rule.
// An incomplete board at reveal always fouls.
func (b *Board) Validate() Validation {
	if !b.Complete() {
		return Validation{
			Fouled: true,
			Reason: fmt.Sprintf("board has %d of %d cards placed", b.CardCount(), boardSize),
		}
	}

	top, middle, bottom, err := b.evaluate()
	if err != nil {
		// cannot happen on a complete board
		return Validation{Fouled: true, Reason: err.Error()}
	}

	if top.Compare(middle) > 0 {
		return Validation{
			Fouled: true,
			Reason: fmt.Sprintf("top row (%s) beats middle row (%s)", top, middle),
		}
	}

	if middle.Compare(bottom) > 0 {
		return Validation{
			Fouled: true,
			Reason: fmt.Sprintf("middle row (%s) beats bottom row (%s)", middle, bottom),
		}
	}

	return Validation{}
}

// evaluate ranks all three rows of a complete board
func (b *Board) evaluate() (top, middle, bottom *handrank.Rank, err error) {
	if top, err = handrank.Evaluate(b.Top); err != nil {
		return nil, nil, nil, err
	}

	if middle, err = handrank.Evaluate(b.Middle); err != nil {
		return nil, nil, nil, err
	}

	if bottom, err = handrank.Evaluate(b.Bottom); err != nil {
		return nil, nil, nil, err
	}

	return top, middle, bottom, nil
}
