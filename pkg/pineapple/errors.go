package pineapple

import (
	"errors"
	"fmt"

	"pineapple-server/pkg/pineapple/handrank"
)

// ErrPlayerNotFound happens when the player is not part of the hand
var ErrPlayerNotFound = errors.New("player not found")

// ErrCardNotInHand happens when a placement or discard names a card the player does not hold
var ErrCardNotInHand = errors.New("card is not in your hand")

// ErrInvalidRow happens when a placement names a row that does not exist
var ErrInvalidRow = errors.New("invalid row")

// ErrRowFull happens when a placement targets a row at capacity
var ErrRowFull = errors.New("row is full")

// ErrWrongPlacementCount happens when a pineapple round commit does not place the required number of cards
var ErrWrongPlacementCount = errors.New("wrong number of placements")

// ErrDiscardRequired happens when a pineapple round commit is missing its discard
var ErrDiscardRequired = errors.New("you must discard a card")

// ErrDiscardNotAllowed happens when the initial set commit includes a discard
var ErrDiscardNotAllowed = errors.New("you cannot discard during the initial set")

// ErrAlreadyCommitted happens when a player commits twice in the same round
var ErrAlreadyCommitted = errors.New("you already committed this round")

// ErrHandOver happens when a commit arrives after the reveal
var ErrHandOver = errors.New("the hand is over")

// ErrDeckExhausted happens when the deck cannot cover the next deal
var ErrDeckExhausted = errors.New("not enough cards left in the deck")

// IsFatal returns true for errors that mean the hand can no longer be
// scored correctly. They indicate a configuration or evaluator bug, not
// a bad move, and the hand should be aborted rather than settled.
func IsFatal(err error) bool {
	return errors.Is(err, ErrDeckExhausted) || errors.Is(err, handrank.ErrInvalidRowSize)
}

// PlayerCountError happens when a hand starts with the wrong number of players
type PlayerCountError struct {
	Min int
	Max int
	Got int
}

// Error implements the error interface
func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected between %d and %d players, got %d", p.Min, p.Max, p.Got)
}
