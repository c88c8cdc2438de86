package pineapple

import (
	"errors"
	"fmt"
)

// Options configure a game of pineapple
type Options struct {
	// MinPlayers is the fewest players a hand may start with
	MinPlayers int

	// MaxPlayers is the most players a hand may start with
	MaxPlayers int

	// InitialDeal is how many cards each player receives before the initial set
	InitialDeal int

	// Rounds is the number of pineapple rounds after the initial set
	Rounds int

	// CardsPerRound is how many cards each player receives per pineapple round
	CardsPerRound int

	// PlacementsPerRound is how many cards each player must place per pineapple round
	PlacementsPerRound int

	// ScoopBonus is awarded for winning all three rows against an opponent
	ScoopBonus int
}

// DefaultOptions returns the standard pineapple configuration
func DefaultOptions() Options {
	return Options{
		MinPlayers:         2,
		MaxPlayers:         3,
		InitialDeal:        5,
		Rounds:             4,
		CardsPerRound:      3,
		PlacementsPerRound: 2,
		ScoopBonus:         3,
	}
}

// Validate ensures the options describe a playable game
func (o Options) Validate() error {
	if o.MinPlayers < 2 {
		return errors.New("you must allow at least two players")
	}

	if o.MaxPlayers < o.MinPlayers {
		return errors.New("the maximum number of players cannot be less than the minimum")
	}

	if o.InitialDeal <= 0 || o.Rounds <= 0 || o.CardsPerRound <= 0 {
		return errors.New("deals and rounds must be greater than zero")
	}

	if o.PlacementsPerRound <= 0 || o.PlacementsPerRound >= o.CardsPerRound {
		return errors.New("each round must place at least one card and leave at least one to discard")
	}

	if placed := o.InitialDeal + o.Rounds*o.PlacementsPerRound; placed != boardSize {
		return fmt.Errorf("a full hand must place exactly %d cards, got %d", boardSize, placed)
	}

	if needed := o.MaxPlayers * (o.InitialDeal + o.Rounds*o.CardsPerRound); needed > 52 {
		return fmt.Errorf("%d players would need %d cards, the deck only has 52", o.MaxPlayers, needed)
	}

	if o.ScoopBonus < 0 {
		return errors.New("the scoop bonus cannot be negative")
	}

	return nil
}
