package pineapple

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"pineapple-server/internal/rng"
	"pineapple-server/pkg/deck"
)

// Phase identifies where a hand is in its lifecycle
type Phase string

// the phases of a pineapple hand
const (
	PhaseInitialSet Phase = "initial-set"
	PhaseRound      Phase = "round"
	PhaseReveal     Phase = "reveal"
)

// Player identifies a participant at the start of a hand
type Player struct {
	ID   string
	Name string
}

// Game is a single hand of pineapple
type Game struct {
	options         Options
	round           int
	deck            *deck.Deck
	playerIDs       []string
	idToParticipant map[string]*Participant
	phase           Phase
	roundIndex      int
	dealtInitial    bool
	reveal          *Reveal
	logger          logrus.FieldLogger
}

// Advance reports what happened when the commit barrier released
type Advance struct {
	// RoundIndex is the round the hand advanced into
	RoundIndex int

	// Dealt holds the newly dealt cards per player, nil at the reveal
	Dealt map[string]deck.Hand

	// Reveal is non-nil once the final commit settled the hand
	Reveal *Reveal
}

// NewGame returns a new hand of pineapple for the supplied players.
// round is the room's hand counter and is echoed back in the reveal.
func NewGame(logger logrus.FieldLogger, players []Player, round int, src rng.Generator, options Options) (*Game, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	if len(players) < options.MinPlayers || len(players) > options.MaxPlayers {
		return nil, PlayerCountError{
			Min: options.MinPlayers,
			Max: options.MaxPlayers,
			Got: len(players),
		}
	}

	d := deck.New(src)
	d.Shuffle()

	idToParticipant := make(map[string]*Participant, len(players))
	playerIDs := make([]string, len(players))
	for i, player := range players {
		if _, found := idToParticipant[player.ID]; found {
			return nil, fmt.Errorf("duplicate player: %s", player.ID)
		}

		playerIDs[i] = player.ID
		idToParticipant[player.ID] = newParticipant(player.ID, player.Name)
	}

	g := &Game{
		options:         options,
		round:           round,
		deck:            d,
		playerIDs:       playerIDs,
		idToParticipant: idToParticipant,
		phase:           PhaseInitialSet,
		logger:          logger,
	}

	g.logger.WithFields(logrus.Fields{
		"round":   round,
		"players": len(players),
		"deck":    d.HashCode(),
	}).Debug("new pineapple hand")

	return g, nil
}

// DealInitial deals each player their opening cards
func (g *Game) DealInitial() (map[string]deck.Hand, error) {
	if g.dealtInitial {
		return nil, errors.New("initial cards have already been dealt")
	}

	dealt, err := g.dealToAll(g.options.InitialDeal)
	if err != nil {
		return nil, err
	}

	g.dealtInitial = true
	return dealt, nil
}

// dealToAll deals count cards to every player, one card at a time
// the way a live dealer would
func (g *Game) dealToAll(count int) (map[string]deck.Hand, error) {
	if !g.deck.CanDraw(count * len(g.playerIDs)) {
		return nil, ErrDeckExhausted
	}

	dealt := make(map[string]deck.Hand, len(g.playerIDs))
	for i := 0; i < count; i++ {
		for _, id := range g.playerIDs {
			card, err := g.deck.Draw()
			if err != nil {
				return nil, ErrDeckExhausted
			}

			p := g.idToParticipant[id]
			p.hand.AddCard(card)
			p.dealt++
			dealt[id] = append(dealt[id], card)
		}
	}

	return dealt, nil
}

// SubmitReady validates and commits the player's batch for the current
// round and marks them ready. When the final player commits, the hand
// advances and the returned Advance describes what happened; otherwise
// it is nil.
func (g *Game) SubmitReady(playerID string, batch *Batch) (*Advance, error) {
	p, ok := g.idToParticipant[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	if g.phase == PhaseReveal {
		return nil, ErrHandOver
	}

	if !g.dealtInitial {
		return nil, errors.New("initial cards have not been dealt")
	}

	if p.ready {
		return nil, ErrAlreadyCommitted
	}

	if err := g.applyBatch(p, batch); err != nil {
		return nil, err
	}

	p.ready = true

	if !g.AllReady() {
		return nil, nil
	}

	return g.advance()
}

// AllReady returns true once every participant has committed for the current round
func (g *Game) AllReady() bool {
	for _, p := range g.idToParticipant {
		if !p.ready {
			return false
		}
	}

	return true
}

// advance releases the commit barrier: clear the ready flags, then
// either deal the next pineapple round or settle the hand
func (g *Game) advance() (*Advance, error) {
	for _, p := range g.idToParticipant {
		p.ready = false
	}

	if g.roundIndex < g.options.Rounds {
		dealt, err := g.dealToAll(g.options.CardsPerRound)
		if err != nil {
			return nil, err
		}

		g.phase = PhaseRound
		g.roundIndex++
		g.logger.WithField("roundIndex", g.roundIndex).Debug("dealt pineapple round")

		return &Advance{RoundIndex: g.roundIndex, Dealt: dealt}, nil
	}

	reveal, err := g.settleAll()
	if err != nil {
		return nil, err
	}

	g.phase = PhaseReveal
	g.reveal = reveal
	g.logger.WithField("round", g.round).Debug("hand settled")

	return &Advance{RoundIndex: g.roundIndex, Reveal: reveal}, nil
}

// Phase returns the current phase of the hand
func (g *Game) Phase() Phase {
	return g.phase
}

// Round returns the room's hand counter this hand was started with
func (g *Game) Round() int {
	return g.round
}

// RoundIndex returns which round the hand is in, 0 for the initial set
func (g *Game) RoundIndex() int {
	return g.roundIndex
}

// Reveal returns the final accounting, or nil if the hand has not settled
func (g *Game) Reveal() *Reveal {
	return g.reveal
}
