package room

import (
	"sync"
	"time"

	"github.com/synacor/argon2id"
	"github.com/sirupsen/logrus"

	"pineapple-server/internal/rng"
	"pineapple-server/pkg/deck"
	"pineapple-server/pkg/pineapple"
)

// PhaseWaiting is the room phase between hands
const PhaseWaiting = "waiting"

// Member is a player seated in a room
type Member struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
}

// Room is a table of players playing hands of pineapple.
// All methods are safe for concurrent use.
type Room struct {
	ID      string
	Name    string
	Created time.Time

	lock         sync.RWMutex
	members      []*Member
	round        int
	game         *pineapple.Game
	passcodeHash string
	options      pineapple.Options
}

// RoomState is the public view of a room
type RoomState struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Created     time.Time            `json:"created"`
	Round       int                  `json:"round"`
	Phase       string               `json:"phase"`
	Members     []*Member            `json:"members"`
	HasPasscode bool                 `json:"hasPasscode"`
	Game        *pineapple.GameState `json:"game,omitempty"`
}

// NewRoom returns a new room. An empty passcode leaves the room open.
func NewRoom(id, name, passcode string, options pineapple.Options) (*Room, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	r := &Room{
		ID:      id,
		Name:    name,
		Created: time.Now(),
		members: make([]*Member, 0),
		options: options,
	}

	if passcode != "" {
		hash, err := argon2id.DefaultHashPassword(passcode)
		if err != nil {
			return nil, err
		}

		r.passcodeHash = hash
	}

	return r, nil
}

// Join seats the player in the room. Joining again only updates the
// display name.
func (r *Room) Join(playerID, displayName, passcode string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.passcodeHash != "" {
		if err := argon2id.Compare(r.passcodeHash, passcode); err != nil {
			return ErrIncorrectPasscode
		}
	}

	for _, m := range r.members {
		if m.PlayerID == playerID {
			m.DisplayName = displayName
			return nil
		}
	}

	if len(r.members) >= r.options.MaxPlayers {
		return ErrRoomFull
	}

	r.members = append(r.members, &Member{
		PlayerID:    playerID,
		DisplayName: displayName,
	})

	return nil
}

// Leave removes the player from the room. A hand in progress keeps its
// participants, so a leaver's seat at the current hand stays open until
// the reveal.
func (r *Room) Leave(playerID string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for i, m := range r.members {
		if m.PlayerID == playerID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return nil
		}
	}

	return ErrNotInRoom
}

// HasMember returns true if the player is seated in the room
func (r *Room) HasMember(playerID string) bool {
	_, found := r.Member(playerID)
	return found
}

// Member returns a copy of the seated player
func (r *Room) Member(playerID string) (*Member, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	for _, m := range r.members {
		if m.PlayerID == playerID {
			member := *m
			return &member, true
		}
	}

	return nil, false
}

// MemberCount returns the number of seated players
func (r *Room) MemberCount() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.members)
}

// Members returns a copy of the seated players
func (r *Room) Members() []*Member {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.membersLocked()
}

func (r *Room) membersLocked() []*Member {
	members := make([]*Member, len(r.members))
	for i, m := range r.members {
		member := *m
		members[i] = &member
	}

	return members
}

// StartRound starts the next hand with the players currently seated.
// It returns the cards dealt to each player.
func (r *Room) StartRound(playerID string, logger logrus.FieldLogger, src rng.Generator) (map[string]deck.Hand, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if !r.hasMemberLocked(playerID) {
		return nil, ErrNotInRoom
	}

	if r.game != nil && r.game.Phase() != pineapple.PhaseReveal {
		return nil, ErrHandInProgress
	}

	players := make([]pineapple.Player, len(r.members))
	for i, m := range r.members {
		players[i] = pineapple.Player{ID: m.PlayerID, Name: m.DisplayName}
	}

	game, err := pineapple.NewGame(logger, players, r.round+1, src, r.options)
	if err != nil {
		return nil, err
	}

	dealt, err := game.DealInitial()
	if err != nil {
		return nil, err
	}

	r.round++
	r.game = game
	return dealt, nil
}

func (r *Room) hasMemberLocked(playerID string) bool {
	for _, m := range r.members {
		if m.PlayerID == playerID {
			return true
		}
	}

	return false
}

// Submit commits the player's batch for the current round
func (r *Room) Submit(playerID string, batch *pineapple.Batch) (*pineapple.Advance, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.game == nil {
		return nil, ErrNoActiveHand
	}

	return r.game.SubmitReady(playerID, batch)
}

// AbortHand throws away the current hand without scoring it. The room
// returns to waiting and keeps its hand counter.
func (r *Room) AbortHand() {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.game = nil
}

// Round returns the room's hand counter
func (r *Room) Round() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.round
}

// Phase returns the room phase, PhaseWaiting when no hand is active
func (r *Room) Phase() string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.phaseLocked()
}

func (r *Room) phaseLocked() string {
	if r.game == nil {
		return PhaseWaiting
	}

	return string(r.game.Phase())
}

// State returns the public view of the room
func (r *Room) State() *RoomState {
	r.lock.RLock()
	defer r.lock.RUnlock()

	state := &RoomState{
		ID:          r.ID,
		Name:        r.Name,
		Created:     r.Created,
		Round:       r.round,
		Phase:       r.phaseLocked(),
		Members:     r.membersLocked(),
		HasPasscode: r.passcodeHash != "",
	}

	if r.game != nil {
		state.Game = r.game.State()
	}

	return state
}

// PlayerState returns the current hand as seen by one player
func (r *Room) PlayerState(playerID string) (*pineapple.State, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.game == nil {
		return nil, ErrNoActiveHand
	}

	return r.game.GetPlayerState(playerID)
}

// Reveal returns the settled hand, or nil if the room is not at a reveal
func (r *Room) Reveal() *pineapple.Reveal {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.game == nil {
		return nil
	}

	return r.game.Reveal()
}
