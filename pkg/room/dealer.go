package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"pineapple-server/internal/rng"
	"pineapple-server/pkg/deck"
	"pineapple-server/pkg/history"
	"pineapple-server/pkg/pineapple"
)

type state int

const (
	stateRoomEvent state = iota
	stateGameEvent
	stateLogEvent
)

// Dealer runs a single room. It serializes every mutating room action
// through its run loop, keeps the activity feed, and pushes state to
// connected clients.
type Dealer struct {
	lobby    *Lobby
	room     *Room
	recorder history.Recorder
	src      rng.Generator
	logger   logrus.FieldLogger

	clients map[*Client]bool
	lock    sync.RWMutex

	logMessages []*LogMessage

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
}

// DealBatch is the payload behind a dealBatch push
type DealBatch struct {
	RoundIndex int       `json:"roundIndex"`
	Cards      deck.Hand `json:"cards"`
}

// memberState decorates a room member with connection status
type memberState struct {
	*Member
	IsConnected bool `json:"isConnected"`
}

type roomStateData struct {
	*RoomState
	Members []*memberState `json:"members"`
}

// NewDealer creates a new dealer for the room
// This is called from a blocking state, so it needs to return quickly
func NewDealer(lobby *Lobby, room *Room, recorder history.Recorder, src rng.Generator) *Dealer {
	return &Dealer{
		lobby:    lobby,
		room:     room,
		recorder: recorder,
		src:      src,
		logger: logrus.WithFields(logrus.Fields{
			"room": room.ID,
			"name": room.Name,
		}),
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
// Room returns the room this dealer works
func (d *Dealer) Room() *Room {
	return d.room
}

func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case s := <-d.stateChanged:
			switch s {
			case stateRoomEvent:
				d.sendRoomState()
			case stateGameEvent:
				d.sendRoomState()
				d.sendPlayerStates()
			case stateLogEvent:
				d.sendLogMessages()
			}
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// Exec runs fn in the dealer run loop and waits for the result. It
// fails with ErrRoomNotFound once the dealer has gone off shift.
func (d *Dealer) Exec(fn func() error) error {
	errCh := make(chan error, 1)

	select {
	case d.execInRunLoop <- func() { errCh <- fn() }:
	case <-d.close:
		return ErrRoomNotFound
	}

	select {
	case err := <-errCh:
		return err
	case <-d.close:
		return ErrRoomNotFound
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.stateChanged <- stateRoomEvent
	d.execInRunLoop <- func() {
		client.Send(&Response{Key: "logs", Data: d.logMessages})

		state, err := d.room.PlayerState(client.playerID)
		if err != nil {
			if !errors.Is(err, ErrNoActiveHand) && !errors.Is(err, pineapple.ErrPlayerNotFound) {
				d.logger.WithError(err).Error("could not get player state")
			}

			return
		}

		client.Send(&Response{Key: "playerState", Data: state})
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) {
	d.lock.Lock()
	delete(d.clients, client)
	d.lock.Unlock()

	d.stateChanged <- stateRoomEvent
}

// Join seats the player and announces them to the room
func (d *Dealer) Join(playerID, displayName, passcode string) error {
	return d.Exec(func() error {
		if err := d.room.Join(playerID, displayName, passcode); err != nil {
			return err
		}

		d.addLogMessage(newLogMessage(playerID, "%s joined the room", displayName))
		d.stateChanged <- stateRoomEvent
		d.stateChanged <- stateLogEvent
		return nil
	})
}

// Leave unseats the player. The lobby tears the room down after the
// last player leaves.
func (d *Dealer) Leave(playerID string) error {
	empty := false
	err := d.Exec(func() error {
		name := playerID
		for _, m := range d.room.Members() {
			if m.PlayerID == playerID {
				name = m.DisplayName
			}
		}

		if err := d.room.Leave(playerID); err != nil {
			return err
		}

		if d.room.MemberCount() == 0 {
			empty = true
			return nil
		}

		d.addLogMessage(newLogMessage(playerID, "%s left the room", name))
		d.stateChanged <- stateRoomEvent
		d.stateChanged <- stateLogEvent
		return nil
	})
	if err != nil {
		return err
	}

	// tear the room down outside the run loop so EndShift doesn't
	// race the Exec result
	if empty && d.lobby != nil {
		d.lobby.removeRoom(d.room.ID)
	}

	return nil
}

// StartRound starts the next hand on behalf of the player
func (d *Dealer) StartRound(playerID string) error {
	return d.Exec(func() error {
		dealt, err := d.room.StartRound(playerID, d.logger, d.src)
		if err != nil {
			return err
		}

		d.sendDealt(dealt, 0)
		d.addLogMessage(newLogMessage(playerID, "hand %d started", d.room.Round()))
		d.stateChanged <- stateGameEvent
		d.stateChanged <- stateLogEvent
		return nil
	})
}

// Submit commits the player's batch for the current round
func (d *Dealer) Submit(playerID string, batch *pineapple.Batch) error {
	return d.Exec(func() error {
		advance, err := d.room.Submit(playerID, batch)
		if err != nil {
			if pineapple.IsFatal(err) {
				d.abortHand(err)
			}

			return err
		}

		if advance == nil {
			// the commit barrier is still holding
			d.stateChanged <- stateRoomEvent
			return nil
		}

		if advance.Reveal != nil {
			d.addLogMessage(newLogMessage("", "hand %d settled", advance.Reveal.Round))
			d.sendReveal(advance.Reveal)
			d.recordHand(advance.Reveal)
			d.stateChanged <- stateLogEvent
		} else {
			d.sendDealt(advance.Dealt, advance.RoundIndex)
		}

		d.stateChanged <- stateGameEvent
		return nil
	})
}

// abortHand throws the unscoreable hand away rather than settle it wrong
// NOTE: must only be called from the run loop
func (d *Dealer) abortHand(err error) {
	d.logger.WithError(err).Error("hand cannot continue, aborting")
	d.room.AbortHand()
	d.addLogMessage(newLogMessage("", "hand %d was aborted", d.room.Round()))
	d.stateChanged <- stateGameEvent
	d.stateChanged <- stateLogEvent
}

// sendDealt delivers each player only their own cards
// NOTE: must only be called from the run loop
func (d *Dealer) sendDealt(dealt map[string]deck.Hand, roundIndex int) {
	for _, client := range d.Clients() {
		cards, ok := dealt[client.playerID]
		if !ok {
			continue
		}

		client.Send(&Response{
			Key:  "dealBatch",
			Data: &DealBatch{RoundIndex: roundIndex, Cards: cards},
		})
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendReveal(reveal *pineapple.Reveal) {
	for _, client := range d.Clients() {
		client.Send(&Response{Key: "reveal", Data: reveal})
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendRoomState() {
	state := d.room.State()

	connected := make(map[string]bool)
	for _, client := range d.Clients() {
		connected[client.playerID] = true
	}

	members := make([]*memberState, len(state.Members))
	for i, m := range state.Members {
		members[i] = &memberState{Member: m, IsConnected: connected[m.PlayerID]}
	}

	data := &roomStateData{RoomState: state, Members: members}
	for _, client := range d.Clients() {
		client.Send(&Response{Key: "roomState", Data: data})
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendPlayerStates() {
	for _, client := range d.Clients() {
		state, err := d.room.PlayerState(client.playerID)
		if err != nil {
			if !errors.Is(err, ErrNoActiveHand) && !errors.Is(err, pineapple.ErrPlayerNotFound) {
				d.logger.WithError(err).Error("could not get player state")
			}

			continue
		}

		client.Send(&Response{Key: "playerState", Data: state})
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendLogMessages() {
	for _, client := range d.Clients() {
		client.Send(&Response{Key: "logs", Data: d.logMessages})
	}
}

func (d *Dealer) recordHand(reveal *pineapple.Reveal) {
	if d.recorder == nil {
		return
	}

	if err := d.recorder.RecordHand(context.Background(), d.room.ID, reveal); err != nil {
		d.logger.WithError(err).Error("could not record hand")
	}
}

func parseBatch(data map[string]interface{}) (*pineapple.Batch, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	batch := &pineapple.Batch{}
	if err := json.Unmarshal(raw, batch); err != nil {
		return nil, errors.New("could not parse batch")
	}

	return batch, nil
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	switch msg.Action {
	case "startRound":
		if err := d.StartRound(c.playerID); err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		c.Send(OK(msg.Context))
	case "submitReady":
		batch, err := parseBatch(msg.AdditionalData)
		if err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		if err := d.Submit(c.playerID, batch); err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		c.Send(OK(msg.Context))
	case "roomState":
		d.execInRunLoop <- func() {
			d.sendRoomState()
		}
	case "playerState":
		state, err := d.room.PlayerState(c.playerID)
		if err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		c.Send(&Response{Key: "playerState", Data: state, Context: msg.Context})
	default:
		d.logger.WithField("msg", msg).Warn("unknown message")
		c.Send(newErrorResponse(msg.Context, fmt.Errorf("unknown action: %s", msg.Action)))
	}
}
