package room

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pineapple-server/internal/rng"
	"pineapple-server/pkg/history"
	"pineapple-server/pkg/pineapple"
)

// Lobby dispatches players to rooms and keeps a dealer on duty for
// every live room
type Lobby struct {
	store    Store
	recorder history.Recorder
	options  pineapple.Options
	src      rng.Generator

	lock    sync.RWMutex
	dealers map[string]*Dealer

	connect    chan *Client
	disconnect chan *Client
}

// NewLobby returns a new lobby
func NewLobby(store Store, recorder history.Recorder, options pineapple.Options) *Lobby {
	return &Lobby{
		store:      store,
		recorder:   recorder,
		options:    options,
		src:        rng.Crypto{},
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
	}
}

// StartShift starts the lobby run loop
func (l *Lobby) StartShift() {
	go l.runLoop()
}

func (l *Lobby) runLoop() {
	for {
		select {
		case client := <-l.connect:
			logrus.WithField("player", client.String()).Debug("client connected")
			dealer, err := l.Dealer(client.room.ID)
			if err != nil {
				select {
				case client.Close <- "room not found":
				default:
				}

				continue
			}

			dealer.AddClient(client)
		case client := <-l.disconnect:
			logrus.WithField("player", client.String()).Debug("client disconnected")
			dealer, err := l.Dealer(client.room.ID)
			if err != nil {
				continue
			}

			dealer.RemoveClient(client)
		}
	}
}

// ClientConnected is called when a client connects to the server
func (l *Lobby) ClientConnected(client *Client) {
	l.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (l *Lobby) ClientDisconnected(client *Client) {
	l.disconnect <- client
}

// CreateRoom creates a room, stores it, and puts a dealer on duty
func (l *Lobby) CreateRoom(name, passcode string) (*Room, error) {
	room, err := NewRoom(uuid.New().String(), name, passcode, l.options)
	if err != nil {
		return nil, err
	}

	if err := l.store.Set(room); err != nil {
		return nil, err
	}

	dealer := NewDealer(l, room, l.recorder, l.src)
	dealer.StartShift()

	l.lock.Lock()
	l.dealers[room.ID] = dealer
	l.lock.Unlock()

	logrus.WithFields(logrus.Fields{
		"room": room.ID,
		"name": room.Name,
	}).Info("room created")

	return room, nil
}

// Dealer returns the dealer on duty for the room
func (l *Lobby) Dealer(roomID string) (*Dealer, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	dealer, found := l.dealers[roomID]
	if !found {
		return nil, ErrRoomNotFound
	}

	return dealer, nil
}

// removeRoom sends the dealer home and deletes the emptied room
func (l *Lobby) removeRoom(id string) {
	l.lock.Lock()
	dealer, found := l.dealers[id]
	delete(l.dealers, id)
	l.lock.Unlock()

	if !found {
		return
	}

	dealer.EndShift()
	if err := l.store.Delete(id); err != nil {
		logrus.WithError(err).WithField("room", id).Error("could not delete room")
	}

	logrus.WithField("room", id).Info("room removed")
}
