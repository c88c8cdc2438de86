package room

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a player connected to a room via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer *Dealer

	playerID    string
	displayName string
	room        *Room
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, playerID, displayName string, room *Room) *Client {
	return &Client{
		send:        make(chan interface{}, 256),
		Close:       make(chan string, 1),
		Conn:        conn,
		playerID:    playerID,
		displayName: displayName,
		room:        room,
	}
}

// Send sends a message to the web client. It returns false if the
// client's buffer is full and the message was dropped.
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel of outgoing messages
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the player and room
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.playerID, c.room.ID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
