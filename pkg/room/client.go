package room

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const clientBufferSize = 256

// Client is a client connected to the server via websockets
type Client struct {
	// ID identifies the connection, not the player
	ID uuid.UUID

	// RoomID is the room the client connected to
	RoomID string

	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	// dealer is set by the PitBoss before ClientConnected returns
	dealer *Dealer

	// playerID is set once the client joins; only read and written in the dealer's run loop
	playerID string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, roomID string) *Client {
	return &Client{
		ID:     uuid.New(),
		RoomID: roomID,
		send:   make(chan interface{}, clientBufferSize),
		Close:  make(chan string, 1),
		Conn:   conn,
	}
}

// Send send a message to the web client
// Messages are dropped if the client is not keeping up.
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		logrus.WithField("client", c.String()).Warn("send buffer full, dropping message")
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// Disconnect asks the write loop to close the connection
func (c *Client) Disconnect(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}

// String returns a traceable identifier for the client and room
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.ID, c.RoomID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg []byte) {
	if c.dealer == nil {
		logrus.WithField("client", c.String()).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
