package room

import (
	"homegame-server/pkg/deck"
	"homegame-server/pkg/holdem"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sanity-io/litter"
	"github.com/sirupsen/logrus"
)

// timer is the part of *time.Timer the dealer uses
type timer interface {
	Stop() bool
}

// afterFunc schedules fn on another goroutine; swapped out in tests
type afterFunc func(d time.Duration, fn func()) timer

func realAfterFunc(d time.Duration, fn func()) timer {
	return time.AfterFunc(d, fn)
}

// seat is a player's identity in the room
// It outlives hands, games and connections.
type seat struct {
	id     string
	name   string
	client *Client

	// buyIn is the chips bought this session; buyInUnits is the same in currency
	buyIn      int
	buyInUnits float64
}

// Dealer runs a single room
// Every change to room state happens in the run loop, one message at a time.
type Dealer struct {
	id      string
	opts    Options
	log     logrus.FieldLogger
	clients map[*Client]bool
	lock    sync.RWMutex
	hasGame atomic.Bool

	// run loop state
	seats        []*seat
	hostID       string
	counter      int
	game         *holdem.GameState
	deck         *deck.Deck
	chipsPerUnit float64
	handNumber   int
	handOpen     bool
	deckHash     string
	chatLog      []*Chat
	countdown    countdown
	afterFunc    afterFunc

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(roomID string, opts Options) *Dealer {
	opts = opts.withDefaults()

	return &Dealer{
		id:            roomID,
		opts:          opts,
		log:           opts.Logger.WithField("room", roomID),
		clients:       make(map[*Client]bool),
		deck:          deck.New(opts.RNG),
		afterFunc:     realAfterFunc,
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// ID returns the room ID
func (d *Dealer) ID() string {
	return d.id
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// HasGame returns true from the start of a game until the session ends
func (d *Dealer) HasGame() bool {
	return d.hasGame.Load()
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.log.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.log.Debug("terminating dealer run loop")
			return
		}
	}
}

// enqueue runs fn in the run loop
// Safe to call from any goroutine, including timers that fire after the shift ended.
func (d *Dealer) enqueue(fn func()) {
	select {
	case d.execInRunLoop <- fn:
	case <-d.close:
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.enqueue(func() {
		client.Send(d.publicState())
	})
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	d.enqueue(func() {
		d.clientDisconnected(client)
	})

	return nClients == 0
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, raw []byte) {
	d.enqueue(func() {
		msg, err := DecodePayload(raw)
		if err != nil {
			d.log.WithField("client", c.String()).WithField("msg", string(raw)).Info("invalid message")
			c.Send(newErrorMessage(err))
			return
		}

		if err := d.handle(c, msg); err != nil {
			d.log.WithError(err).WithFields(logrus.Fields{
				"client": c.String(),
				"player": c.playerID,
				"type":   msg.Type,
			}).Info("message rejected")
			c.Send(newErrorMessage(err))
		}
	})
}

// NOTE: must only be called from the run loop
func (d *Dealer) handle(c *Client, msg *PayloadIn) error {
	if msg.Type == TypeJoin {
		return d.join(c, msg.Name, msg.Token)
	}

	s := d.seatForClient(c)
	if s == nil {
		return ErrNotJoined
	}

	switch msg.Type {
	case TypeStartGame:
		return d.startGame(s, msg.BuyIn, msg.SmallBlind, msg.BigBlind, msg.BuyInUnits)
	case TypeAction:
		return d.action(s, msg.Action, msg.Amount)
	case TypeNextHand:
		return d.nextHand(s)
	case TypeEndSession:
		return d.endSession(s)
	case TypeRebuy:
		return d.rebuy(s, msg.Amount)
	case TypeKick:
		return d.kick(s, msg.TargetID)
	case TypeChat:
		d.chat(s, msg.Message)
		return nil
	}

	return ErrInvalidMessage
}

// NOTE: must only be called from the run loop
func (d *Dealer) seatByID(id string) *seat {
	for _, s := range d.seats {
		if s.id == id {
			return s
		}
	}

	return nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) seatForClient(c *Client) *seat {
	if c.playerID == "" {
		return nil
	}

	if s := d.seatByID(c.playerID); s != nil && s.client == c {
		return s
	}

	return nil
}

// setGame replaces the game snapshot
// NOTE: must only be called from the run loop
func (d *Dealer) setGame(g *holdem.GameState) {
	d.game = g
	d.hasGame.Store(g != nil)

	if g != nil && d.log != nil {
		d.log.WithField("phase", g.Phase).Debug(litter.Sdump(g))
	}
}

// transition applies a new snapshot and resolves the hand if it just finished
// NOTE: must only be called from the run loop
func (d *Dealer) transition(next *holdem.GameState) {
	d.setGame(next)

	if d.handOpen && next.Phase == holdem.Complete {
		d.resolveHand()
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) broadcast(msg interface{}) {
	for _, client := range d.Clients() {
		client.Send(msg)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) broadcastState() {
	d.broadcast(d.publicState())
}
