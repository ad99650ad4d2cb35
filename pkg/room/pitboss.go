package room

import (
	"homegame-server/internal/config"
	"homegame-server/internal/rng"
	"homegame-server/pkg/handrank"
	"homegame-server/pkg/history"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SeatTokens signs and verifies the tokens players use to reclaim their seat
type SeatTokens interface {
	Sign(roomID, playerID string) (string, error)
	Verify(token, roomID string) (string, error)
}

// Options configures every room a PitBoss opens
type Options struct {
	Oracle   handrank.Oracle
	Tokens   SeatTokens
	Recorder history.Recorder
	Logger   logrus.FieldLogger
	RNG      rng.Generator

	// NextHandDelay is the countdown, in seconds, before the next hand is dealt
	NextHandDelay int
	ChatLimit     int
	MaxSeats      int
}

// OptionsFromConfig returns room options from the configuration
// Oracle, Tokens and Recorder are left for the caller.
func OptionsFromConfig() Options {
	cfg := config.Instance().Room
	return Options{
		NextHandDelay: cfg.NextHandDelay,
		ChatLimit:     cfg.ChatLimit,
		MaxSeats:      cfg.MaxSeats,
	}
}

func (o Options) withDefaults() Options {
	defaults := config.DefaultConfig().Room
	if o.Oracle == nil {
		o.Oracle = handrank.Chehsunliu{}
	}

	if o.Recorder == nil {
		o.Recorder = history.Nop{}
	}

	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}

	if o.RNG == nil {
		o.RNG = rng.Crypto{}
	}

	if o.NextHandDelay <= 0 {
		o.NextHandDelay = defaults.NextHandDelay
	}

	if o.ChatLimit <= 0 {
		o.ChatLimit = defaults.ChatLimit
	}

	if o.MaxSeats <= 0 {
		o.MaxSeats = defaults.MaxSeats
	}

	return o
}

// NewRoomCode returns a short code for a new room
func NewRoomCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
}

// connectRequest is closed once the client was handed to its dealer
type connectRequest struct {
	client *Client
	added  chan struct{}
}

// PitBoss is responsible for dispatching clients to rooms
type PitBoss struct {
	opts       Options
	dealers    map[string]*Dealer
	connect    chan connectRequest
	disconnect chan *Client
	count      chan chan int
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(opts Options) *PitBoss {
	return &PitBoss{
		opts:       opts.withDefaults(),
		dealers:    make(map[string]*Dealer),
		connect:    make(chan connectRequest, 256),
		disconnect: make(chan *Client, 256),
		count:      make(chan chan int),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case req := <-p.connect:
			client := req.client
			p.opts.Logger.WithField("client", client.String()).Debug("client connected")
			dealer, found := p.dealers[client.RoomID]
			if !found {
				dealer = NewDealer(client.RoomID, p.opts)
				dealer.StartShift()
				p.dealers[client.RoomID] = dealer
			}

			dealer.AddClient(client)
			close(req.added)
		case client := <-p.disconnect:
			p.opts.Logger.WithField("client", client.String()).Debug("client disconnected")
			dealer, found := p.dealers[client.RoomID]
			if !found {
				p.opts.Logger.WithField("room", client.RoomID).WithField("type", "exception").Error("room not found")
				continue
			}

			// a room with a game waits for its players to come back
			if dealer.RemoveClient(client) && !dealer.HasGame() {
				p.opts.Logger.WithField("room", client.RoomID).Info("retiring room")
				dealer.EndShift()
				delete(p.dealers, client.RoomID)
			}
		case reply := <-p.count:
			reply <- len(p.dealers)
		}
	}
}

// ClientConnected is called when a client connects to the server
// It returns once the client belongs to a room, so messages read afterwards reach the dealer in order.
func (p *PitBoss) ClientConnected(client *Client) {
	req := connectRequest{
		client: client,
		added:  make(chan struct{}),
	}

	p.connect <- req
	<-req.added
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}

// RoomCount returns the number of open rooms
func (p *PitBoss) RoomCount() int {
	reply := make(chan int)
	p.count <- reply
	return <-reply
}
