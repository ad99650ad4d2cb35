package room

import (
	"context"
	"encoding/json"
	"homegame-server/internal/jwt"
	"homegame-server/pkg/deck"
	"homegame-server/pkg/history"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

const testRoomID = "ABC123"

// identity always picks the last index, which leaves the deck in build order
type identity struct{}

func (identity) Intn(n int) int {
	return n - 1
}

type fakeTimer struct {
	fn      func()
	stopped bool
}

func (f *fakeTimer) Stop() bool {
	wasRunning := !f.stopped
	f.stopped = true
	return wasRunning
}

// fakeTimers collects scheduled callbacks so tests control when they fire
type fakeTimers struct {
	scheduled []*fakeTimer
}

func (f *fakeTimers) afterFunc(_ time.Duration, fn func()) timer {
	t := &fakeTimer{fn: fn}
	f.scheduled = append(f.scheduled, t)
	return t
}

// pending returns the number of timers that were neither fired nor stopped
func (f *fakeTimers) pending() int {
	n := 0
	for _, t := range f.scheduled {
		if !t.stopped {
			n++
		}
	}

	return n
}

// fire runs every pending timer callback
func (f *fakeTimers) fire() {
	scheduled := f.scheduled
	f.scheduled = nil
	for _, t := range scheduled {
		if !t.stopped {
			t.stopped = true
			t.fn()
		}
	}
}

// recorder keeps every record in memory
// It is only called from the run loop, which tests drain on their own goroutine.
type recorder struct {
	hands       []*history.Hand
	settlements []*history.Settlement
}

func (r *recorder) RecordHand(_ context.Context, hand *history.Hand) error {
	r.hands = append(r.hands, hand)
	return nil
}

func (r *recorder) RecordSettlement(_ context.Context, s *history.Settlement) error {
	r.settlements = append(r.settlements, s)
	return nil
}

type testRoom struct {
	t        *testing.T
	dealer   *Dealer
	timers   *fakeTimers
	recorder *recorder
}

func newTestRoom(t *testing.T) *testRoom {
	t.Helper()

	logger, _ := test.NewNullLogger()
	d := NewDealer(testRoomID, Options{
		Tokens:        jwt.NewSigner([]byte("test-secret"), time.Hour),
		Logger:        logger,
		RNG:           identity{},
		NextHandDelay: 2,
		ChatLimit:     10,
		MaxSeats:      4,
	})

	timers := &fakeTimers{}
	d.afterFunc = timers.afterFunc

	rec := &recorder{}
	d.opts.Recorder = rec

	return &testRoom{
		t:        t,
		dealer:   d,
		timers:   timers,
		recorder: rec,
	}
}

// drain runs everything queued for the run loop on the test goroutine
func (r *testRoom) drain() {
	for {
		select {
		case fn := <-r.dealer.execInRunLoop:
			fn()
		default:
			return
		}
	}
}

func (r *testRoom) connect() *Client {
	c := NewClient(nil, testRoomID)
	r.dealer.AddClient(c)
	r.drain()
	messages(c)
	return c
}

func (r *testRoom) disconnect(c *Client) bool {
	last := r.dealer.RemoveClient(c)
	r.drain()
	return last
}

func (r *testRoom) send(c *Client, msg map[string]interface{}) {
	r.t.Helper()

	b, err := json.Marshal(msg)
	if !assert.NoError(r.t, err) {
		r.t.FailNow()
	}

	r.dealer.ReceivedMessage(c, b)
	r.drain()
}

// join connects a new client and joins it, discarding the welcome messages
func (r *testRoom) join(name string) *Client {
	c := r.connect()
	r.send(c, map[string]interface{}{"type": "join", "name": name})
	if !assert.NotEmpty(r.t, c.playerID, "%s did not join", name) {
		r.t.FailNow()
	}

	return c
}

// fire runs the pending countdown timers and the work they queue
func (r *testRoom) fire() {
	r.timers.fire()
	r.drain()
}

func (r *testRoom) act(c *Client, action string, amount int) {
	r.t.Helper()

	r.send(c, map[string]interface{}{"type": "action", "action": action, "amount": amount})
	assert.Nil(r.t, lastOf[*Error](messages(c)), "%s %s", c.playerID, action)
}

// foldActive folds for whoever is to act
func (r *testRoom) foldActive(clients ...*Client) {
	r.t.Helper()

	active := r.dealer.game.ActivePlayer()
	if !assert.NotNil(r.t, active) {
		r.t.FailNow()
	}

	for _, c := range clients {
		if c.playerID == active.ID {
			r.act(c, "fold", 0)
			return
		}
	}

	r.t.Fatalf("no client for %s", active.ID)
}

// stack fixes the order of the next decks
func (r *testRoom) stack(cards string) {
	var stacked []deck.Card
	for _, s := range strings.Split(cards, ",") {
		stacked = append(stacked, deck.CardFromString(s))
	}

	r.dealer.deck.Stack(stacked)
}

// messages returns everything sent to the client so far
func messages(c *Client) []interface{} {
	var msgs []interface{}
	for {
		select {
		case msg := <-c.SendChan():
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

func lastOf[T any](msgs []interface{}) T {
	var last T
	for _, msg := range msgs {
		if m, ok := msg.(T); ok {
			last = m
		}
	}

	return last
}

func allOf[T any](msgs []interface{}) []T {
	var all []T
	for _, msg := range msgs {
		if m, ok := msg.(T); ok {
			all = append(all, m)
		}
	}

	return all
}
