package room

import (
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestPitBoss_retiresEmptyRooms(t *testing.T) {
	a := assert.New(t)

	logger, _ := test.NewNullLogger()
	p := NewPitBoss(Options{Logger: logger})
	p.StartShift()

	roomCount := func(n int) func() bool {
		return func() bool {
			return p.RoomCount() == n
		}
	}

	alice := NewClient(nil, "ROOM01")
	bob := NewClient(nil, "ROOM02")
	p.ClientConnected(alice)
	p.ClientConnected(bob)
	a.Eventually(roomCount(2), time.Second, time.Millisecond*10)

	p.ClientDisconnected(alice)
	a.Eventually(roomCount(1), time.Second, time.Millisecond*10)

	a.NotNil(p.opts.Oracle)
	a.Equal(4, p.opts.NextHandDelay)
}

func TestPitBoss_keepsRoomsWithGames(t *testing.T) {
	a := assert.New(t)

	logger, _ := test.NewNullLogger()
	p := NewPitBoss(Options{Logger: logger})
	p.StartShift()

	alice := NewClient(nil, "ROOM01")
	bob := NewClient(nil, "ROOM01")
	p.ClientConnected(alice)
	p.ClientConnected(bob)

	d := alice.dealer
	if !a.NotNil(d) {
		return
	}

	a.Len(d.Clients(), 2)
	a.True(d == bob.dealer)

	alice.ReceivedMessage([]byte(`{"type":"join","name":"Alice"}`))
	bob.ReceivedMessage([]byte(`{"type":"join","name":"Bob"}`))
	alice.ReceivedMessage([]byte(`{"type":"start-game","buyIn":100,"smallBlind":1,"bigBlind":2}`))
	a.Eventually(d.HasGame, time.Second, time.Millisecond*10)

	p.ClientDisconnected(alice)
	p.ClientDisconnected(bob)

	time.Sleep(time.Millisecond * 50)
	a.Equal(1, p.RoomCount())
}

func TestPitBoss_joinRightAfterConnect(t *testing.T) {
	a := assert.New(t)

	logger, _ := test.NewNullLogger()
	p := NewPitBoss(Options{Logger: logger})
	p.StartShift()

	const n = 50
	clients := make([]*Client, n)
	for i := range clients {
		c := NewClient(nil, fmt.Sprintf("ROOM%02d", i%5))
		p.ClientConnected(c)
		c.ReceivedMessage([]byte(fmt.Sprintf(`{"type":"join","name":"Player %d"}`, i)))
		clients[i] = c
	}

	for i, c := range clients {
		var joined *Joined
		a.Eventually(func() bool {
			if j := lastOf[*Joined](messages(c)); j != nil {
				joined = j
			}

			return joined != nil
		}, time.Second, time.Millisecond*10, "client %d never joined", i)
	}

	a.Equal(5, p.RoomCount())
}

func TestNewRoomCode(t *testing.T) {
	a := assert.New(t)

	code := NewRoomCode()
	a.Len(code, 6)
	a.Regexp(`^[0-9A-F]{6}$`, code)
	a.NotEqual(code, NewRoomCode())
}
