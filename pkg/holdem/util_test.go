package holdem

import (
	"fmt"
	"homegame-server/pkg/deck"
	"testing"

	"github.com/stretchr/testify/assert"
)

// identity always picks the last index, which leaves the deck in build order
type identity struct{}

func (identity) Intn(n int) int {
	return n - 1
}

func newDeck() *deck.Deck {
	return deck.New(identity{})
}

// seats returns players p1, p2, ... with the provided stacks
func seats(chips ...int) []*Player {
	players := make([]*Player, len(chips))
	for i, c := range chips {
		id := fmt.Sprintf("p%d", i+1)
		players[i] = NewPlayer(id, "Player "+id, c)
	}

	return players
}

func newGame(t *testing.T, sb, bb int, chips ...int) *GameState {
	t.Helper()

	g, err := New(seats(chips...), sb, bb)
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	return g
}

func startHand(t *testing.T, g *GameState, d *deck.Deck) *GameState {
	t.Helper()

	next, err := g.StartHand(d)
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	return next
}

func act(t *testing.T, g *GameState, playerID string, action Action, d *deck.Deck) *GameState {
	t.Helper()

	next, err := g.ApplyAction(playerID, action, d)
	if !assert.NoError(t, err, "%s %v", playerID, action) {
		t.FailNow()
	}

	return next
}

func assertConserved(t *testing.T, g *GameState, total int) {
	t.Helper()

	assert.Equal(t, total, g.TotalChips(), "chips were created or destroyed")

	if g.Phase.InHand() {
		committed := 0
		for _, p := range g.Players {
			committed += p.TotalBet
		}

		assert.Equal(t, committed, g.PotTotal(), "pots do not match contributions")
	}

	for _, pot := range g.Pots {
		for _, id := range pot.Eligible {
			assert.True(t, g.Player(id).IsLive(), "%s is eligible but not live", id)
		}
	}
}

func bets(g *GameState) []int {
	b := make([]int, len(g.Players))
	for i, p := range g.Players {
		b[i] = p.Bet
	}

	return b
}

func stacks(g *GameState) []int {
	c := make([]int, len(g.Players))
	for i, p := range g.Players {
		c[i] = p.Chips
	}

	return c
}
