package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameState_AdvanceDealer(t *testing.T) {
	a := assert.New(t)

	g := newGame(t, 5, 10, 100, 100, 100)
	g.Players[1].SittingOut = true

	next := g.AdvanceDealer()
	a.Equal(0, g.DealerIndex)
	a.Equal(2, next.DealerIndex)

	next = next.AdvanceDealer()
	a.Equal(0, next.DealerIndex, "the button wraps around")
}

func TestGameState_SitOut_onTurn(t *testing.T) {
	a := assert.New(t)

	d := newDeck()
	g := startHand(t, newGame(t, 5, 10, 100, 100, 100), d)

	next, err := g.SitOut("p1", d)
	a.NoError(err)
	a.True(next.Players[0].Folded, "a player sitting out on their turn folds")
	a.True(next.Players[0].SittingOut)
	a.Equal(1, next.ActivePlayerIndex)
	a.Equal(Preflop, next.Phase)
	assertConserved(t, next, 300)

	_, err = g.SitOut("p9", d)
	a.Equal(ErrUnknownPlayer, err)
}

func TestGameState_SitOut_offTurn(t *testing.T) {
	a := assert.New(t)

	d := newDeck()
	g := startHand(t, newGame(t, 5, 10, 100, 100, 100), d)

	g, err := g.SitOut("p2", d)
	a.NoError(err)
	a.False(g.Players[1].Folded)
	a.Equal([]string{"p1", "p3"}, g.Pots[0].Eligible)
	a.Equal(0, g.ActivePlayerIndex)
	assertConserved(t, g, 300)

	// the sitting out player's blind stays in the pot
	g, err = g.SitOut("p3", d)
	a.NoError(err)
	a.Equal(Complete, g.Phase)
	a.Equal(15, g.PotTotal())

	winners, err := g.AwardToLastPlayer()
	a.NoError(err)
	g, payouts := g.DistributeWinnings(winners)
	a.Equal([]Payout{{PlayerID: "p1", Amount: 15, HandDescription: LastPlayerStanding}}, payouts)
	a.Equal([]int{115, 95, 90}, stacks(g))
}

func TestGameState_SitOut_betweenHands(t *testing.T) {
	a := assert.New(t)

	g := newGame(t, 5, 10, 100, 100, 100)
	g, err := g.SitOut("p2", newDeck())
	a.NoError(err)
	a.Equal(Waiting, g.Phase)
	a.True(g.Players[1].SittingOut)

	g = startHand(t, g, newDeck())
	a.Nil(g.Players[1].HoleCards)
}

func TestGameState_SitIn(t *testing.T) {
	a := assert.New(t)

	d := newDeck()
	g := startHand(t, newGame(t, 5, 10, 100, 100, 100, 100), d)
	g, err := g.SitOut("p2", d)
	a.NoError(err)

	g, err = g.SitIn("p2")
	a.NoError(err)
	a.False(g.Players[1].SittingOut)
	a.True(g.Players[1].Folded, "returning mid-hand waits for the next hand")

	_, err = g.SitIn("p9")
	a.Equal(ErrUnknownPlayer, err)
}

func TestGameState_AddChips(t *testing.T) {
	a := assert.New(t)

	d := newDeck()
	g := newGame(t, 5, 10, 100, 0, 100)
	g.Players[1].SittingOut = true

	g, err := g.AddChips("p2", 50)
	a.NoError(err)
	a.Equal(50, g.Players[1].Chips)
	a.False(g.Players[1].SittingOut)

	g = startHand(t, g, d)
	_, err = g.AddChips("p2", 50)
	a.Equal(ErrHandNotComplete, err)
}

func TestGameState_AbortHand(t *testing.T) {
	a := assert.New(t)

	d := newDeck()
	g := startHand(t, newGame(t, 5, 10, 100, 100, 100), d)
	g = act(t, g, "p1", Raise{Amount: 30}, d)

	g = g.AbortHand()
	a.Equal(Complete, g.Phase)
	a.Equal([]int{100, 100, 100}, stacks(g))
	a.Equal(0, g.PotTotal())
	assertConserved(t, g, 300)
}

func TestGameState_SitOutBusted(t *testing.T) {
	a := assert.New(t)

	g := newGame(t, 5, 10, 100, 0, 100)
	a.Equal(2, g.PlayersWithChips())

	next := g.SitOutBusted().AdvanceDealer()
	a.True(next.Players[1].SittingOut)
	a.False(g.Players[1].SittingOut)
	a.Equal(2, next.DealerIndex, "the button skips the busted player")
}
