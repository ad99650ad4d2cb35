package holdem

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	a := assert.New(t)

	_, err := New(seats(100, 100), 0, 10)
	a.Equal(ErrInvalidBlinds, err)

	_, err = New(seats(100, 100), 20, 10)
	a.Equal(ErrInvalidBlinds, err)

	_, err = New(seats(100), 5, 10)
	a.Equal(ErrInsufficientPlayers, err)

	players := seats(100, 200, 300)
	g, err := New(players, 5, 10)
	a.NoError(err)
	a.Equal(Waiting, g.Phase)
	a.Equal(10, g.MinRaise)
	a.Equal(0, g.DealerIndex)
	a.Equal(NoSeat, g.LastRaiserIndex)
	a.Nil(g.ActivePlayer())
	a.Len(g.Pots, 1)
	a.Equal([]string{"p1", "p2", "p3"}, g.Pots[0].Eligible)
	a.Equal(600, g.TotalChips())

	players[0].Chips = 0
	a.Equal(100, g.Players[0].Chips, "players are copied")
}

func TestGameState_Clone(t *testing.T) {
	a := assert.New(t)

	g := startHand(t, newGame(t, 5, 10, 100, 100, 100), newDeck())
	c := g.Clone()
	a.Equal(g, c)

	c.Players[0].Chips = 1
	c.Players[0].HoleCards[0].Rank = 3
	c.Pots[0].Eligible[0] = "x"
	c.CommunityCards = append(c.CommunityCards, c.Players[1].HoleCards[0])

	a.Equal(100, g.Players[0].Chips)
	a.NotEqual(c.Players[0].Chips, g.Players[0].Chips)
	a.NotEqual(c.Players[0].HoleCards[0], g.Players[0].HoleCards[0])
	a.Equal("p1", g.Pots[0].Eligible[0])
	a.Empty(g.CommunityCards)
}

func TestPhase_JSON(t *testing.T) {
	a := assert.New(t)

	b, err := json.Marshal(struct {
		Phase Phase `json:"phase"`
	}{Flop})
	a.NoError(err)
	a.JSONEq(`{"phase":"flop"}`, string(b))

	a.Equal("Phase(42)", Phase(42).String())
	a.True(River.IsBettingRound())
	a.False(Showdown.IsBettingRound())
	a.False(Complete.InHand())
	a.True(Showdown.InHand())
}

func TestParseAction(t *testing.T) {
	a := assert.New(t)

	act, err := ParseAction("raise", 40)
	a.NoError(err)
	a.Equal(Raise{Amount: 40}, act)

	act, err = ParseAction("call", 40)
	a.NoError(err)
	a.Equal(Call{}, act)

	act, err = ParseAction("all-in", 0)
	a.NoError(err)
	a.Equal(KindAllIn, act.Kind())

	_, err = ParseAction("bet", 10)
	a.ErrorIs(err, ErrUnknownAction)
}
