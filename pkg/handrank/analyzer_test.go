package handrank

import (
	"errors"
	"homegame-server/pkg/deck"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandAnalyzer_GetHand(t *testing.T) {
	hands := []struct {
		cards string
		hand  Hand
	}{
		{"Ah,Kh,Qh,Jh,Th,2c,3d", RoyalFlush},
		{"5d,4d,3d,2d,Ad,Kc,Kh", StraightFlush},
		{"9c,9d,9h,9s,2c,2d,2h", FourOfAKind},
		{"Kc,Kd,Kh,2s,2c,7d", FullHouse},
		{"Qc,Qd,Qh,8s,8c,8d,2h", FullHouse},
		{"2h,7h,Qh,Jh,3h,9d,Tc", Flush},
		{"Ac,2d,3h,4s,5c,9d,Jh", Straight},
		{"7c,7d,7h,Ks,2c,9d,Jh", ThreeOfAKind},
		{"7c,7d,2h,2s,Kc,Kd,Jh", TwoPair},
		{"7c,7d,2h,4s,Kc,9d,Jh", OnePair},
		{"7c,8d,2h,4s,Kc,9d,Jh", HighCard},
	}

	for _, test := range hands {
		h := NewHandAnalyzer(deck.CardsFromString(test.cards))
		assert.Equal(t, test.hand, h.GetHand(), test.cards)
	}
}

func TestHandAnalyzer_GetStrength(t *testing.T) {
	a := assert.New(t)

	strength := func(cards string) int {
		return NewHandAnalyzer(deck.CardsFromString(cards)).GetStrength()
	}

	// a wheel is the lowest straight
	a.Less(strength("Ac,2d,3h,4s,5c,9d,Jh"), strength("2c,3d,4h,5s,6c,9d,Jh"))

	// the better full house uses the second trips as the pair
	a.Greater(strength("Qc,Qd,Qh,8s,8c,8d,2h"), strength("Qc,Qd,Qh,7s,7c,2d,3h"))

	// the third pair only plays as a kicker
	a.Equal(strength("Kc,Kd,7h,7s,5c,5d,Ah"), strength("Kc,Kd,7h,7s,2c,3d,Ah"))
	a.Greater(strength("Kc,Kd,7h,7s,5c,5d,Qh"), strength("Kc,Kd,7h,7s,2c,3d,Jh"))

	// five cards play, the sixth and seventh do not
	a.Equal(strength("Ac,Kd,9h,7s,5c,3d,2h"), strength("Ac,Kd,9h,7s,5c,4d,2h"))
}

func TestAnalyzer_Rank(t *testing.T) {
	a := assert.New(t)

	s, err := Analyzer{}.Rank(deck.CardsFromString("Kc,Kd,Kh,2s,2c,7d"))
	a.NoError(err)
	a.Equal("Full house", s.Description)

	_, err = Analyzer{}.Rank(deck.CardsFromString("Ah,Kh,Qh,Jh"))
	a.True(errors.Is(err, ErrCardCount))
}
