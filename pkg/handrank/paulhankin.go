package handrank

import (
	"fmt"
	"homegame-server/pkg/deck"

	"github.com/paulhankin/poker"
)

// PaulHankin ranks exactly seven cards using github.com/paulhankin/poker
// Two hole cards plus a full board is the only shape reached at showdown.
type PaulHankin struct{}

// Rank implements Oracle
func (PaulHankin) Rank(cards []deck.Card) (Strength, error) {
	if len(cards) != 7 {
		return Strength{}, fmt.Errorf("%w: %d (exactly 7 required)", ErrCardCount, len(cards))
	}

	var hand [7]poker.Card
	for i, card := range cards {
		c, err := toPaulHankin(card)
		if err != nil {
			return Strength{}, err
		}

		hand[i] = c
	}

	desc, err := poker.Describe(hand[:])
	if err != nil {
		return Strength{}, err
	}

	return Strength{
		Value:       int(poker.Eval7(&hand)),
		Description: desc,
	}, nil
}

// paulhankin ranks are 1-13 with the ace low
func toPaulHankin(card deck.Card) (poker.Card, error) {
	var suit poker.Suit
	switch card.Suit {
	case deck.Clubs:
		suit = poker.Club
	case deck.Diamonds:
		suit = poker.Diamond
	case deck.Hearts:
		suit = poker.Heart
	case deck.Spades:
		suit = poker.Spade
	default:
		var zero poker.Card
		return zero, fmt.Errorf("unknown suit: %s", card.Suit)
	}

	rank := card.Rank
	if rank == deck.Ace {
		rank = 1
	}

	return poker.MakeCard(suit, poker.Rank(rank))
}
