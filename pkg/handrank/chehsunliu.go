package handrank

import (
	"fmt"
	"homegame-server/pkg/deck"

	"github.com/chehsunliu/poker"
)

// worstRank is one past the weakest rank chehsunliu/poker produces (7-high)
const worstRank = 7463

// Chehsunliu ranks five to seven cards using github.com/chehsunliu/poker
type Chehsunliu struct{}

// Rank implements Oracle
func (Chehsunliu) Rank(cards []deck.Card) (Strength, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return Strength{}, fmt.Errorf("%w: %d", ErrCardCount, len(cards))
	}

	pc := make([]poker.Card, len(cards))
	for i, card := range cards {
		pc[i] = poker.NewCard(card.String())
	}

	// in chehsunliu/poker a lower rank is a better hand
	rank := poker.Evaluate(pc)
	return Strength{
		Value:       worstRank - int(rank),
		Description: poker.RankString(rank),
	}, nil
}
