// Package handrank ranks poker hands
// The engine only depends on the Oracle interface. Chehsunliu and PaulHankin wrap third-party
// evaluators; Analyzer is a plain Go evaluator.
package handrank

import (
	"errors"
	"fmt"
	"homegame-server/pkg/deck"
	"strings"
)

// ErrCardCount is returned when an oracle is given a number of cards it cannot rank
var ErrCardCount = errors.New("unsupported number of cards")

// Strength is the rank of a hand
// A higher Value is a stronger hand. Equal values are a tie.
type Strength struct {
	Value       int    `json:"value"`
	Description string `json:"description"`
}

// Oracle ranks the best five card hand that can be made from the provided cards
type Oracle interface {
	Rank(cards []deck.Card) (Strength, error)
}

// Winners returns the indexes of the strongest hands, in the order provided
// More than one index is returned for a tie
func Winners(strengths []Strength) []int {
	var winners []int
	best := 0
	for i, s := range strengths {
		switch {
		case len(winners) == 0 || s.Value > best:
			best = s.Value
			winners = []int{i}
		case s.Value == best:
			winners = append(winners, i)
		}
	}

	return winners
}

// New returns the oracle registered under name
func New(name string) (Oracle, error) {
	switch strings.ToLower(name) {
	case "", "chehsunliu":
		return Chehsunliu{}, nil
	case "paulhankin":
		return PaulHankin{}, nil
	case "analyzer":
		return Analyzer{}, nil
	}

	return nil, fmt.Errorf("unknown hand ranking oracle: %s", name)
}
