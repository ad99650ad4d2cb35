package holdem

import (
	"fmt"
	"strings"
)

// ActionKind is the wire name of an action
type ActionKind string

// action kinds
const (
	KindFold  ActionKind = "fold"
	KindCheck ActionKind = "check"
	KindCall  ActionKind = "call"
	KindRaise ActionKind = "raise"
	KindAllIn ActionKind = "all-in"
)

// Action is a decision made by the player whose turn it is
// Only Raise carries an amount.
type Action interface {
	Kind() ActionKind
}

// Fold gives up the hand
type Fold struct{}

// Check passes when the player has already matched the current bet
type Check struct{}

// Call matches the current bet, or as much of it as the player's stack covers
type Call struct{}

// Raise increases the current bet by Amount on top of the call
type Raise struct {
	Amount int
}

// AllIn commits the player's entire stack
type AllIn struct{}

// Kind implements Action
func (Fold) Kind() ActionKind { return KindFold }

// Kind implements Action
func (Check) Kind() ActionKind { return KindCheck }

// Kind implements Action
func (Call) Kind() ActionKind { return KindCall }

// Kind implements Action
func (Raise) Kind() ActionKind { return KindRaise }

// Kind implements Action
func (AllIn) Kind() ActionKind { return KindAllIn }

func (r Raise) String() string {
	return fmt.Sprintf("raise %d", r.Amount)
}

// ParseAction builds an action from its wire form
// amount is ignored for every kind except raise
func ParseAction(kind string, amount int) (Action, error) {
	switch ActionKind(strings.ToLower(kind)) {
	case KindFold:
		return Fold{}, nil
	case KindCheck:
		return Check{}, nil
	case KindCall:
		return Call{}, nil
	case KindRaise:
		return Raise{Amount: amount}, nil
	case KindAllIn, "allin":
		return AllIn{}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownAction, kind)
}
