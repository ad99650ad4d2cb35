package holdem

import (
	"encoding/json"
	"fmt"
)

// Phase is the stage of a hand
type Phase int

// phase constants
const (
	Waiting Phase = iota
	Preflop
	Flop
	Turn
	River
	Showdown
	Complete
)

var phaseNames = map[Phase]string{
	Waiting:  "waiting",
	Preflop:  "preflop",
	Flop:     "flop",
	Turn:     "turn",
	River:    "river",
	Showdown: "showdown",
	Complete: "complete",
}

// String returns the lowercase name of the phase
func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}

	return fmt.Sprintf("Phase(%d)", int(p))
}

// MarshalJSON encodes the phase as its name
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// IsBettingRound returns true if players can act in this phase
func (p Phase) IsBettingRound() bool {
	return p == Preflop || p == Flop || p == Turn || p == River
}

// InHand returns true between the blinds and the resolution of a hand
func (p Phase) InHand() bool {
	return p != Waiting && p != Complete
}

// communityCardsFor is the number of cards dealt when a phase begins
func (p Phase) communityCardsFor() int {
	switch p {
	case Flop:
		return 3
	case Turn, River:
		return 1
	}

	return 0
}
