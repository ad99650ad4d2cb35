package holdem

import "errors"

// engine errors
var (
	ErrNotYourTurn         = errors.New("not your turn")
	ErrCannotAct           = errors.New("player cannot act")
	ErrIllegalCheck        = errors.New("cannot check, you must call or raise")
	ErrIllegalRaise        = errors.New("illegal raise")
	ErrInsufficientPlayers = errors.New("at least two players with chips are required")
	ErrHandNotComplete     = errors.New("the current hand is not finished")
	ErrNoBettingRound      = errors.New("not in a betting round")
	ErrUnknownPlayer       = errors.New("player is not seated")
	ErrUnknownAction       = errors.New("unknown action")
	ErrInvalidBlinds       = errors.New("blinds must be positive and the small blind cannot exceed the big blind")
	ErrNoLivePlayers       = errors.New("no live players are eligible for the pot")
	ErrHandNotEliminated   = errors.New("more than one player remains in the hand")
)
