package room

import (
	"errors"
	"homegame-server/pkg/holdem"
)

// room errors
// These are sent to the client that caused them and never change room state.
var (
	ErrNotHost             = errors.New("only the host can do that")
	ErrGameInProgress      = errors.New("a game is already in progress, wait for the session to end")
	ErrInsufficientPlayers = holdem.ErrInsufficientPlayers
	ErrHandNotComplete     = holdem.ErrHandNotComplete
	ErrNoGame              = errors.New("no game in progress")
	ErrNotJoined           = errors.New("join the room first")
	ErrAlreadyJoined       = errors.New("already joined")
	ErrRebuyDuringHand     = errors.New("you can only rebuy between hands")
	ErrCannotKickHost      = errors.New("the host cannot be kicked")
	ErrKickDuringGame      = errors.New("players can only be kicked in the lobby")
	ErrUnknownPlayer       = errors.New("no such player")
	ErrInvalidMessage      = errors.New("invalid message format")
	ErrInvalidName         = errors.New("a name of 1 to 32 characters is required")
	ErrNameTaken           = errors.New("that name is already in use")
	ErrRoomFull            = errors.New("the room is full")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")

	errKicked = errors.New("you have been removed from the room")
)
