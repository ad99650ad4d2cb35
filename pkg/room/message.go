package room

import (
	"encoding/json"
	"homegame-server/pkg/deck"
	"homegame-server/pkg/holdem"
	"homegame-server/pkg/settlement"
)

// MessageType discriminates messages in both directions
type MessageType string

// inbound message types
const (
	TypeJoin       MessageType = "join"
	TypeStartGame  MessageType = "start-game"
	TypeAction     MessageType = "action"
	TypeNextHand   MessageType = "next-hand"
	TypeEndSession MessageType = "end-session"
	TypeRebuy      MessageType = "rebuy"
	TypeKick       MessageType = "kick"
	TypeChat       MessageType = "chat"
)

// outbound message types
const (
	TypeJoined            MessageType = "joined"
	TypeState             MessageType = "state"
	TypePrivate           MessageType = "private"
	TypeHandResult        MessageType = "hand-result"
	TypeSettlement        MessageType = "settlement"
	TypePlayerJoined      MessageType = "player-joined"
	TypePlayerLeft        MessageType = "player-left"
	TypeNextHandCountdown MessageType = "next-hand-countdown"
	TypeError             MessageType = "error"
)

// PayloadIn is a message from a client
// Only the fields relevant to Type are read.
type PayloadIn struct {
	Type       MessageType `json:"type"`
	Name       string      `json:"name,omitempty"`
	Token      string      `json:"token,omitempty"`
	BuyIn      int         `json:"buyIn,omitempty"`
	SmallBlind int         `json:"smallBlind,omitempty"`
	BigBlind   int         `json:"bigBlind,omitempty"`
	BuyInUnits float64     `json:"buyInUnits,omitempty"`
	Action     string      `json:"action,omitempty"`
	Amount     int         `json:"amount,omitempty"`
	TargetID   string      `json:"targetId,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// DecodePayload parses a raw client message
func DecodePayload(b []byte) (*PayloadIn, error) {
	var msg PayloadIn
	if err := json.Unmarshal(b, &msg); err != nil {
		return nil, ErrInvalidMessage
	}

	switch msg.Type {
	case TypeJoin, TypeStartGame, TypeAction, TypeNextHand, TypeEndSession, TypeRebuy, TypeKick, TypeChat:
		return &msg, nil
	}

	return nil, ErrInvalidMessage
}

// Joined confirms a join to the joining client only
// Token reclaims the seat after a reconnect.
type Joined struct {
	Type     MessageType `json:"type"`
	PlayerID string      `json:"playerId"`
	RoomID   string      `json:"roomId"`
	Token    string      `json:"token,omitempty"`
}

// PublicPlayer is what every client may know about a seat
type PublicPlayer struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Chips      int    `json:"chips"`
	Bet        int    `json:"bet"`
	Folded     bool   `json:"folded"`
	AllIn      bool   `json:"allIn"`
	SittingOut bool   `json:"sittingOut"`
	Connected  bool   `json:"connected"`
	CardCount  int    `json:"cardCount"`
}

// State is the public view of the room, broadcast after every change
type State struct {
	Type              MessageType    `json:"type"`
	Phase             holdem.Phase   `json:"phase"`
	Players           []PublicPlayer `json:"players"`
	CommunityCards    []deck.Card    `json:"communityCards"`
	Pots              []*holdem.Pot  `json:"pots"`
	CurrentBet        int            `json:"currentBet"`
	MinRaise          int            `json:"minRaise"`
	DealerIndex       int            `json:"dealerIndex"`
	ActivePlayerIndex int            `json:"activePlayerIndex"`
	SmallBlind        int            `json:"smallBlind"`
	BigBlind          int            `json:"bigBlind"`
	HostID            string         `json:"hostId"`
}

// Private carries a player's hole cards to that player only
type Private struct {
	Type      MessageType `json:"type"`
	HoleCards []deck.Card `json:"holeCards"`
}

// Winner is one line of a hand result
type Winner struct {
	PlayerID        string `json:"playerId"`
	HandDescription string `json:"handDescription"`
	Amount          int    `json:"amount"`
}

// HandResult announces who won a hand
// ShowdownCards is only set when hands were compared.
type HandResult struct {
	Type          MessageType            `json:"type"`
	Winners       []Winner               `json:"winners"`
	Hands         map[string]string      `json:"hands,omitempty"`
	ShowdownCards map[string][]deck.Card `json:"showdownCards,omitempty"`
}

// Settlement lists the payments that settle the session
type Settlement struct {
	Type     MessageType          `json:"type"`
	Payments []settlement.Payment `json:"payments"`
}

// PlayerEvent announces a player joining or leaving
type PlayerEvent struct {
	Type MessageType `json:"type"`
	Name string      `json:"name"`
}

// Countdown ticks down to the next hand
type Countdown struct {
	Type    MessageType `json:"type"`
	Seconds int         `json:"seconds"`
}

// Chat is a chat message
type Chat struct {
	Type     MessageType `json:"type"`
	SenderID string      `json:"senderId"`
	Name     string      `json:"name"`
	Message  string      `json:"message"`
}

// Error is sent to the client whose message failed
type Error struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

func newErrorMessage(err error) *Error {
	return &Error{
		Type:    TypeError,
		Message: err.Error(),
	}
}
