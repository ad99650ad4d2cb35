// Package history keeps a write-only audit log of hands and settlements
// Nothing is read back into a running room.
package history

import (
	"context"
	"homegame-server/pkg/deck"
	"homegame-server/pkg/holdem"
	"homegame-server/pkg/settlement"
	"time"

	"github.com/google/uuid"
)

// Hand is a completed hand
type Hand struct {
	ID       uuid.UUID         `json:"id"`
	RoomID   string            `json:"roomId"`
	Number   int               `json:"number"`
	DeckHash string            `json:"deckHash"`
	Board    []deck.Card       `json:"board"`
	Showdown bool              `json:"showdown"`
	Pot      int               `json:"pot"`
	Payouts  []holdem.Payout   `json:"payouts"`
	Names    map[string]string `json:"names"`
	State    *holdem.GameState `json:"state"`
	Ended    time.Time         `json:"ended"`
}

// Settlement is the end of a session
type Settlement struct {
	ID           uuid.UUID            `json:"id"`
	RoomID       string               `json:"roomId"`
	ChipsPerUnit float64              `json:"chipsPerUnit"`
	Balances     []settlement.Balance `json:"balances"`
	Payments     []settlement.Payment `json:"payments"`
	Created      time.Time            `json:"created"`
}

// Recorder stores hands and settlements
type Recorder interface {
	RecordHand(ctx context.Context, hand *Hand) error
	RecordSettlement(ctx context.Context, s *Settlement) error
}

// Nop discards everything
type Nop struct{}

// RecordHand implements Recorder
func (Nop) RecordHand(context.Context, *Hand) error {
	return nil
}

// RecordSettlement implements Recorder
func (Nop) RecordSettlement(context.Context, *Settlement) error {
	return nil
}
