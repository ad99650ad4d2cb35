package holdem

import "homegame-server/pkg/deck"

// Player is a seat at the table
// ID and Name outlive any single hand; everything else is reset by StartHand except Chips and SittingOut.
type Player struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Chips      int         `json:"chips"`
	HoleCards  []deck.Card `json:"holeCards"`
	Bet        int         `json:"bet"`
	TotalBet   int         `json:"totalBet"`
	Folded     bool        `json:"folded"`
	AllIn      bool        `json:"allIn"`
	SittingOut bool        `json:"sittingOut"`
}

// NewPlayer returns a player with a chip stack
func NewPlayer(id, name string, chips int) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		Chips: chips,
	}
}

// IsLive returns true if the player can still win a pot this hand
func (p *Player) IsLive() bool {
	return !p.Folded && !p.SittingOut
}

// CanAct returns true if the player may still make decisions this hand
func (p *Player) CanAct() bool {
	return p.IsLive() && !p.AllIn
}

func (p *Player) clone() *Player {
	c := *p
	if p.HoleCards != nil {
		c.HoleCards = append([]deck.Card(nil), p.HoleCards...)
	}

	return &c
}

func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.Bet = 0
	p.TotalBet = 0
	p.Folded = false
	p.AllIn = false
}
