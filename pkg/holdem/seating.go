package holdem

import (
	"homegame-server/pkg/deck"
)

// AdvanceDealer moves the button to the next seat that is not sitting out
// Folded and all-in flags belong to the finished hand and are ignored here.
func (g *GameState) AdvanceDealer() *GameState {
	next := g.Clone()
	next.DealerIndex = next.nextSeat(next.DealerIndex, notSittingOut)
	return next
}

// SitOutBusted sits out every player without chips
func (g *GameState) SitOutBusted() *GameState {
	next := g.Clone()
	for _, p := range next.Players {
		if p.Chips == 0 {
			p.SittingOut = true
		}
	}

	return next
}

// PlayersWithChips returns the number of players able to play another hand
func (g *GameState) PlayersWithChips() int {
	n := 0
	for _, p := range g.Players {
		if p.Chips > 0 && !p.SittingOut {
			n++
		}
	}

	return n
}

// SitOut removes a player from play until SitIn is called
// If it is the player's turn they fold first. A player sitting out loses any claim on the pots,
// so the hand can end by elimination.
func (g *GameState) SitOut(playerID string, d *deck.Deck) (*GameState, error) {
	idx := g.PlayerIndex(playerID)
	if idx == NoSeat {
		return nil, ErrUnknownPlayer
	}

	next := g
	if g.Phase.IsBettingRound() && idx == g.ActivePlayerIndex && g.Players[idx].CanAct() {
		folded, err := g.ApplyAction(playerID, Fold{}, d)
		if err != nil {
			return nil, err
		}

		next = folded
	} else {
		next = g.Clone()
	}

	p := next.Players[idx]
	p.SittingOut = true
	for _, pot := range next.Pots {
		pot.removeEligible(p.ID)
	}

	if next.Phase.IsBettingRound() && len(next.LivePlayers()) <= 1 {
		next.Pots = CalculateSidePots(next.Players)
		next.complete()
	}

	return next, nil
}

// SitIn returns a player to play
// A player returning in the middle of a hand stays folded until the next one.
func (g *GameState) SitIn(playerID string) (*GameState, error) {
	idx := g.PlayerIndex(playerID)
	if idx == NoSeat {
		return nil, ErrUnknownPlayer
	}

	next := g.Clone()
	p := next.Players[idx]
	if p.SittingOut && next.Phase.InHand() {
		p.Folded = true
	}

	p.SittingOut = false
	return next, nil
}

// AddChips adds to a player's stack between hands and returns them to play
func (g *GameState) AddChips(playerID string, amount int) (*GameState, error) {
	if g.Phase.InHand() {
		return nil, ErrHandNotComplete
	}

	idx := g.PlayerIndex(playerID)
	if idx == NoSeat {
		return nil, ErrUnknownPlayer
	}

	next := g.Clone()
	p := next.Players[idx]
	p.Chips += amount
	p.SittingOut = false
	return next, nil
}

// AbortHand returns every chip committed this hand to the player who committed it
func (g *GameState) AbortHand() *GameState {
	next := g.Clone()
	if !next.Phase.InHand() {
		return next
	}

	for _, p := range next.Players {
		p.Chips += p.TotalBet
		p.Bet = 0
		p.TotalBet = 0
	}

	next.Pots = []*Pot{newEmptyPot(next.Players)}
	next.CurrentBet = 0
	next.complete()
	return next
}
