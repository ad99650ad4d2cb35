package holdem

import (
	"fmt"
	"homegame-server/pkg/deck"
)

// StartHand shuffles, posts the blinds, deals hole cards and opens the preflop betting round
// Players without chips are sat out. If the dealer seat is sitting out, the button moves first.
func (g *GameState) StartHand(d *deck.Deck) (*GameState, error) {
	if g.Phase.InHand() {
		return nil, ErrHandNotComplete
	}

	next := g.Clone()
	seated := 0
	for _, p := range next.Players {
		p.resetForHand()
		if p.Chips == 0 {
			p.SittingOut = true
		}

		if !p.SittingOut {
			seated++
		}
	}

	if seated < 2 {
		return nil, ErrInsufficientPlayers
	}

	if next.Players[next.DealerIndex].SittingOut {
		next.DealerIndex = next.nextSeat(next.DealerIndex, notSittingOut)
	}

	next.CommunityCards = []deck.Card{}
	next.Pots = []*Pot{newEmptyPot(next.Players)}
	next.LastRaiserIndex = NoSeat
	next.LastActorIndex = NoSeat
	next.MinRaise = next.BigBlind

	d.Reset()

	// heads-up, the dealer is the small blind
	sb := next.DealerIndex
	if seated > 2 {
		sb = next.nextSeat(next.DealerIndex, notSittingOut)
	}

	bb := next.nextSeat(sb, notSittingOut)

	sbPaid := next.pay(next.Players[sb], next.SmallBlind)
	bbPaid := next.pay(next.Players[bb], next.BigBlind)
	next.CurrentBet = sbPaid
	if bbPaid > sbPaid {
		next.CurrentBet = bbPaid
	}

	if err := next.dealHoleCards(d); err != nil {
		return nil, err
	}

	next.Phase = Preflop
	next.ActivePlayerIndex = next.nextActiveIndex(bb)
	next.RoundStartIndex = next.ActivePlayerIndex

	if !next.needsAction() {
		if err := next.advancePhase(d); err != nil {
			return nil, err
		}
	}

	return next, nil
}

// dealHoleCards deals one card at a time starting left of the dealer
func (g *GameState) dealHoleCards(d *deck.Deck) error {
	n := len(g.Players)
	for round := 0; round < 2; round++ {
		for i := 1; i <= n; i++ {
			p := g.Players[(g.DealerIndex+i)%n]
			if p.SittingOut {
				continue
			}

			cards, err := d.Deal(1)
			if err != nil {
				return fmt.Errorf("could not deal hole cards: %w", err)
			}

			p.HoleCards = append(p.HoleCards, cards...)
		}
	}

	return nil
}

// pay moves up to amount from the player's stack into the current pot and returns what was paid
func (g *GameState) pay(p *Player, amount int) int {
	if amount > p.Chips {
		amount = p.Chips
	}

	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
	g.Pots[len(g.Pots)-1].Amount += amount

	if p.Chips == 0 {
		p.AllIn = true
	}

	return amount
}

// needsAction returns true if anyone still has a decision to make this round
func (g *GameState) needsAction() bool {
	var actionable []*Player
	for _, p := range g.Players {
		if p.CanAct() {
			actionable = append(actionable, p)
		}
	}

	switch len(actionable) {
	case 0:
		return false
	case 1:
		return actionable[0].Bet < g.CurrentBet
	}

	return true
}

// ApplyAction applies the action of the player whose turn it is
// The receiver is never modified; a failed action leaves the caller's state as it was.
func (g *GameState) ApplyAction(playerID string, action Action, d *deck.Deck) (*GameState, error) {
	if !g.Phase.IsBettingRound() {
		return nil, ErrNoBettingRound
	}

	idx := g.PlayerIndex(playerID)
	if idx == NoSeat {
		return nil, ErrUnknownPlayer
	}

	if idx != g.ActivePlayerIndex {
		return nil, ErrNotYourTurn
	}

	if !g.Players[idx].CanAct() {
		return nil, ErrCannotAct
	}

	next := g.Clone()
	p := next.Players[idx]

	switch a := action.(type) {
	case Fold:
		p.Folded = true
		for _, pot := range next.Pots {
			pot.removeEligible(p.ID)
		}
	case Check:
		if p.Bet != next.CurrentBet {
			return nil, ErrIllegalCheck
		}
	case Call:
		next.pay(p, next.CurrentBet-p.Bet)
	case Raise:
		cost := next.CurrentBet - p.Bet + a.Amount
		if a.Amount <= 0 || (a.Amount < next.MinRaise && cost < p.Chips) {
			return nil, fmt.Errorf("%w: the minimum raise is %d", ErrIllegalRaise, next.MinRaise)
		}

		next.pay(p, cost)
		if p.Bet > next.CurrentBet {
			// a short all-in raise does not reopen the betting
			if increment := p.Bet - next.CurrentBet; increment >= next.MinRaise {
				next.LastRaiserIndex = idx
				next.MinRaise = increment
			}

			next.CurrentBet = p.Bet
		}
	case AllIn:
		next.pay(p, p.Chips)
		if p.Bet > next.CurrentBet {
			if increment := p.Bet - next.CurrentBet; increment > next.MinRaise {
				next.MinRaise = increment
			}

			next.CurrentBet = p.Bet
			next.LastRaiserIndex = idx
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}

	next.LastActorIndex = idx

	if len(next.LivePlayers()) <= 1 {
		next.Pots = CalculateSidePots(next.Players)
		next.complete()
		return next, nil
	}

	next.ActivePlayerIndex = next.nextActiveIndex(idx)
	if next.IsBettingRoundOver() {
		if err := next.advancePhase(d); err != nil {
			return nil, err
		}
	}

	return next, nil
}

// IsBettingRoundOver returns true once every player who can act has matched the current bet
// and the action has reached the closer: the last full raiser, or the first actor if nobody raised.
// Action that walked past a closer who has since folded, gone all-in or sat out also counts.
func (g *GameState) IsBettingRoundOver() bool {
	if !g.Phase.IsBettingRound() || g.LastActorIndex == NoSeat {
		return false
	}

	for _, p := range g.Players {
		if p.CanAct() && p.Bet != g.CurrentBet {
			return false
		}
	}

	closer := g.RoundStartIndex
	if g.LastRaiserIndex != NoSeat {
		closer = g.LastRaiserIndex
	}

	return passedSeat(g.LastActorIndex, g.ActivePlayerIndex, closer, len(g.Players))
}
