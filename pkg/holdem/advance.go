package holdem

import (
	"fmt"
	"homegame-server/pkg/deck"
)

var nextPhase = map[Phase]Phase{
	Preflop: Flop,
	Flop:    Turn,
	Turn:    River,
	River:   Showdown,
}

// advancePhase closes the betting round, collects bets into pots and opens the next street
// When fewer than two players can act, the remaining streets are dealt without betting.
func (g *GameState) advancePhase(d *deck.Deck) error {
	g.Pots = CalculateSidePots(g.Players)
	for _, p := range g.Players {
		p.Bet = 0
	}

	g.CurrentBet = 0
	g.MinRaise = g.BigBlind
	g.LastRaiserIndex = NoSeat
	g.LastActorIndex = NoSeat

	if len(g.LivePlayers()) <= 1 {
		g.complete()
		return nil
	}

	phase, ok := nextPhase[g.Phase]
	if !ok {
		return fmt.Errorf("cannot advance from %s", g.Phase)
	}

	if n := phase.communityCardsFor(); n > 0 {
		cards, err := d.Deal(n)
		if err != nil {
			return fmt.Errorf("could not deal the %s: %w", phase, err)
		}

		g.CommunityCards = append(g.CommunityCards, cards...)
	}

	g.Phase = phase
	if g.Phase == Showdown {
		g.complete()
		return nil
	}

	g.ActivePlayerIndex = g.nextActiveIndex(g.DealerIndex)
	g.RoundStartIndex = g.ActivePlayerIndex

	if g.actionableCount() <= 1 {
		return g.advancePhase(d)
	}

	return nil
}

// IsShowdown returns true if a completed hand must be decided by comparing hands
func (g *GameState) IsShowdown() bool {
	return g.Phase == Complete && len(g.LivePlayers()) > 1
}
