package room

import (
	"homegame-server/pkg/deck"
	"homegame-server/pkg/holdem"
)

// publicState builds the state every client may see
// Hole cards are reduced to a count.
// NOTE: must only be called from the run loop
func (d *Dealer) publicState() *State {
	state := &State{
		Type:              TypeState,
		Phase:             holdem.Waiting,
		CommunityCards:    []deck.Card{},
		Pots:              []*holdem.Pot{},
		ActivePlayerIndex: holdem.NoSeat,
		HostID:            d.hostID,
	}

	if d.game == nil {
		state.Players = make([]PublicPlayer, 0, len(d.seats))
		for _, s := range d.seats {
			state.Players = append(state.Players, PublicPlayer{
				ID:        s.id,
				Name:      s.name,
				Connected: s.client != nil,
			})
		}

		return state
	}

	g := d.game
	state.Phase = g.Phase
	state.CommunityCards = g.CommunityCards
	state.Pots = g.Pots
	state.CurrentBet = g.CurrentBet
	state.MinRaise = g.MinRaise
	state.DealerIndex = g.DealerIndex
	state.ActivePlayerIndex = g.ActivePlayerIndex
	state.SmallBlind = g.SmallBlind
	state.BigBlind = g.BigBlind

	state.Players = make([]PublicPlayer, 0, len(g.Players))
	for _, p := range g.Players {
		s := d.seatByID(p.ID)
		state.Players = append(state.Players, PublicPlayer{
			ID:         p.ID,
			Name:       p.Name,
			Chips:      p.Chips,
			Bet:        p.Bet,
			Folded:     p.Folded,
			AllIn:      p.AllIn,
			SittingOut: p.SittingOut,
			Connected:  s != nil && s.client != nil,
			CardCount:  len(p.HoleCards),
		})
	}

	return state
}

// sendPrivateCards sends a seat its own hole cards
// NOTE: must only be called from the run loop
func (d *Dealer) sendPrivateCards(s *seat) {
	if d.game == nil || s.client == nil {
		return
	}

	p := d.game.Player(s.id)
	if p == nil || len(p.HoleCards) == 0 {
		return
	}

	s.client.Send(&Private{
		Type:      TypePrivate,
		HoleCards: p.HoleCards,
	})
}

// showdownCards reveals the hole cards of every player still in the hand
func showdownCards(g *holdem.GameState) map[string][]deck.Card {
	cards := make(map[string][]deck.Card)
	for _, p := range g.LivePlayers() {
		cards[p.ID] = p.HoleCards
	}

	return cards
}
