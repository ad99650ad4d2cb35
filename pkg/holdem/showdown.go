package holdem

import (
	"homegame-server/pkg/deck"
	"homegame-server/pkg/handrank"
)

// LastPlayerStanding is the hand description used when everyone else folded or left
const LastPlayerStanding = "Last player standing"

// PotWinner is the result for a single pot
type PotWinner struct {
	PotIndex  int               `json:"potIndex"`
	WinnerIDs []string          `json:"winnerIds"`
	Amount    int               `json:"amount"`
	Hands     map[string]string `json:"hands"`
}

// Payout is the total a player collected from a hand
type Payout struct {
	PlayerID        string `json:"playerId"`
	Amount          int    `json:"amount"`
	HandDescription string `json:"handDescription"`
}

// EvaluateHands determines the winners of each pot using the oracle
// A pot with a single live eligible player is won without ranking. A pot nobody live is eligible
// for (everyone left) is folded into the nearest lower pot so no chips are lost.
func (g *GameState) EvaluateHands(oracle handrank.Oracle) ([]PotWinner, error) {
	strengths := make(map[string]handrank.Strength)
	rank := func(p *Player) (handrank.Strength, error) {
		if s, ok := strengths[p.ID]; ok {
			return s, nil
		}

		cards := make([]deck.Card, 0, len(p.HoleCards)+len(g.CommunityCards))
		cards = append(cards, p.HoleCards...)
		cards = append(cards, g.CommunityCards...)
		s, err := oracle.Rank(cards)
		if err != nil {
			return handrank.Strength{}, err
		}

		strengths[p.ID] = s
		return s, nil
	}

	winners := make([]PotWinner, 0, len(g.Pots))
	carry := 0
	for i, pot := range g.Pots {
		var eligible []*Player
		for _, id := range pot.Eligible {
			if p := g.Player(id); p != nil && p.IsLive() {
				eligible = append(eligible, p)
			}
		}

		if len(eligible) == 0 {
			if len(winners) > 0 {
				winners[len(winners)-1].Amount += pot.Amount
			} else {
				carry += pot.Amount
			}

			continue
		}

		pw := PotWinner{
			PotIndex: i,
			Amount:   pot.Amount + carry,
			Hands:    make(map[string]string),
		}
		carry = 0

		if len(eligible) == 1 {
			pw.WinnerIDs = []string{eligible[0].ID}
			winners = append(winners, pw)
			continue
		}

		ranked := make([]handrank.Strength, len(eligible))
		for j, p := range eligible {
			s, err := rank(p)
			if err != nil {
				return nil, err
			}

			ranked[j] = s
			pw.Hands[p.ID] = s.Description
		}

		for _, j := range handrank.Winners(ranked) {
			pw.WinnerIDs = append(pw.WinnerIDs, eligible[j].ID)
		}

		winners = append(winners, pw)
	}

	if carry > 0 {
		return nil, ErrNoLivePlayers
	}

	return winners, nil
}

// AwardToLastPlayer gives every pot to the only live player
func (g *GameState) AwardToLastPlayer() ([]PotWinner, error) {
	live := g.LivePlayers()
	if len(live) != 1 {
		return nil, ErrHandNotEliminated
	}

	id := live[0].ID
	winners := make([]PotWinner, 0, len(g.Pots))
	for i, pot := range g.Pots {
		winners = append(winners, PotWinner{
			PotIndex:  i,
			WinnerIDs: []string{id},
			Amount:    pot.Amount,
			Hands:     map[string]string{id: LastPlayerStanding},
		})
	}

	return winners, nil
}

// DistributeWinnings pays each pot to its winners and empties the pots
// Pots are split evenly; chips that do not divide go to the first winner.
// Payouts are aggregated per player in the order the players first won.
func (g *GameState) DistributeWinnings(winners []PotWinner) (*GameState, []Payout) {
	next := g.Clone()

	var payouts []Payout
	index := make(map[string]int)
	for _, pw := range winners {
		if len(pw.WinnerIDs) == 0 {
			continue
		}

		share := pw.Amount / len(pw.WinnerIDs)
		remainder := pw.Amount - share*len(pw.WinnerIDs)
		for j, id := range pw.WinnerIDs {
			p := next.Player(id)
			if p == nil {
				continue
			}

			amount := share
			if j == 0 {
				amount += remainder
			}

			p.Chips += amount

			i, ok := index[id]
			if !ok {
				i = len(payouts)
				index[id] = i
				payouts = append(payouts, Payout{PlayerID: id})
			}

			payouts[i].Amount += amount
		}
	}

	// a single eligible player wins a side pot unranked; use the hand from another pot
	hands := HandDescriptions(winners)
	for i := range payouts {
		payouts[i].HandDescription = hands[payouts[i].PlayerID]
	}

	next.Pots = []*Pot{newEmptyPot(next.Players)}
	return next, payouts
}

// HandDescriptions merges the hand descriptions of every evaluated player
func HandDescriptions(winners []PotWinner) map[string]string {
	hands := make(map[string]string)
	for _, pw := range winners {
		for id, desc := range pw.Hands {
			hands[id] = desc
		}
	}

	return hands
}
