package holdem

import "sort"

// Pot is an amount of chips and the players who can win it
type Pot struct {
	Amount   int      `json:"amount"`
	Eligible []string `json:"eligible"`
}

func (p *Pot) clone() *Pot {
	return &Pot{
		Amount:   p.Amount,
		Eligible: append([]string{}, p.Eligible...),
	}
}

func (p *Pot) removeEligible(playerID string) {
	if !p.isEligible(playerID) {
		return
	}

	eligible := make([]string, 0, len(p.Eligible))
	for _, id := range p.Eligible {
		if id != playerID {
			eligible = append(eligible, id)
		}
	}

	p.Eligible = eligible
}

func (p *Pot) isEligible(playerID string) bool {
	for _, id := range p.Eligible {
		if id == playerID {
			return true
		}
	}

	return false
}

// CalculateSidePots splits every player's contribution this hand into tiered pots
// Each distinct contribution level creates a tier worth (level - previous level) from every
// player who contributed at least that much. Chips from players who sat out still count toward
// the amount, but only live players are eligible to win a tier.
func CalculateSidePots(players []*Player) []*Pot {
	levels := make([]int, 0, len(players))
	seen := make(map[int]bool)
	for _, p := range players {
		if p.TotalBet > 0 && !seen[p.TotalBet] {
			seen[p.TotalBet] = true
			levels = append(levels, p.TotalBet)
		}
	}

	sort.Ints(levels)

	pots := make([]*Pot, 0, len(levels))
	previous := 0
	for _, level := range levels {
		contributors := 0
		eligible := make([]string, 0, len(players))
		for _, p := range players {
			if p.TotalBet < level {
				continue
			}

			contributors++
			if p.IsLive() {
				eligible = append(eligible, p.ID)
			}
		}

		pots = append(pots, &Pot{
			Amount:   (level - previous) * contributors,
			Eligible: eligible,
		})

		previous = level
	}

	if len(pots) == 0 {
		return []*Pot{newEmptyPot(players)}
	}

	return pots
}

// newEmptyPot returns a pot with no chips that every live player is eligible for
func newEmptyPot(players []*Player) *Pot {
	eligible := make([]string, 0, len(players))
	for _, p := range players {
		if p.IsLive() {
			eligible = append(eligible, p.ID)
		}
	}

	return &Pot{Eligible: eligible}
}
