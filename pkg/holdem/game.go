package holdem

import (
	"homegame-server/pkg/deck"
)

// NoSeat is the index used when no seat applies, e.g., no raise yet this round
const NoSeat = -1

// GameState is an immutable snapshot of a hand
// Every transition returns a new GameState and leaves the receiver untouched.
type GameState struct {
	Phase             Phase       `json:"phase"`
	Players           []*Player   `json:"players"`
	CommunityCards    []deck.Card `json:"communityCards"`
	Pots              []*Pot      `json:"pots"`
	CurrentBet        int         `json:"currentBet"`
	MinRaise          int         `json:"minRaise"`
	DealerIndex       int         `json:"dealerIndex"`
	ActivePlayerIndex int         `json:"activePlayerIndex"`
	RoundStartIndex   int         `json:"roundStartIndex"`
	LastRaiserIndex   int         `json:"lastRaiserIndex"`
	LastActorIndex    int         `json:"lastActorIndex"`
	SmallBlind        int         `json:"smallBlind"`
	BigBlind          int         `json:"bigBlind"`
}

// New returns a game in the waiting phase
// The players are copied; seat order is turn order.
func New(players []*Player, smallBlind, bigBlind int) (*GameState, error) {
	if smallBlind <= 0 || bigBlind <= 0 || smallBlind > bigBlind {
		return nil, ErrInvalidBlinds
	}

	if len(players) < 2 {
		return nil, ErrInsufficientPlayers
	}

	seats := make([]*Player, len(players))
	for i, p := range players {
		seats[i] = p.clone()
	}

	return &GameState{
		Phase:             Waiting,
		Players:           seats,
		CommunityCards:    []deck.Card{},
		Pots:              []*Pot{newEmptyPot(seats)},
		MinRaise:          bigBlind,
		DealerIndex:       0,
		ActivePlayerIndex: NoSeat,
		RoundStartIndex:   NoSeat,
		LastRaiserIndex:   NoSeat,
		LastActorIndex:    NoSeat,
		SmallBlind:        smallBlind,
		BigBlind:          bigBlind,
	}, nil
}

// Clone returns a deep copy of the game
func (g *GameState) Clone() *GameState {
	c := *g

	c.Players = make([]*Player, len(g.Players))
	for i, p := range g.Players {
		c.Players[i] = p.clone()
	}

	c.CommunityCards = append([]deck.Card{}, g.CommunityCards...)

	c.Pots = make([]*Pot, len(g.Pots))
	for i, p := range g.Pots {
		c.Pots[i] = p.clone()
	}

	return &c
}

// TotalChips returns every chip on the table: stacks plus pots
// Round bets are already included in the pots.
func (g *GameState) TotalChips() int {
	total := 0
	for _, p := range g.Players {
		total += p.Chips
	}

	for _, pot := range g.Pots {
		total += pot.Amount
	}

	return total
}

// PlayerIndex returns the seat of the player, or NoSeat
func (g *GameState) PlayerIndex(playerID string) int {
	for i, p := range g.Players {
		if p.ID == playerID {
			return i
		}
	}

	return NoSeat
}

// Player returns the player with the ID, or nil
func (g *GameState) Player(playerID string) *Player {
	if i := g.PlayerIndex(playerID); i != NoSeat {
		return g.Players[i]
	}

	return nil
}

// ActivePlayer returns the player whose turn it is, or nil
func (g *GameState) ActivePlayer() *Player {
	if !g.Phase.IsBettingRound() || g.ActivePlayerIndex < 0 || g.ActivePlayerIndex >= len(g.Players) {
		return nil
	}

	return g.Players[g.ActivePlayerIndex]
}

// LivePlayers returns the players who can still win a pot
func (g *GameState) LivePlayers() []*Player {
	live := make([]*Player, 0, len(g.Players))
	for _, p := range g.Players {
		if p.IsLive() {
			live = append(live, p)
		}
	}

	return live
}

// PotTotal returns the sum of every pot
func (g *GameState) PotTotal() int {
	total := 0
	for _, pot := range g.Pots {
		total += pot.Amount
	}

	return total
}

func (g *GameState) actionableCount() int {
	n := 0
	for _, p := range g.Players {
		if p.CanAct() {
			n++
		}
	}

	return n
}

// nextSeat walks the table circularly starting after from and returns the first seat
// that satisfies ok, or from if no other seat does
func (g *GameState) nextSeat(from int, ok func(p *Player) bool) int {
	n := len(g.Players)
	for i := 1; i < n; i++ {
		idx := (from + i) % n
		if ok(g.Players[idx]) {
			return idx
		}
	}

	return from
}

// nextActiveIndex returns the next seat that can act, skipping folded, sitting out and all-in players
func (g *GameState) nextActiveIndex(from int) int {
	return g.nextSeat(from, (*Player).CanAct)
}

func notSittingOut(p *Player) bool {
	return !p.SittingOut
}

// passedSeat reports whether walking forward from (exclusive) to (inclusive) crosses seat
// from == to is a full circle
func passedSeat(from, to, seat, n int) bool {
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if idx == seat {
			return true
		}

		if idx == to {
			return false
		}
	}

	return false
}

func (g *GameState) complete() {
	g.Phase = Complete
	g.ActivePlayerIndex = NoSeat
}
