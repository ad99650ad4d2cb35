package handrank

import (
	"fmt"
	"homegame-server/pkg/deck"
	"sort"
)

// Hand is a poker hand category, i.e., a flush
type Hand int

// Constants for hand
const (
	HighCard Hand = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

const lowAce = 1

// String returns the string representation of a hand
func (h Hand) String() string {
	switch h {
	case HighCard:
		return "High card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two pair"
	case ThreeOfAKind:
		return "Three of a kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full house"
	case FourOfAKind:
		return "Four of a kind"
	case StraightFlush:
		return "Straight flush"
	case RoyalFlush:
		return "Royal flush"
	default:
		panic(fmt.Sprintf("unknown hand: %d", h))
	}
}

// Analyzer ranks hands without a third-party evaluator
type Analyzer struct{}

// Rank implements Oracle
func (Analyzer) Rank(cards []deck.Card) (Strength, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return Strength{}, fmt.Errorf("%w: %d", ErrCardCount, len(cards))
	}

	h := NewHandAnalyzer(cards)
	return Strength{
		Value:       h.GetStrength(),
		Description: h.GetHand().String(),
	}, nil
}

// HandAnalyzer finds the best five card hand
type HandAnalyzer struct {
	cards         []deck.Card
	flush         []int
	quads         []int
	trips         []int
	pairs         []int
	straightFlush int
	straight      int

	hand Hand
}

// NewHandAnalyzer will return a new HandAnalyzer instance
func NewHandAnalyzer(cards []deck.Card) *HandAnalyzer {
	sorted := make([]deck.Card, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank > sorted[j].Rank
	})

	h := &HandAnalyzer{cards: sorted}

	// the method order here is required
	h.analyzeHand()
	h.calculateHand()

	return h
}

// analyzeHand finds every combination the cards can make
func (h *HandAnalyzer) analyzeHand() {
	bySuit := make(map[deck.Suit][]int)
	counts := make(map[int]int)
	var ranks []int

	for _, card := range h.cards {
		bySuit[card.Suit] = append(bySuit[card.Suit], card.Rank)
		if counts[card.Rank] == 0 {
			ranks = append(ranks, card.Rank)
		}

		counts[card.Rank]++
	}

	h.straight = highestStraight(ranks)

	for _, suited := range bySuit {
		if len(suited) < 5 {
			continue
		}

		// at most one suit can have five of seven cards
		h.flush = suited[:5]
		h.straightFlush = highestStraight(suited)
	}

	// ranks are in descending order
	for _, rank := range ranks {
		switch counts[rank] {
		case 4:
			h.quads = append(h.quads, rank)
		case 3:
			h.trips = append(h.trips, rank)
		case 2:
			h.pairs = append(h.pairs, rank)
		}
	}
}

// highestStraight returns the high card of the best straight in the distinct, descending ranks, or zero
func highestStraight(ranks []int) int {
	if len(ranks) > 0 && ranks[0] == deck.Ace {
		ranks = append(ranks[:len(ranks):len(ranks)], lowAce)
	}

	streak := 0
	for i, rank := range ranks {
		if i > 0 && ranks[i-1]-rank == 1 {
			streak++
		} else {
			streak = 1
		}

		if streak == 5 {
			return rank + 4
		}
	}

	return 0
}

// GetHand will return the best possible hand the cards can make
func (h *HandAnalyzer) GetHand() Hand {
	return h.hand
}

// GetStraightFlush will return the best straight flush, if possible
func (h *HandAnalyzer) GetStraightFlush() (int, bool) {
	return h.straightFlush, h.straightFlush > 0
}

// GetFourOfAKind will return the best four of a kind, if possible
func (h *HandAnalyzer) GetFourOfAKind() (int, bool) {
	if len(h.quads) > 0 {
		return h.quads[0], true
	}

	return 0, false
}

// GetFullHouse will return the best full house, if possible
func (h *HandAnalyzer) GetFullHouse() ([]int, bool) {
	if len(h.trips) == 0 {
		return nil, false
	}

	pair, ok := h.GetPair()
	if len(h.trips) >= 2 && (!ok || h.trips[1] > pair) {
		// the second set of trips plays as the pair
		pair, ok = h.trips[1], true
	}

	if !ok {
		return nil, false
	}

	return []int{h.trips[0], pair}, true
}

// GetFlush will return the best possible flush, if possible
func (h *HandAnalyzer) GetFlush() ([]int, bool) {
	return h.flush, h.flush != nil
}

// GetStraight will return the best straight, if possible
func (h *HandAnalyzer) GetStraight() (int, bool) {
	return h.straight, h.straight > 0
}

// GetThreeOfAKind will return the best three of a kind, if possible
func (h *HandAnalyzer) GetThreeOfAKind() (int, bool) {
	if len(h.trips) > 0 {
		return h.trips[0], true
	}

	return 0, false
}

// GetTwoPair will return the best two pairs, if possible
func (h *HandAnalyzer) GetTwoPair() ([]int, bool) {
	if len(h.pairs) >= 2 {
		return h.pairs[0:2], true
	}

	return nil, false
}

// GetPair will return the best pair, if possible
func (h *HandAnalyzer) GetPair() (int, bool) {
	if len(h.pairs) > 0 {
		return h.pairs[0], true
	}

	return 0, false
}

// kickers returns the highest ranks not in exclude
func (h *HandAnalyzer) kickers(n int, exclude ...int) []int {
	var kickers []int
	for _, card := range h.cards {
		if len(kickers) == n {
			break
		}

		skip := false
		for _, rank := range exclude {
			skip = skip || card.Rank == rank
		}

		if !skip {
			kickers = append(kickers, card.Rank)
		}
	}

	return kickers
}

// calculateHand will determine the best hand
// This must be called after analyzeHand() has been called
func (h *HandAnalyzer) calculateHand() {
	if sf, ok := h.GetStraightFlush(); ok && sf == deck.Ace {
		h.hand = RoyalFlush
	} else if ok {
		h.hand = StraightFlush
	} else if _, ok := h.GetFourOfAKind(); ok {
		h.hand = FourOfAKind
	} else if _, ok := h.GetFullHouse(); ok {
		h.hand = FullHouse
	} else if _, ok := h.GetFlush(); ok {
		h.hand = Flush
	} else if _, ok := h.GetStraight(); ok {
		h.hand = Straight
	} else if _, ok := h.GetThreeOfAKind(); ok {
		h.hand = ThreeOfAKind
	} else if _, ok := h.GetTwoPair(); ok {
		h.hand = TwoPair
	} else if _, ok := h.GetPair(); ok {
		h.hand = OnePair
	} else {
		h.hand = HighCard
	}
}

// GetStrength returns a value that orders every five card hand
// Each card counts as a base-15 digit below the hand category.
func (h *HandAnalyzer) GetStrength() int {
	hand := h.GetHand()

	var cards []int
	switch hand {
	case RoyalFlush, StraightFlush:
		sf, _ := h.GetStraightFlush()
		cards = []int{sf}
	case FourOfAKind:
		quads, _ := h.GetFourOfAKind()
		cards = append([]int{quads}, h.kickers(1, quads)...)
	case FullHouse:
		cards, _ = h.GetFullHouse()
	case Flush:
		cards, _ = h.GetFlush()
	case Straight:
		s, _ := h.GetStraight()
		cards = []int{s}
	case ThreeOfAKind:
		trips, _ := h.GetThreeOfAKind()
		cards = append([]int{trips}, h.kickers(2, trips)...)
	case TwoPair:
		twoPair, _ := h.GetTwoPair()
		cards = append([]int{twoPair[0], twoPair[1]}, h.kickers(1, twoPair...)...)
	case OnePair:
		pair, _ := h.GetPair()
		cards = append([]int{pair}, h.kickers(3, pair)...)
	default:
		cards = h.kickers(5)
	}

	return calculateStrength(hand, cards)
}

func calculateStrength(hand Hand, cards []int) int {
	fiveCards := make([]int, 5)
	copy(fiveCards, cards)

	strength := int(hand)
	for _, val := range fiveCards {
		strength = strength*15 + val
	}

	return strength
}
