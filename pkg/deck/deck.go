package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"fmt"
	"homegame-server/internal/rng"
)

// ErrInsufficientCards is returned when more cards are requested than remain in the deck
var ErrInsufficientCards = errors.New("insufficient cards")

// Size is the number of cards in a full deck
const Size = 52

// Deck represents a playing deck
// A deck belongs to a single room and is rebuilt at the start of every hand
type Deck struct {
	cards   []Card
	stacked []Card
	rng     rng.Generator

	// hash of the full order after the last shuffle
	hash string
}

// New returns a new shuffled deck of cards
// The generator is used for every shuffle. Pass rng.Seeded() for reproducible decks.
func New(generator rng.Generator) *Deck {
	if generator == nil {
		generator = rng.Crypto{}
	}

	d := &Deck{rng: generator}
	d.Reset()
	return d
}

func (d *Deck) buildDeck() {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}

	d.cards = cards
}

// Reset rebuilds the full deck and shuffles it
func (d *Deck) Reset() {
	if d.stacked != nil {
		d.cards = append([]Card(nil), d.stacked...)
		d.hash = hashCards(d.cards)
		return
	}

	d.buildDeck()

	// Fisher-Yates
	for j := len(d.cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}

	d.hash = hashCards(d.cards)
}

// Deal removes and returns the next n cards
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || n > len(d.cards) {
		return nil, fmt.Errorf("%w: cannot deal %d, only %d remaining", ErrInsufficientCards, n, len(d.cards))
	}

	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]

	return cards, nil
}

// Remaining returns the number of undealt cards
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// HashCode returns a SHA1 hash code of the whole deck in the order of the last shuffle
// Dealing does not change it, so a recorded hand can be audited afterwards.
func (d *Deck) HashCode() string {
	return d.hash
}

func hashCards(cards []Card) string {
	hash := sha1.New() // nolint:gosec
	for _, card := range cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil))
}

// Stack fixes the order of the deck, including after every Reset
// This must only be used by tests to deal known hands
func (d *Deck) Stack(cards []Card) {
	d.stacked = append([]Card(nil), cards...)
	d.cards = append([]Card(nil), cards...)
	d.hash = hashCards(d.cards)
}
