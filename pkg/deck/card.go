package deck

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Hearts   Suit = "hearts"
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Spades   Suit = "spades"
)

// Suits lists the suits in deck build order
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// face cards
const (
	Ten   = 10
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14
)

// Card is an individual playing card
// Cards are values; nothing in the engine mutates a card once dealt
type Card struct {
	Rank int
	Suit Suit
}

// RankChar returns the single character rank (2-9, T, J, Q, K, A)
func (c Card) RankChar() byte {
	switch c.Rank {
	case Ten:
		return 'T'
	case Jack:
		return 'J'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	case Ace:
		return 'A'
	}

	if c.Rank >= 2 && c.Rank <= 9 {
		return byte('0' + c.Rank)
	}

	panic(fmt.Sprintf("unknown rank: %d", c.Rank))
}

// SuitChar returns the single character suit (c, d, h, s)
func (c Card) SuitChar() byte {
	switch c.Suit {
	case Clubs:
		return 'c'
	case Diamonds:
		return 'd'
	case Hearts:
		return 'h'
	case Spades:
		return 's'
	}

	panic(fmt.Sprintf("unknown suit: %s", c.Suit))
}

// String returns the card in the format "Ah", "Td", "2c"
func (c Card) String() string {
	return string([]byte{c.RankChar(), c.SuitChar()})
}

// IsValid returns true if the card is one of the 52 standard cards
func (c Card) IsValid() bool {
	if c.Rank < 2 || c.Rank > Ace {
		return false
	}

	switch c.Suit {
	case Clubs, Diamonds, Hearts, Spades:
		return true
	}

	return false
}

type cardJSON struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// MarshalJSON encodes the card as {"rank":"A","suit":"h"}
func (c Card) MarshalJSON() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("cannot encode invalid card %d of %s", c.Rank, c.Suit)
	}

	return json.Marshal(cardJSON{
		Rank: string(c.RankChar()),
		Suit: string(c.SuitChar()),
	})
}

// UnmarshalJSON decodes the card from {"rank":"A","suit":"h"}
func (c *Card) UnmarshalJSON(b []byte) error {
	var cj cardJSON
	if err := json.Unmarshal(b, &cj); err != nil {
		return err
	}

	card, err := ParseCard(cj.Rank + cj.Suit)
	if err != nil {
		return err
	}

	*c = card
	return nil
}

var cardRx = regexp.MustCompile(`(?i)^([2-9tjqka]|10)([cdhs])\z`)

// ParseCard returns a Card from a string such as "Ah", "td" or "10s"
func ParseCard(s string) (Card, error) {
	match := cardRx.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return Card{}, fmt.Errorf("could not parse card: %q", s)
	}

	var rank int
	switch r := strings.ToUpper(match[1]); r {
	case "T", "10":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		rank = int(r[0] - '0')
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// CardFromString is like ParseCard, but panics on error
// Intended for tests and fixtures
func CardFromString(s string) Card {
	card, err := ParseCard(s)
	if err != nil {
		panic(err)
	}

	return card
}

// CardsFromString will return a slice of cards from a comma separated list, i.e., "Ah,Kd,2c"
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardsToString will convert a slice of cards to a string in the format of Ah,Kd,2c
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = card.String()
	}

	return strings.Join(c, ",")
}
