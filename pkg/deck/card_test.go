package deck

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_constants(t *testing.T) {
	assert.Equal(t, 10, Ten)
	assert.Equal(t, 11, Jack)
	assert.Equal(t, 12, Queen)
	assert.Equal(t, 13, King)
	assert.Equal(t, 14, Ace)
}

func TestCard_String(t *testing.T) {
	assert.Equal(t, "2h", Card{Rank: 2, Suit: Hearts}.String())
	assert.Equal(t, "Jc", Card{Rank: Jack, Suit: Clubs}.String())
	assert.Equal(t, "Qd", Card{Rank: Queen, Suit: Diamonds}.String())
	assert.Equal(t, "Ts", Card{Rank: Ten, Suit: Spades}.String())
	assert.Equal(t, "As", Card{Rank: Ace, Suit: Spades}.String())

	assert.Panics(t, func() { _ = Card{Rank: 1, Suit: Spades}.String() })
}

func TestParseCard(t *testing.T) {
	a := assert.New(t)

	card, err := ParseCard("Ah")
	a.NoError(err)
	a.Equal(Card{Rank: Ace, Suit: Hearts}, card)

	card, err = ParseCard("10s")
	a.NoError(err)
	a.Equal(Card{Rank: Ten, Suit: Spades}, card)

	card, err = ParseCard("tD")
	a.NoError(err)
	a.Equal(Card{Rank: Ten, Suit: Diamonds}, card)

	_, err = ParseCard("1h")
	a.Error(err)

	_, err = ParseCard("Ax")
	a.Error(err)

	a.Equal([]Card{{Rank: 2, Suit: Clubs}, {Rank: King, Suit: Hearts}}, CardsFromString("2c,Kh"))
	a.Equal("2c,Kh", CardsToString(CardsFromString("2c,Kh")))
	a.Equal([]Card{}, CardsFromString(""))
}

func TestCard_JSON(t *testing.T) {
	a := assert.New(t)

	b, err := json.Marshal(CardFromString("Td"))
	a.NoError(err)
	a.JSONEq(`{"rank":"T","suit":"d"}`, string(b))

	var card Card
	a.NoError(json.Unmarshal([]byte(`{"rank":"Q","suit":"s"}`), &card))
	a.Equal(Card{Rank: Queen, Suit: Spades}, card)

	a.Error(json.Unmarshal([]byte(`{"rank":"Z","suit":"s"}`), &card))

	_, err = json.Marshal(Card{})
	a.Error(err)
}
