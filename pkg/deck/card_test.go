package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCard_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("A♠", CardFromString("14s").String())
	a.Equal("K♡", CardFromString("13h").String())
	a.Equal("Q♢", CardFromString("12d").String())
	a.Equal("J♣", CardFromString("11c").String())
	a.Equal("2♣", CardFromString("2c").String())
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	card := CardFromString("4d")
	a.Equal(4, card.Rank)
	a.Equal(Diamonds, card.Suit)

	card = CardFromString("14S")
	a.Equal(Ace, card.Rank)
	a.Equal(Spades, card.Suit)

	a.Nil(CardFromString(""))

	a.Panics(func() {
		CardFromString("1s")
	})

	a.Panics(func() {
		CardFromString("15s")
	})

	a.Panics(func() {
		CardFromString("5x")
	})
}

func TestCard_Equal(t *testing.T) {
	a := assert.New(t)
	a.True(CardFromString("5c").Equal(CardFromString("5c")))
	a.False(CardFromString("5c").Equal(CardFromString("5d")))
	a.False(CardFromString("5c").Equal(CardFromString("6c")))
}

func TestCardsFromString(t *testing.T) {
	a := assert.New(t)

	cards := CardsFromString("2c,11d,14s")
	a.Equal(3, len(cards))
	a.Equal(2, cards[0].Rank)
	a.Equal(Clubs, cards[0].Suit)
	a.Equal(Jack, cards[1].Rank)
	a.Equal(Diamonds, cards[1].Suit)
	a.Equal(Ace, cards[2].Rank)
	a.Equal(Spades, cards[2].Suit)

	a.Equal(0, len(CardsFromString("")))
}

func TestCardsToString(t *testing.T) {
	a := assert.New(t)
	a.Equal("2c,11d,14s", CardsToString(CardsFromString("2c,11d,14s")))
	a.Equal("", CardToString(nil))
	a.Equal("", CardsToString([]*Card{}))
}
