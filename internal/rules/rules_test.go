package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/klondike/internal/card"
)

func c(s string) *card.Card { return card.MustParse(s) }

func TestCanTableau(t *testing.T) {
	tests := []struct {
		name     string
		top      *card.Card
		card     *card.Card
		expected bool
	}{
		{name: "red on black one lower", top: c("8s"), card: c("7h"), expected: true},
		{name: "black on red one lower", top: c("Qd"), card: c("Jc"), expected: true},
		{name: "same colour", top: c("8s"), card: c("7c"), expected: false},
		{name: "two lower", top: c("8s"), card: c("6h"), expected: false},
		{name: "higher", top: c("8s"), card: c("9h"), expected: false},
		{name: "equal rank", top: c("8s"), card: c("8h"), expected: false},
		{name: "king on empty", top: nil, card: c("Kh"), expected: true},
		{name: "queen on empty", top: nil, card: c("Qh"), expected: false},
		{name: "ace on empty", top: nil, card: c("As"), expected: false},
		{name: "ace on two", top: c("2d"), card: c("As"), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanTableau(tt.top, tt.card))
		})
	}
}

func TestCanFound(t *testing.T) {
	tests := []struct {
		name     string
		suit     card.Suit
		top      *card.Card
		card     *card.Card
		expected bool
	}{
		{name: "ace on empty", suit: card.Hearts, top: nil, card: c("Ah"), expected: true},
		{name: "ace of wrong suit", suit: card.Hearts, top: nil, card: c("As"), expected: false},
		{name: "two on empty", suit: card.Hearts, top: nil, card: c("2h"), expected: false},
		{name: "next rank", suit: card.Clubs, top: c("4c"), card: c("5c"), expected: true},
		{name: "skipped rank", suit: card.Clubs, top: c("4c"), card: c("6c"), expected: false},
		{name: "lower rank", suit: card.Clubs, top: c("4c"), card: c("3c"), expected: false},
		{name: "next rank wrong suit", suit: card.Clubs, top: c("4c"), card: c("5s"), expected: false},
		{name: "nil card", suit: card.Clubs, top: nil, card: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanFound(tt.suit, tt.top, tt.card))
		})
	}
}

func TestIsRun(t *testing.T) {
	faceUp := func(names ...string) []*card.Card {
		cards := make([]*card.Card, len(names))
		for i, n := range names {
			cards[i] = c(n)
			cards[i].Flip(true)
		}
		return cards
	}

	assert.True(t, IsRun(faceUp("Ks")))
	assert.True(t, IsRun(faceUp("Ks", "Qh", "Jc", "Td")))
	assert.False(t, IsRun(faceUp("Ks", "Qs")))
	assert.False(t, IsRun(faceUp("Ks", "Jh")))
	assert.False(t, IsRun(nil))

	hidden := faceUp("9h", "8s")
	hidden[0].Flip(false)
	assert.False(t, IsRun(hidden))
}
