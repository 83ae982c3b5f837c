// Package rules holds the pure Klondike move predicates shared by the
// tableau and foundation piles. Nothing here mutates cards.
package rules

import "github.com/lox/klondike/internal/card"

// CanStack reports whether c may be placed on top of a tableau card: one
// rank lower and the opposite colour.
func CanStack(top, c *card.Card) bool {
	if top == nil || c == nil {
		return false
	}
	return top.Rank == c.Rank+1 && top.Color() != c.Color()
}

// CanSeed reports whether c may start an empty tableau stack. Only Kings can.
func CanSeed(c *card.Card) bool {
	return c != nil && c.Rank == card.King
}

// CanTableau combines CanStack and CanSeed for a stack whose top is top
// (nil when the stack is empty).
func CanTableau(top, c *card.Card) bool {
	if top == nil {
		return CanSeed(c)
	}
	return CanStack(top, c)
}

// CanFound reports whether c is the next card for the foundation of suit
// whose current top is top (nil when empty).
func CanFound(suit card.Suit, top, c *card.Card) bool {
	if c == nil || c.Suit != suit {
		return false
	}
	if top == nil {
		return c.Rank == card.Ace
	}
	return top.Suit == c.Suit && c.Rank == top.Rank+1
}

// IsRun reports whether cards, bottom to top, form a face-up sequence that
// can move as a unit.
func IsRun(cards []*card.Card) bool {
	if len(cards) == 0 {
		return false
	}
	for i, c := range cards {
		if !c.FaceUp() {
			return false
		}
		if i > 0 && !CanStack(cards[i-1], c) {
			return false
		}
	}
	return true
}
