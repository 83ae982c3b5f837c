package pile

import (
	"slices"

	"github.com/lox/klondike/internal/card"
	"github.com/lox/klondike/internal/rules"
)

// FullFoundation is the number of cards in a completed foundation
const FullFoundation = 13

// Foundation is an ascending same-suit pile built up from the Ace.
type Foundation struct {
	Suit  card.Suit
	cards []*card.Card
}

// NewFoundation creates an empty foundation for suit
func NewFoundation(suit card.Suit) *Foundation {
	return &Foundation{Suit: suit, cards: make([]*card.Card, 0, FullFoundation)}
}

// CanAccept reports whether c is the next card for this foundation. Only
// single cards that are the top of their source container are accepted.
func (f *Foundation) CanAccept(c *card.Card) bool {
	if c == nil || f.Contains(c) || !c.OnTop() {
		return false
	}
	return rules.CanFound(f.Suit, f.Top(), c)
}

// Add appends c and marks it placed, returning the score it earned.
func (f *Foundation) Add(c *card.Card) int {
	awarded := c.SetState(card.Placed)
	c.Flip(true)
	if top := f.Top(); top != nil {
		top.SetOnTop(false)
	}
	f.cards = append(f.cards, c)
	c.SetOnTop(true)
	return awarded
}

// Remove pops c when it is the top card, for moving a card back out to the
// tableau. It reports whether anything was removed.
func (f *Foundation) Remove(c *card.Card) bool {
	if c == nil || f.Top() != c {
		return false
	}
	f.cards = f.cards[:len(f.cards)-1]
	c.SetOnTop(false)
	if top := f.Top(); top != nil {
		top.SetOnTop(true)
	}
	return true
}

// IsComplete reports whether the foundation holds Ace to King of its suit and
// every card has settled. A nil settled predicate treats all cards as settled.
func (f *Foundation) IsComplete(settled func(*card.Card) bool) bool {
	if len(f.cards) != FullFoundation {
		return false
	}
	for i, c := range f.cards {
		if c.Suit != f.Suit || c.Rank != card.Rank(i+1) {
			return false
		}
		if settled != nil && !settled(c) {
			return false
		}
	}
	return true
}

// Contains reports whether c is on this foundation
func (f *Foundation) Contains(c *card.Card) bool {
	return slices.Contains(f.cards, c)
}

// Top returns the highest card, or nil when empty
func (f *Foundation) Top() *card.Card {
	if len(f.cards) == 0 {
		return nil
	}
	return f.cards[len(f.cards)-1]
}

// Cards returns the foundation bottom to top. The slice must not be modified.
func (f *Foundation) Cards() []*card.Card {
	return f.cards
}

// Len returns the number of cards on the foundation
func (f *Foundation) Len() int {
	return len(f.cards)
}

// Reset empties the foundation
func (f *Foundation) Reset() {
	clear(f.cards)
	f.cards = f.cards[:0]
}
