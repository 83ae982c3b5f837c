// Package pile implements the two kinds of card piles on a Klondike table:
// the seven tableau stacks and the four suit foundations.
package pile

import (
	"slices"

	"github.com/lox/klondike/internal/card"
	"github.com/lox/klondike/internal/rules"
)

// Tableau is one of the seven main stacks. Cards are ordered bottom to top.
type Tableau struct {
	Index int
	cards []*card.Card
}

// NewTableau creates an empty tableau stack
func NewTableau(index int) *Tableau {
	return &Tableau{Index: index, cards: make([]*card.Card, 0, 19)}
}

// CanAccept checks whether the stack can take c as its new top card:
// - the stack top is one rank higher and the opposite colour, or
// - the stack is empty and c is a King.
// A card already on this stack is never accepted.
func (t *Tableau) CanAccept(c *card.Card) bool {
	if t.Contains(c) {
		return false
	}
	return rules.CanTableau(t.Top(), c)
}

// Add appends c, marks it played and refreshes the on-top flags. It returns
// the score the card earned by arriving here.
func (t *Tableau) Add(c *card.Card) int {
	awarded := c.SetState(card.Played)
	if !t.Contains(c) {
		t.cards = append(t.cards, c)
	}
	t.refreshTop()
	return awarded
}

// Carry appends c as part of a run led by another card. It marks c played
// without scoring.
func (t *Tableau) Carry(c *card.Card) {
	c.Carry(card.Played)
	if !t.Contains(c) {
		t.cards = append(t.cards, c)
	}
	t.refreshTop()
}

// RemoveFrom removes c and every card above it, turns the new top face up and
// returns the removed run bottom to top. It returns nil if c is not here.
func (t *Tableau) RemoveFrom(c *card.Card) []*card.Card {
	index := slices.Index(t.cards, c)
	if index == -1 {
		return nil
	}

	removed := slices.Clone(t.cards[index:])
	t.cards = slices.Delete(t.cards, index, len(t.cards))
	if top := t.Top(); top != nil {
		top.Flip(true)
	}

	for _, r := range removed {
		r.SetOnTop(false)
	}
	t.refreshTop()
	return removed
}

// RunFrom returns c and every card above it without changing the stack.
func (t *Tableau) RunFrom(c *card.Card) []*card.Card {
	index := slices.Index(t.cards, c)
	if index == -1 {
		return nil
	}
	return slices.Clone(t.cards[index:])
}

// IsCardOnTop reports whether c is the last card on the stack
func (t *Tableau) IsCardOnTop(c *card.Card) bool {
	return c != nil && t.Top() == c
}

// Contains reports whether c is on this stack
func (t *Tableau) Contains(c *card.Card) bool {
	return slices.Contains(t.cards, c)
}

// Top returns the top card, or nil when the stack is empty
func (t *Tableau) Top() *card.Card {
	if len(t.cards) == 0 {
		return nil
	}
	return t.cards[len(t.cards)-1]
}

// Cards returns the stack bottom to top. The slice must not be modified.
func (t *Tableau) Cards() []*card.Card {
	return t.cards
}

// Len returns the number of cards on the stack
func (t *Tableau) Len() int {
	return len(t.cards)
}

// Reset empties the stack
func (t *Tableau) Reset() {
	clear(t.cards)
	t.cards = t.cards[:0]
}

func (t *Tableau) refreshTop() {
	for _, c := range t.cards {
		c.SetOnTop(t.IsCardOnTop(c))
	}
}
