// Package deck implements the solitaire stock and waste pile.
//
// The deck owns the 52 card instances for the lifetime of an engine. Cards
// leave the deck when a move claims them from the waste and only come back
// when the whole game is reset.
package deck

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/lox/klondike/internal/card"
	"github.com/lox/klondike/internal/randutil"
)

// Size is the number of cards in a full deck
const Size = 52

// Deck holds the stock and the waste in a single ordered slice. Cards before
// the cursor have been dealt to the waste, cards from the cursor onwards are
// still in the stock.
type Deck struct {
	all    [Size]*card.Card
	cards  []*card.Card
	cursor int
	rng    *rand.Rand
}

// New creates a deck of 52 fresh cards in suit-major order. The rng drives
// shuffling and cosmetic jitter; it must not be shared across goroutines.
func New(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}

	i := 0
	for rank := card.Ace; rank <= card.King; rank++ {
		for _, suit := range card.Suits {
			d.all[i] = card.New(suit, rank)
			i++
		}
	}

	d.cards = make([]*card.Card, 0, Size)
	d.cards = append(d.cards, d.all[:]...)
	return d
}

// All returns every card the deck was created with, wherever it is now.
func (d *Deck) All() []*card.Card {
	return d.all[:]
}

// Shuffle applies a Sattolo cycle to the cards the deck currently owns and
// clears the waste.
func (d *Deck) Shuffle() {
	d.Recycle()
	randutil.Sattolo(d.rng, d.cards)
}

// Deal moves the next stock card to the waste. When the stock is exhausted
// the waste is recycled first and the first card is dealt again; recycled
// reports whether that happened. Deal returns nil only if the deck owns no
// cards at all.
func (d *Deck) Deal() (c *card.Card, recycled bool) {
	if d.cursor >= len(d.cards) {
		if len(d.cards) == 0 {
			return nil, false
		}
		d.Recycle()
		recycled = true
	}

	if top := d.Top(); top != nil {
		top.SetOnTop(false)
	}

	c = d.cards[d.cursor]
	c.SetState(card.Dealt)
	c.Flip(true)
	c.SetOnTop(true)
	d.cursor++
	return c, recycled
}

// Arrange stacks the owned cards in the given order, next to deal first, and
// clears the waste. order must be a permutation of the cards the deck owns.
func (d *Deck) Arrange(order []*card.Card) error {
	if len(order) != len(d.cards) {
		return fmt.Errorf("arrange: got %d cards, deck owns %d", len(order), len(d.cards))
	}
	seen := make(map[*card.Card]bool, len(order))
	for _, c := range order {
		if seen[c] {
			return fmt.Errorf("arrange: %s listed twice", c)
		}
		if !d.Contains(c) {
			return fmt.Errorf("arrange: %s is not in the deck", c)
		}
		seen[c] = true
	}

	d.Recycle()
	copy(d.cards, order)
	return nil
}

// Find returns the deck's instance of the given card, wherever it is now.
func (d *Deck) Find(suit card.Suit, rank card.Rank) *card.Card {
	for _, c := range d.all {
		if c.Suit == suit && c.Rank == rank {
			return c
		}
	}
	return nil
}

// Take removes the next n cards from the stock, used for the opening deal.
// The cards keep their undealt state until a pile claims them.
func (d *Deck) Take(n int) []*card.Card {
	end := min(d.cursor+n, len(d.cards))
	taken := slices.Clone(d.cards[d.cursor:end])
	d.cards = slices.Delete(d.cards, d.cursor, end)
	return taken
}

// Remove detaches c from the deck when a move claims it. Only the top of the
// waste can be claimed. It reports false if c is not in the deck or is not
// the waste top.
func (d *Deck) Remove(c *card.Card) bool {
	if d.cursor == 0 || d.cards[d.cursor-1] != c {
		return false
	}

	d.cards = slices.Delete(d.cards, d.cursor-1, d.cursor)
	d.cursor--
	c.SetOnTop(false)

	if top := d.Top(); top != nil {
		top.SetOnTop(true)
	}
	return true
}

// Recycle turns the waste back into the stock without reclaiming cards that
// moved to other piles.
func (d *Deck) Recycle() {
	for _, c := range d.cards {
		c.Reset(d.rng)
	}
	d.cursor = 0
}

// Reset reclaims all 52 cards and returns them to the stock, face down.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	d.cards = append(d.cards, d.all[:]...)
	d.Recycle()
}

// Top returns the waste card that can be played, or nil.
func (d *Deck) Top() *card.Card {
	if d.cursor == 0 {
		return nil
	}
	return d.cards[d.cursor-1]
}

// Stock returns the undealt cards, next to deal first.
func (d *Deck) Stock() []*card.Card {
	return d.cards[d.cursor:]
}

// Waste returns the dealt cards, oldest first.
func (d *Deck) Waste() []*card.Card {
	return d.cards[:d.cursor]
}

// Contains reports whether the deck currently owns c.
func (d *Deck) Contains(c *card.Card) bool {
	return slices.Contains(d.cards, c)
}

// InWaste reports whether c is on the waste pile.
func (d *Deck) InWaste(c *card.Card) bool {
	return slices.Contains(d.Waste(), c)
}

// Len returns how many cards the deck owns, stock and waste combined.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Exhausted reports whether the next Deal will recycle the waste.
func (d *Deck) Exhausted() bool {
	return d.cursor >= len(d.cards)
}

// Cursor returns how many of the deck's cards have been dealt.
func (d *Deck) Cursor() int {
	return d.cursor
}
