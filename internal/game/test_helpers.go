package game

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/klondike/internal/card"
)

// NewTestEngine creates a started engine for testing with sensible defaults:
// seed 42, a discarding logger and no animation. Later options override
// earlier ones.
func NewTestEngine(opts ...Option) *Engine {
	defaults := []Option{
		WithSeed(42),
		WithLogger(log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})),
	}
	e := New(append(defaults, opts...)...)
	e.Start()
	return e
}

// DealOrder parses short card names (e.g. "Ah", "Tc") for WithDealOrder.
// It panics on a malformed name.
func DealOrder(names ...string) []*card.Card {
	cards := make([]*card.Card, len(names))
	for i, n := range names {
		cards[i] = card.MustParse(n)
	}
	return cards
}

// SolvableDealOrder returns a deal that is won by always playing to the
// foundations when possible and dealing otherwise. Every tableau stack is in
// non-increasing rank order from the bottom, so each stack top is the lowest
// card on it, and the stock holds the Aces through Sixes.
func SolvableDealOrder() []*card.Card {
	cards := make([]*card.Card, 0, 52)
	for rank := card.King; rank >= card.Ace; rank-- {
		for _, suit := range card.Suits {
			cards = append(cards, card.New(suit, rank))
		}
	}
	return cards
}

// StackedDeck deals first (tableau 0 first) and then stock (next to deal
// first), padding the tableau with the highest cards not named in either
// list.
func StackedDeck(first, stock []string) Option {
	named := DealOrder(append(slices.Clone(first), stock...)...)
	isNamed := func(c *card.Card) bool {
		return slices.ContainsFunc(named, func(n *card.Card) bool {
			return n.Suit == c.Suit && n.Rank == c.Rank
		})
	}

	order := DealOrder(first...)
	for _, c := range SolvableDealOrder() {
		if len(order) == 28 {
			break
		}
		if !isNamed(c) {
			order = append(order, c)
		}
	}
	return WithDealOrder(append(order, DealOrder(stock...)...)...)
}
