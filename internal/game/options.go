package game

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/klondike/internal/card"
)

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger. Inconsistencies are reported at error level.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithSeed makes the shuffle sequence reproducible
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
		e.seeded = true
	}
}

// WithRand uses rng for shuffling and jitter. The seed is only recorded for
// reporting.
func WithRand(rng *rand.Rand, seed int64) Option {
	return func(e *Engine) {
		e.rng = rng
		e.seed = seed
		e.seeded = true
	}
}

// WithClock sets the clock used by the game timer and event timestamps
func WithClock(clock quartz.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithEventBus publishes engine events on bus
func WithEventBus(bus EventBus) Option {
	return func(e *Engine) { e.bus = bus }
}

// WithAnimator sets the render sink that receives Place and Flip calls
func WithAnimator(a Animator) Option {
	return func(e *Engine) { e.animator = a }
}

// WithLayout sets the layout used to compute animation targets
func WithLayout(l Layout) Option {
	return func(e *Engine) { e.layout = l }
}

// WithSettled injects the predicate that reports whether a card has finished
// animating. Win detection waits until every foundation card is settled.
func WithSettled(settled func(*card.Card) bool) Option {
	return func(e *Engine) { e.settled = settled }
}

// WithDealOrder stacks the deck instead of shuffling it. Cards are matched by
// suit and rank; the first 28 go to the tableau (one to stack 0, two to stack
// 1 and so on) and the rest form the stock, next to deal first. Cards not
// listed follow in their natural order. Every deal, including Reset, uses the
// same order.
func WithDealOrder(cards ...*card.Card) Option {
	return func(e *Engine) { e.dealOrder = cards }
}
