// Package game implements the Klondike solitaire game-state engine.
//
// The main type is Engine, which owns the deck, the seven tableau stacks and
// the four foundations, and keeps score, move count and game state.
//
// # Basic Usage
//
//	e := game.New(game.WithSeed(42), game.WithLogger(logger))
//	e.Start()
//	e.Deal()                     // tap the stock
//	e.AutoMove(e.Deck().Top())   // tap the waste card
//	e.Tick()                     // poll for a win once per frame
//
// # Collaborators
//
// Presentation is injected rather than owned:
//   - Animator receives Place/Flip calls with coordinates from the Layout
//   - the settled predicate (WithSettled) gates win detection on animations
//   - EventBus subscribers receive score, move and state notifications
//
// Logical state never waits on animation. Every accepted move updates
// container membership, card state, score and move count before Move returns.
//
// # Deterministic Testing
//
// WithSeed fixes the shuffle; WithDealOrder stacks the deck completely and
// WithClock injects a quartz mock for the game timer. NewTestEngine combines
// these with a discarding logger.
package game
