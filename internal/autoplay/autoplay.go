// Package autoplay plays Klondike games without a human, using only the
// moves the engine exposes to the interaction layer.
//
// The strategy is greedy and never undoes progress:
//  1. play any waste or tableau top card to its foundation
//  2. move a tableau run when that turns over a hidden card or frees a King
//     from a hidden pile
//  3. play the waste card to a tableau stack
//  4. deal
//
// A game is abandoned after a full pass through the stock without a move.
package autoplay

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/klondike/internal/card"
	"github.com/lox/klondike/internal/game"
	"github.com/lox/klondike/internal/pile"
)

// DefaultMaxSteps bounds a single game
const DefaultMaxSteps = 5000

// Result summarises one auto-played game
type Result struct {
	Won   bool
	Steps int // actions taken, deals included
	Stuck bool
}

// Player drives one engine
type Player struct {
	engine   *game.Engine
	maxSteps int
	logger   *log.Logger
}

// Option configures a Player
type Option func(*Player)

// WithMaxSteps caps the number of actions per game
func WithMaxSteps(n int) Option {
	return func(p *Player) { p.maxSteps = n }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(p *Player) { p.logger = logger }
}

// New creates a player for e
func New(e *game.Engine, opts ...Option) *Player {
	p := &Player{engine: e, maxSteps: DefaultMaxSteps}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = log.New(io.Discard)
	}
	p.logger = p.logger.WithPrefix("autoplay")
	return p
}

// Play runs the current game until it is won, stuck, or out of steps. The
// engine must already be running.
func (p *Player) Play() Result {
	e := p.engine
	var res Result
	idle := 0 // deals since the last real move

	for res.Steps < p.maxSteps {
		if e.Tick() == game.Complete {
			res.Won = true
			return res
		}
		if e.State() != game.Running {
			break
		}

		if p.Step() {
			res.Steps++
			idle = 0
			continue
		}

		stock := e.Deck().Len()
		if stock == 0 || idle > stock {
			res.Stuck = true
			break
		}
		if e.Deal() == nil {
			res.Stuck = true
			break
		}
		res.Steps++
		idle++
	}

	p.logger.Debug("Game abandoned", "game", e.GameID(), "steps", res.Steps, "stuck", res.Stuck, "score", e.Score())
	return res
}

// Step makes the best non-deal move available, reporting whether it moved.
func (p *Player) Step() bool {
	return p.toFoundation() || p.revealingMove() || p.wasteToTableau()
}

func (p *Player) toFoundation() bool {
	e := p.engine
	if c := e.Deck().Top(); c != nil && e.Move(c, game.FoundationZone(c.Suit)) {
		return true
	}
	for _, t := range e.Tableaus() {
		if c := t.Top(); c != nil && e.Move(c, game.FoundationZone(c.Suit)) {
			return true
		}
	}
	return false
}

// revealingMove moves the face-up run of a stack elsewhere when that leaves
// a hidden card exposed or empties the stack for a King.
func (p *Player) revealingMove() bool {
	e := p.engine
	for _, from := range e.Tableaus() {
		head, depth := runHead(from)
		if head == nil {
			continue
		}
		if depth == 0 && head.Rank == card.King {
			continue // already at the bottom, moving it gains nothing
		}
		for _, to := range e.Tableaus() {
			if to == from {
				continue
			}
			if e.Move(head, game.TableauZone(to.Index)) {
				return true
			}
		}
	}
	return false
}

func (p *Player) wasteToTableau() bool {
	e := p.engine
	c := e.Deck().Top()
	if c == nil {
		return false
	}
	for _, t := range e.Tableaus() {
		if e.Move(c, game.TableauZone(t.Index)) {
			return true
		}
	}
	return false
}

// runHead returns the lowest face-up card of a stack and its depth
func runHead(t *pile.Tableau) (*card.Card, int) {
	for i, c := range t.Cards() {
		if c.FaceUp() {
			return c, i
		}
	}
	return nil, 0
}
