package tui

import (
	"math"

	"github.com/lox/klondike/internal/card"
	"github.com/lox/klondike/internal/game"
	"github.com/lox/klondike/internal/geom"
)

// DefaultSpeed is how many cells a card travels per animation step
const DefaultSpeed = 4

// sprite is the on-screen state of one card
type sprite struct {
	pos    geom.Point
	target geom.Point
	done   chan struct{}
}

// Board is the animation sink for the terminal. Cards placed by the engine
// glide towards their target a few cells per Step; cards placed through
// Snap jump there immediately.
type Board struct {
	speed   float64
	sprites map[*card.Card]*sprite
}

// NewBoard creates an empty board
func NewBoard() *Board {
	return &Board{speed: DefaultSpeed, sprites: make(map[*card.Card]*sprite)}
}

// Place starts moving c towards to. A card the board has never seen appears
// at its target.
func (b *Board) Place(c *card.Card, to geom.Point) <-chan struct{} {
	s, ok := b.sprites[c]
	if !ok {
		s = &sprite{pos: to}
		b.sprites[c] = s
	}
	if s.done != nil {
		close(s.done)
	}
	s.target = to
	s.done = make(chan struct{})
	if s.pos == s.target {
		close(s.done)
		s.done = nil
		return settled()
	}
	return s.done
}

// Flip is a no-op: the renderer reads the face from the card itself.
func (b *Board) Flip(*card.Card, bool) {}

// Snap returns an animator that moves cards without easing, used for cards
// following the pointer.
func (b *Board) Snap() game.Animator {
	return snapAnimator{b}
}

// Settled reports whether c has reached its target
func (b *Board) Settled(c *card.Card) bool {
	s, ok := b.sprites[c]
	return !ok || s.pos == s.target
}

// Animating reports whether any card is still moving
func (b *Board) Animating() bool {
	for _, s := range b.sprites {
		if s.pos != s.target {
			return true
		}
	}
	return false
}

// Position returns where c is currently drawn
func (b *Board) Position(c *card.Card) (geom.Point, bool) {
	s, ok := b.sprites[c]
	if !ok {
		return geom.Point{}, false
	}
	return s.pos, true
}

// Step advances every moving card and reports whether any moved
func (b *Board) Step() bool {
	moved := false
	for _, s := range b.sprites {
		if s.pos == s.target {
			continue
		}
		moved = true

		d := s.target.Sub(s.pos)
		dist := math.Max(math.Abs(d.X), math.Abs(d.Y))
		if dist <= b.speed {
			s.pos = s.target
			close(s.done)
			s.done = nil
			continue
		}
		s.pos = s.pos.Add(geom.Pt(d.X*b.speed/dist, d.Y*b.speed/dist))
	}
	return moved
}

// Settle finishes every animation at once
func (b *Board) Settle() {
	for _, s := range b.sprites {
		if s.pos != s.target {
			s.pos = s.target
			close(s.done)
			s.done = nil
		}
	}
}

type snapAnimator struct {
	b *Board
}

func (a snapAnimator) Place(c *card.Card, to geom.Point) <-chan struct{} {
	ch := a.b.Place(c, to)
	if s := a.b.sprites[c]; s.pos != to {
		s.pos = to
		close(s.done)
		s.done = nil
	}
	return ch
}

func (a snapAnimator) Flip(c *card.Card, faceUp bool) {
	a.b.Flip(c, faceUp)
}

func settled() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
