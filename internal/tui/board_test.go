package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/klondike/internal/card"
	"github.com/lox/klondike/internal/geom"
)

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestBoardPlaceGlidesToTarget(t *testing.T) {
	b := NewBoard()
	c := card.MustParse("Ah")

	first := b.Place(c, geom.Pt(1, 1))
	assert.True(t, isClosed(first), "a new card appears at its target")
	assert.True(t, b.Settled(c))

	done := b.Place(c, geom.Pt(11, 1))
	assert.False(t, isClosed(done))
	assert.False(t, b.Settled(c))
	assert.True(t, b.Animating())

	require.True(t, b.Step())
	pos, ok := b.Position(c)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(5, 1), pos)

	b.Step()
	b.Step()
	assert.True(t, isClosed(done))
	assert.True(t, b.Settled(c))
	assert.False(t, b.Step(), "nothing left to move")
}

func TestBoardReplaceClosesEarlierPromise(t *testing.T) {
	b := NewBoard()
	c := card.MustParse("Kd")
	b.Place(c, geom.Pt(0, 0))

	first := b.Place(c, geom.Pt(20, 0))
	second := b.Place(c, geom.Pt(0, 20))

	assert.True(t, isClosed(first))
	assert.False(t, isClosed(second))

	b.Settle()
	assert.True(t, isClosed(second))
	pos, _ := b.Position(c)
	assert.Equal(t, geom.Pt(0, 20), pos)
}

func TestBoardSnapMovesImmediately(t *testing.T) {
	b := NewBoard()
	c := card.MustParse("7s")
	b.Place(c, geom.Pt(0, 0))

	done := b.Snap().Place(c, geom.Pt(30, 12))
	assert.True(t, isClosed(done))
	assert.True(t, b.Settled(c))

	pos, _ := b.Position(c)
	assert.Equal(t, geom.Pt(30, 12), pos)
}

func TestBoardUnknownCardIsSettled(t *testing.T) {
	b := NewBoard()
	_, ok := b.Position(card.MustParse("2c"))
	assert.False(t, ok)
	assert.True(t, b.Settled(card.MustParse("2c")))
}

func TestCanvasCard(t *testing.T) {
	cv := newCanvas(9, 6)
	c := card.MustParse("Ah")
	c.Flip(true)
	cv.card(c, geom.Pt(1, 0), geom.Size{W: 7, H: 5}, false)

	want := "" +
		" ╭A♥───╮\n" +
		" │     │\n" +
		" │     │\n" +
		" │   A♥│\n" +
		" ╰─────╯\n"
	assert.Equal(t, want, cv.Plain())
}

func TestCanvasFaceDownAndClipping(t *testing.T) {
	cv := newCanvas(4, 2)
	c := card.MustParse("Qs")
	cv.card(c, geom.Pt(1, 0), geom.Size{W: 7, H: 5}, false)

	assert.Equal(t, " ╭──\n │▒▒", cv.Plain())
}
