package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/klondike/internal/card"
	"github.com/lox/klondike/internal/geom"
)

type ink int

const (
	inkNone ink = iota
	inkBorder
	inkRed
	inkBlack
	inkBack
	inkEmpty
	inkFocus
)

func (k ink) style() *lipgloss.Style {
	switch k {
	case inkBorder:
		return &CardBorderStyle
	case inkRed:
		return &RedCardStyle
	case inkBlack:
		return &BlackCardStyle
	case inkBack:
		return &CardBackStyle
	case inkEmpty:
		return &EmptySlotStyle
	case inkFocus:
		return &FocusStyle
	default:
		return nil
	}
}

type cell struct {
	r rune
	k ink
}

// canvas is a fixed grid of styled runes that cards are painted onto, back
// to front.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	cv := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range cv.cells {
		cv.cells[i] = cell{r: ' '}
	}
	return cv
}

func (cv *canvas) set(x, y int, r rune, k ink) {
	if x < 0 || y < 0 || x >= cv.w || y >= cv.h {
		return
	}
	cv.cells[y*cv.w+x] = cell{r: r, k: k}
}

func (cv *canvas) text(x, y int, s string, k ink) {
	for _, r := range s {
		cv.set(x, y, r, k)
		x++
	}
}

// box draws a rounded frame of the given size and fills its interior
func (cv *canvas) box(x, y, w, h int, frame ink, fill rune, fillInk ink) {
	for j := range h {
		for i := range w {
			r, k := fill, fillInk
			switch {
			case j == 0 && i == 0:
				r, k = '╭', frame
			case j == 0 && i == w-1:
				r, k = '╮', frame
			case j == h-1 && i == 0:
				r, k = '╰', frame
			case j == h-1 && i == w-1:
				r, k = '╯', frame
			case j == 0 || j == h-1:
				r, k = '─', frame
			case i == 0 || i == w-1:
				r, k = '│', frame
			}
			cv.set(x+i, y+j, r, k)
		}
	}
}

// card paints c at p. The label sits in the top border so it stays visible
// when the card is fanned under others.
func (cv *canvas) card(c *card.Card, p geom.Point, size geom.Size, focused bool) {
	x, y := round(p.X), round(p.Y)
	w, h := int(size.W), int(size.H)

	frame := inkBorder
	if focused {
		frame = inkFocus
	}

	if !c.FaceUp() {
		cv.box(x, y, w, h, frame, '▒', inkBack)
		return
	}

	cv.box(x, y, w, h, frame, ' ', inkNone)
	face := inkBlack
	if c.IsRed() {
		face = inkRed
	}
	label := c.String()
	cv.text(x+1, y, label, face)
	cv.text(x+w-1-runeLen(label), y+h-2, label, face)
}

// slot paints an empty zone outline with an optional centred label
func (cv *canvas) slot(r geom.Rect, label string) {
	x, y := round(r.Min.X), round(r.Min.Y)
	w, h := int(r.Size.W), int(r.Size.H)
	cv.box(x, y, w, h, inkEmpty, ' ', inkNone)
	if label != "" {
		cv.text(x+(w-runeLen(label))/2, y+h/2, label, inkEmpty)
	}
}

// String renders the canvas, styling runs of cells that share an ink
func (cv *canvas) String() string {
	var out strings.Builder
	var run strings.Builder

	flush := func(k ink) {
		if run.Len() == 0 {
			return
		}
		if st := k.style(); st != nil {
			out.WriteString(st.Render(run.String()))
		} else {
			out.WriteString(run.String())
		}
		run.Reset()
	}

	for y := range cv.h {
		if y > 0 {
			out.WriteByte('\n')
		}
		current := inkNone
		for x := range cv.w {
			c := cv.cells[y*cv.w+x]
			if c.k != current {
				flush(current)
				current = c.k
			}
			run.WriteRune(c.r)
		}
		flush(current)
	}
	return out.String()
}

// Plain returns the canvas without styling
func (cv *canvas) Plain() string {
	lines := make([]string, cv.h)
	for y := range cv.h {
		row := make([]rune, cv.w)
		for x := range cv.w {
			row[x] = cv.cells[y*cv.w+x].r
		}
		lines[y] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

func round(v float64) int {
	return int(math.Round(v))
}

func runeLen(s string) int {
	return len([]rune(s))
}
