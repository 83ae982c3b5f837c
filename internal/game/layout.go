package game

import (
	"github.com/lox/klondike/internal/card"
	"github.com/lox/klondike/internal/geom"
)

// Layout maps logical slots to table coordinates. The engine uses it only to
// tell the Animator where a card should travel; the interaction layer uses it
// for hit testing.
type Layout interface {
	CardSize() geom.Size
	// ZoneBounds returns the base rectangle of an empty zone.
	ZoneBounds(z Zone) geom.Rect
	// SlotPosition returns the top-left corner of the card at slot.
	SlotPosition(s Slot) geom.Point
}

// Animator is the render sink. Place starts moving a card to a position and
// returns a channel that is closed when the card comes to rest; Flip turns a
// card over. Neither call may block.
type Animator interface {
	Place(c *card.Card, to geom.Point) <-chan struct{}
	Flip(c *card.Card, faceUp bool)
}

var settledCh = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// NopAnimator settles every placement immediately
type NopAnimator struct{}

func (NopAnimator) Place(*card.Card, geom.Point) <-chan struct{} { return settledCh }
func (NopAnimator) Flip(*card.Card, bool)                        {}

// GridLayout is a fixed layout: stock, waste and the four foundations on the
// top row and the seven tableau stacks below, with tableau cards fanned
// downwards by FanY.
type GridLayout struct {
	Origin geom.Point
	Card   geom.Size
	GapX   float64
	GapY   float64
	FanY   float64
}

// DefaultGridLayout returns the character-cell layout used by the terminal
// front end: 7-column cards, 5 rows tall, fanned one row per card.
func DefaultGridLayout() GridLayout {
	return GridLayout{
		Origin: geom.Pt(1, 1),
		Card:   geom.Size{W: 7, H: 5},
		GapX:   2,
		GapY:   1,
		FanY:   1,
	}
}

// CardSize returns the card dimensions
func (l GridLayout) CardSize() geom.Size { return l.Card }

func (l GridLayout) column(i int) float64 {
	return l.Origin.X + float64(i)*(l.Card.W+l.GapX)
}

func (l GridLayout) row(i int) float64 {
	return l.Origin.Y + float64(i)*(l.Card.H+l.GapY)
}

// ZoneBounds places stock in column 0, waste in column 1, foundations in
// columns 3-6 (suit order) and tableau i in column i of the second row.
func (l GridLayout) ZoneBounds(z Zone) geom.Rect {
	var p geom.Point
	switch z.Kind {
	case ZoneStock:
		p = geom.Pt(l.column(0), l.row(0))
	case ZoneWaste:
		p = geom.Pt(l.column(1), l.row(0))
	case ZoneFoundation:
		p = geom.Pt(l.column(3+foundationColumn(z.Suit())), l.row(0))
	case ZoneTableau:
		p = geom.Pt(l.column(z.Index), l.row(1))
	}
	return geom.Rect{Min: p, Size: l.Card}
}

// SlotPosition stacks deck and foundation cards on their base and fans
// tableau cards downwards.
func (l GridLayout) SlotPosition(s Slot) geom.Point {
	base := l.ZoneBounds(s.Zone).Min
	if s.Zone.Kind == ZoneTableau {
		return base.Add(geom.Pt(0, float64(s.Depth)*l.FanY))
	}
	return base
}

func foundationColumn(s card.Suit) int {
	for i, suit := range card.Suits {
		if suit == s {
			return i
		}
	}
	return 0
}
