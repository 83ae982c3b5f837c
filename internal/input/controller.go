// Package input turns pointer and tap gestures into engine moves.
//
// A press followed by less than the drag threshold of movement is a tap: a
// tapped card is auto-moved and a tapped stock deals. Anything further is a
// drag. On release a dragged run is dropped on the first foundation it
// overlaps, otherwise on the first tableau stack it touches; if neither
// accepts it the run is sent back to where it started.
package input

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/klondike/internal/card"
	"github.com/lox/klondike/internal/game"
	"github.com/lox/klondike/internal/geom"
)

// DefaultDragThreshold is the Manhattan distance a pointer must travel
// before a press becomes a drag.
const DefaultDragThreshold = 10

// Outcome describes what a gesture did
type Outcome int

const (
	Ignored   Outcome = iota // nothing changed
	Dealt                    // the stock was tapped
	AutoMoved                // a tapped card moved
	Dropped                  // a dragged run landed on a new zone
	Returned                 // a dragged run went back to its origin
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Dealt:
		return "dealt"
	case AutoMoved:
		return "auto-moved"
	case Dropped:
		return "dropped"
	case Returned:
		return "returned"
	default:
		return "unknown"
	}
}

// Option configures a Controller
type Option func(*Controller)

// WithThreshold sets the drag threshold
func WithThreshold(threshold float64) Option {
	return func(c *Controller) { c.threshold = threshold }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithAnimator sets the sink that shows cards following the pointer and
// returning to their origin after a rejected drop.
func WithAnimator(a game.Animator) Option {
	return func(c *Controller) { c.animator = a }
}

// Controller routes gestures for one engine. It is not safe for concurrent
// use.
type Controller struct {
	engine    *game.Engine
	layout    game.Layout
	animator  game.Animator
	threshold float64
	logger    *log.Logger

	pressed  bool
	hit      geom.Point
	delta    geom.Point
	down     *card.Card
	dragging bool
	run      []*card.Card
	origins  []geom.Point
}

// NewController creates a controller for e using the engine's layout
func NewController(e *game.Engine, opts ...Option) *Controller {
	c := &Controller{
		engine:    e,
		layout:    e.Layout(),
		animator:  game.NopAnimator{},
		threshold: DefaultDragThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	c.logger = c.logger.WithPrefix("input")
	return c
}

// PointerDown starts a gesture at p
func (c *Controller) PointerDown(p geom.Point) {
	c.clear()
	c.pressed = true
	c.hit = p
	c.down = c.CardAt(p)
}

// PointerMove follows the pointer. Once it has moved at least the drag
// threshold from the press, the pressed card and everything above it follow.
func (c *Controller) PointerMove(p geom.Point) {
	if !c.pressed {
		return
	}
	if !c.dragging {
		if c.hit.Manhattan(p) < c.threshold {
			return
		}
		if !c.startDrag() {
			return
		}
	}

	c.delta = p.Sub(c.hit)
	for i, rc := range c.run {
		c.animator.Place(rc, c.origins[i].Add(c.delta))
	}
}

// PointerUp finishes the gesture. A press that never became a drag is a tap
// at the press position.
func (c *Controller) PointerUp() Outcome {
	if !c.pressed {
		return Ignored
	}
	defer c.clear()

	if !c.dragging {
		return c.Click(c.hit)
	}
	return c.drop()
}

// Dragging reports whether a run is following the pointer
func (c *Controller) Dragging() bool {
	return c.dragging
}

// Selected returns the dragged run, bottom to top
func (c *Controller) Selected() []*card.Card {
	return c.run
}

// Offset returns how far the dragged run has moved from its origin
func (c *Controller) Offset() geom.Point {
	return c.delta
}

// Click taps whatever is at p: the stock deals and a face-up card auto-moves.
func (c *Controller) Click(p geom.Point) Outcome {
	if c.layout.ZoneBounds(game.Stock).Contains(p) {
		return c.TapStock()
	}
	if tapped := c.CardAt(p); tapped != nil {
		return c.TapCard(tapped)
	}
	return Ignored
}

// TapCard sends a card to the first zone that takes it. Taps are ignored
// while dragging.
func (c *Controller) TapCard(tapped *card.Card) Outcome {
	if c.dragging || tapped == nil {
		return Ignored
	}
	if c.engine.AutoMove(tapped) {
		c.logger.Debug("Card auto-moved", "card", tapped)
		return AutoMoved
	}
	return Ignored
}

// TapStock deals the next card
func (c *Controller) TapStock() Outcome {
	if c.dragging {
		return Ignored
	}
	if c.engine.Deal() == nil {
		return Ignored
	}
	return Dealt
}

// CardAt returns the face-up card drawn topmost at p, or nil.
func (c *Controller) CardAt(p geom.Point) *card.Card {
	size := c.layout.CardSize()
	at := func(cards []*card.Card, zone game.Zone) *card.Card {
		for i := len(cards) - 1; i >= 0; i-- {
			pos := c.layout.SlotPosition(game.Slot{Zone: zone, Depth: i})
			if (geom.Rect{Min: pos, Size: size}).Contains(p) {
				if cards[i].FaceUp() {
					return cards[i]
				}
				return nil
			}
		}
		return nil
	}

	if found := at(c.engine.Deck().Waste(), game.Waste); found != nil {
		return found
	}
	for _, f := range c.engine.Foundations() {
		if found := at(f.Cards(), game.FoundationZone(f.Suit)); found != nil {
			return found
		}
	}
	for _, t := range c.engine.Tableaus() {
		if found := at(t.Cards(), game.TableauZone(t.Index)); found != nil {
			return found
		}
	}
	return nil
}

func (c *Controller) startDrag() bool {
	if c.down == nil || c.engine.State() != game.Running {
		return false
	}

	from, ok := c.engine.Locate(c.down)
	if !ok {
		return false
	}
	var run []*card.Card
	switch from.Kind {
	case game.ZoneTableau:
		run = c.engine.Tableau(from.Index).RunFrom(c.down)
	case game.ZoneWaste, game.ZoneFoundation:
		if c.down.OnTop() {
			run = []*card.Card{c.down}
		}
	}
	if len(run) == 0 {
		return false
	}

	c.run = run
	c.origins = make([]geom.Point, len(run))
	for i, rc := range run {
		slot, _ := c.engine.SlotOf(rc)
		c.origins[i] = c.layout.SlotPosition(slot)
	}
	c.dragging = true
	c.logger.Debug("Drag started", "card", c.down, "cards", len(run), "from", from)
	return true
}

func (c *Controller) drop() Outcome {
	lead := c.run[0]
	bounds := geom.Rect{Min: c.origins[0].Add(c.delta), Size: c.layout.CardSize()}

	for _, f := range c.engine.Foundations() {
		z := game.FoundationZone(f.Suit)
		if c.layout.ZoneBounds(z).Intersects(bounds) && c.engine.Move(lead, z) {
			c.logger.Debug("Dropped on foundation", "card", lead, "to", z)
			return Dropped
		}
	}

	for _, t := range c.engine.Tableaus() {
		if t.Contains(lead) {
			continue
		}
		z := game.TableauZone(t.Index)
		if touchesStack(bounds, c.layout.ZoneBounds(z)) && c.engine.Move(lead, z) {
			c.logger.Debug("Dropped on tableau", "card", lead, "to", z)
			return Dropped
		}
	}

	for i, rc := range c.run {
		c.animator.Place(rc, c.origins[i])
	}
	c.logger.Debug("Drop rejected", "card", lead)
	return Returned
}

// touchesStack reports whether a dragged card overlaps the stack's column and
// its bottom edge is below the top of the stack base.
func touchesStack(dragged, stack geom.Rect) bool {
	dm, sm := dragged.Max(), stack.Max()
	overlapX := dragged.Min.X < sm.X && dm.X > stack.Min.X
	return overlapX && dm.Y > stack.Min.Y
}

func (c *Controller) clear() {
	c.pressed = false
	c.dragging = false
	c.down = nil
	c.run = nil
	c.origins = nil
	c.delta = geom.Point{}
}
