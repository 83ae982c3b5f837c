package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/klondike/internal/card"
	"github.com/lox/klondike/internal/deck"
	"github.com/lox/klondike/internal/gameid"
	"github.com/lox/klondike/internal/pile"
	"github.com/lox/klondike/internal/randutil"
	"github.com/lox/klondike/internal/rules"
)

// TableauCount is the number of tableau stacks
const TableauCount = 7

// Engine owns one game of Klondike: the deck, the tableau, the foundations,
// the score and the move count. It is not safe for concurrent use.
type Engine struct {
	deck        *deck.Deck
	tableaus    [TableauCount]*pile.Tableau
	foundations [4]*pile.Foundation // indexed by card.Suit

	state  State
	score  int
	moves  int
	gameID uuid.UUID

	seed      int64
	seeded    bool
	rng       *rand.Rand
	dealOrder []*card.Card

	clock    quartz.Clock
	timer    *Timer
	bus      EventBus
	animator Animator
	layout   Layout
	settled  func(*card.Card) bool
	logger   *log.Logger
}

// New creates an engine in the Waiting state. Call Start to deal.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	if e.rng == nil {
		if e.seeded {
			e.rng = randutil.New(e.seed)
		} else {
			e.rng, e.seed = randutil.NewRandom()
		}
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	e.logger = e.logger.WithPrefix("engine")
	if e.clock == nil {
		e.clock = quartz.NewReal()
	}
	if e.bus == nil {
		e.bus = NewEventBus()
	}
	if e.animator == nil {
		e.animator = NopAnimator{}
	}
	if e.layout == nil {
		e.layout = DefaultGridLayout()
	}

	e.timer = NewTimer(e.clock)
	e.deck = deck.New(e.rng)
	for i := range e.tableaus {
		e.tableaus[i] = pile.NewTableau(i)
	}
	for _, s := range card.Suits {
		e.foundations[s] = pile.NewFoundation(s)
	}
	return e
}

// Start deals the first game. It only has an effect while Waiting.
func (e *Engine) Start() bool {
	if e.state != Waiting {
		return false
	}
	e.deal()
	e.setState(Running)
	return true
}

// Reset abandons the current game, whatever its state, and deals a new one.
func (e *Engine) Reset() {
	e.setState(Waiting)
	e.deal()
	e.setState(Running)
}

// Pause stops the timer and refuses moves until Resume
func (e *Engine) Pause() bool {
	if e.state != Running {
		return false
	}
	e.timer.Pause()
	e.setState(Paused)
	return true
}

// Resume continues a paused game
func (e *Engine) Resume() bool {
	if e.state != Paused {
		return false
	}
	e.timer.Resume()
	e.setState(Running)
	return true
}

// Tick is polled once per frame. It moves a running game to Complete when all
// four foundations are full and every foundation card has settled.
func (e *Engine) Tick() State {
	if e.state != Running || !e.foundationsComplete() {
		return e.state
	}

	e.timer.Stop()
	e.setState(Complete)
	e.logger.Info("Game won", "game", e.gameID, "score", e.score, "moves", e.moves, "elapsed", e.timer.Elapsed())
	e.publish(GameWonEvent{
		GameID:    e.gameID,
		Score:     e.score,
		Moves:     e.moves,
		Elapsed:   e.timer.Elapsed(),
		timestamp: e.now(),
	})
	return e.state
}

// Deal turns over the next stock card onto the waste, recycling the waste
// when the stock is empty. A deal counts as a move. It returns nil when the
// game is not running or no cards are left in the deck.
func (e *Engine) Deal() *card.Card {
	if e.state != Running {
		return nil
	}

	c, recycled := e.deck.Deal()
	if c == nil {
		return nil
	}

	if recycled {
		for i, s := range e.deck.Stock() {
			e.animator.Flip(s, false)
			e.place(s, Slot{Zone: Stock, Depth: i})
		}
		e.logger.Debug("Stock recycled", "cards", e.deck.Len())
		e.publish(StockRecycledEvent{Cards: e.deck.Len(), timestamp: e.now()})
	}

	e.place(c, Slot{Zone: Waste, Depth: e.deck.Cursor() - 1})
	e.animator.Flip(c, true)

	e.logger.Debug("Card dealt", "card", c, "recycled", recycled)
	e.publish(CardDealtEvent{Card: c, Recycled: recycled, timestamp: e.now()})
	e.setMoves(e.moves + 1)
	return c
}

// CanMove reports whether c (and, from a tableau, every card above it) may
// move to the target zone right now.
func (e *Engine) CanMove(c *card.Card, to Zone) bool {
	if e.state != Running || c == nil || !c.FaceUp() {
		return false
	}
	from, ok := e.source(c)
	if !ok {
		return false
	}
	return e.canMove(c, from, to)
}

// Move moves c to the target zone. Moving a tableau card takes the run above
// it along. On success the piles, card states, score and move count are all
// updated before Move returns; on failure nothing changes.
func (e *Engine) Move(c *card.Card, to Zone) bool {
	if e.state != Running || c == nil || !c.FaceUp() {
		return false
	}
	from, ok := e.source(c)
	if !ok || !e.canMove(c, from, to) {
		return false
	}

	run, ok := e.detach(c, from)
	if !ok {
		return false
	}

	awarded := 0
	for i, r := range run {
		awarded += e.attach(r, to, i == 0)
	}

	e.logger.Debug("Card moved", "card", c, "cards", len(run), "from", from, "to", to, "awarded", awarded)
	e.publish(CardMovedEvent{Cards: run, From: from, To: to, Awarded: awarded, timestamp: e.now()})
	e.setMoves(e.moves + 1)
	if awarded != 0 {
		e.setScore(e.score + awarded)
	}
	return true
}

// AutoMove sends c to the first zone that accepts it, trying the foundation
// for its suit first and then the tableau stacks in order.
func (e *Engine) AutoMove(c *card.Card) bool {
	if e.state != Running || c == nil || !c.FaceUp() {
		return false
	}
	from, ok := e.source(c)
	if !ok {
		return false
	}

	if to := FoundationZone(c.Suit); e.canMove(c, from, to) {
		return e.Move(c, to)
	}
	for i := range e.tableaus {
		if to := TableauZone(i); e.canMove(c, from, to) {
			return e.Move(c, to)
		}
	}
	return false
}

func (e *Engine) canMove(c *card.Card, from, to Zone) bool {
	if from == to {
		return false
	}

	switch to.Kind {
	case ZoneFoundation:
		f := e.Foundation(to.Suit())
		if f == nil || from.Kind == ZoneStock {
			return false
		}
		return f.CanAccept(c)

	case ZoneTableau:
		t := e.Tableau(to.Index)
		if t == nil {
			return false
		}
		switch from.Kind {
		case ZoneWaste, ZoneFoundation:
			if !c.OnTop() {
				return false
			}
		case ZoneTableau:
			if !rules.IsRun(e.tableaus[from.Index].RunFrom(c)) {
				return false
			}
		default:
			return false
		}
		return t.CanAccept(c)
	}
	return false
}

// detach removes c (and its run) from the source container
func (e *Engine) detach(c *card.Card, from Zone) ([]*card.Card, bool) {
	switch from.Kind {
	case ZoneWaste:
		if !e.deck.Remove(c) {
			e.logger.Error("Waste card is not on top", "card", c, "state", c.State())
			return nil, false
		}
		return []*card.Card{c}, true

	case ZoneFoundation:
		if !e.Foundation(from.Suit()).Remove(c) {
			e.logger.Error("Foundation card is not on top", "card", c, "foundation", from)
			return nil, false
		}
		return []*card.Card{c}, true

	case ZoneTableau:
		t := e.tableaus[from.Index]
		cards := t.Cards()
		var below *card.Card
		if i := slices.Index(cards, c); i > 0 {
			below = cards[i-1]
		}
		hidden := below != nil && !below.FaceUp()

		run := t.RemoveFrom(c)
		if run == nil {
			e.logger.Error("Tableau card vanished", "card", c, "tableau", from)
			return nil, false
		}
		if hidden && below.FaceUp() {
			e.animator.Flip(below, true)
		}
		return run, true
	}

	e.logger.Error("Cannot move card from zone", "card", c, "zone", from)
	return nil, false
}

// attach adds c to the target container and starts its animation. Only the
// lead card of a run can score.
func (e *Engine) attach(c *card.Card, to Zone, lead bool) int {
	var awarded, depth int
	switch to.Kind {
	case ZoneTableau:
		t := e.tableaus[to.Index]
		if lead {
			awarded = t.Add(c)
		} else {
			t.Carry(c)
		}
		depth = t.Len() - 1
	case ZoneFoundation:
		f := e.Foundation(to.Suit())
		awarded = f.Add(c)
		depth = f.Len() - 1
	}
	e.place(c, Slot{Zone: to, Depth: depth})
	return awarded
}

// deal clears the table, shuffles (or stacks) the deck and lays out the
// opening tableau: stack i gets i+1 cards with only the last face up.
func (e *Engine) deal() {
	e.deck.Reset()
	for _, t := range e.tableaus {
		t.Reset()
	}
	for _, f := range e.foundations {
		f.Reset()
	}

	if e.dealOrder == nil || !e.arrange() {
		e.deck.Shuffle()
	}
	for i, c := range e.deck.Stock() {
		e.animator.Flip(c, false)
		e.place(c, Slot{Zone: Stock, Depth: i})
	}

	for i, t := range e.tableaus {
		for j, c := range e.deck.Take(i + 1) {
			t.Add(c)
			e.place(c, Slot{Zone: TableauZone(i), Depth: j})
		}
		top := t.Top()
		top.Flip(true)
		e.animator.Flip(top, true)
	}

	e.gameID = gameid.New()
	e.timer.Start()
	e.logger.Info("Game dealt", "game", e.gameID, "seed", e.seed)
	e.publish(GameStartedEvent{GameID: e.gameID, Seed: e.seed, timestamp: e.now()})
	e.setScore(0)
	e.setMoves(0)
}

func (e *Engine) arrange() bool {
	order := make([]*card.Card, 0, deck.Size)
	seen := make(map[*card.Card]bool, deck.Size)
	for _, want := range e.dealOrder {
		c := e.deck.Find(want.Suit, want.Rank)
		if c == nil || seen[c] {
			e.logger.Warn("Ignoring deal order entry", "card", want)
			continue
		}
		order = append(order, c)
		seen[c] = true
	}
	for _, c := range e.deck.All() {
		if !seen[c] {
			order = append(order, c)
		}
	}

	if err := e.deck.Arrange(order); err != nil {
		e.logger.Error("Cannot stack deck, shuffling instead", "error", err)
		return false
	}
	return true
}

func (e *Engine) place(c *card.Card, s Slot) {
	e.animator.Place(c, e.layout.SlotPosition(s))
}

func (e *Engine) foundationsComplete() bool {
	for _, f := range e.foundations {
		if !f.IsComplete(e.settled) {
			return false
		}
	}
	return true
}

func (e *Engine) setState(s State) {
	if e.state == s {
		return
	}
	from := e.state
	e.state = s
	e.logger.Debug("State changed", "from", from, "to", s)
	e.publish(GameStateChangedEvent{From: from, To: s, timestamp: e.now()})
}

func (e *Engine) setScore(score int) {
	delta := score - e.score
	e.score = score
	e.publish(ScoreChangedEvent{Score: score, Delta: delta, timestamp: e.now()})
}

func (e *Engine) setMoves(moves int) {
	e.moves = moves
	e.publish(MoveCountChangedEvent{Moves: moves, timestamp: e.now()})
}

func (e *Engine) publish(ev GameEvent) {
	e.bus.Publish(ev)
}

func (e *Engine) now() time.Time {
	return e.clock.Now()
}

// Locate returns the zone holding c. The zone is found from the card's state
// and confirmed against the container; it reports false if they disagree.
func (e *Engine) Locate(c *card.Card) (Zone, bool) {
	if c == nil {
		return Zone{}, false
	}
	switch c.State() {
	case card.Undealt:
		if slices.Contains(e.deck.Stock(), c) {
			return Stock, true
		}
	case card.Dealt:
		if e.deck.InWaste(c) {
			return Waste, true
		}
	case card.Played:
		for _, t := range e.tableaus {
			if t.Contains(c) {
				return TableauZone(t.Index), true
			}
		}
	case card.Placed:
		if f := e.Foundation(c.Suit); f != nil && f.Contains(c) {
			return FoundationZone(c.Suit), true
		}
	}
	return Zone{}, false
}

// source is Locate for cards about to move; a disagreement is logged.
func (e *Engine) source(c *card.Card) (Zone, bool) {
	z, ok := e.Locate(c)
	if !ok {
		e.logger.Error("Card state does not match its container",
			"card", c, "state", c.State(), "prev", c.PrevState(), "game", e.gameID)
	}
	return z, ok
}

// SlotOf returns the logical position of c
func (e *Engine) SlotOf(c *card.Card) (Slot, bool) {
	z, ok := e.Locate(c)
	if !ok {
		return Slot{}, false
	}

	var cards []*card.Card
	switch z.Kind {
	case ZoneStock:
		cards = e.deck.Stock()
	case ZoneWaste:
		cards = e.deck.Waste()
	case ZoneTableau:
		cards = e.tableaus[z.Index].Cards()
	case ZoneFoundation:
		cards = e.Foundation(z.Suit()).Cards()
	}
	return Slot{Zone: z, Depth: slices.Index(cards, c)}, true
}

// Verify checks that all 52 cards are accounted for exactly once and that
// every card's state, face and order agree with the container holding it.
func (e *Engine) Verify() error {
	owner := make(map[*card.Card]Zone, deck.Size)
	claim := func(c *card.Card, z Zone, want card.State) error {
		if prev, dup := owner[c]; dup {
			return fmt.Errorf("%s is in both %s and %s", c, prev, z)
		}
		owner[c] = z
		if c.State() != want {
			return fmt.Errorf("%s in %s has state %s, want %s", c, z, c.State(), want)
		}
		return nil
	}

	var errs []error
	for _, c := range e.deck.Stock() {
		errs = append(errs, claim(c, Stock, card.Undealt))
		if c.FaceUp() {
			errs = append(errs, fmt.Errorf("%s is face up in the stock", c))
		}
	}
	for _, c := range e.deck.Waste() {
		errs = append(errs, claim(c, Waste, card.Dealt))
	}
	for _, t := range e.tableaus {
		z := TableauZone(t.Index)
		cards := t.Cards()
		for _, c := range cards {
			errs = append(errs, claim(c, z, card.Played))
		}
		if e.state != Waiting {
			errs = append(errs, verifyTableau(z, cards))
		}
	}
	for _, f := range e.foundations {
		z := FoundationZone(f.Suit)
		for i, c := range f.Cards() {
			errs = append(errs, claim(c, z, card.Placed))
			if c.Suit != f.Suit || c.Rank != card.Rank(i+1) {
				errs = append(errs, fmt.Errorf("%s is out of order in %s", c, z))
			}
		}
	}

	if len(owner) != deck.Size {
		errs = append(errs, fmt.Errorf("found %d cards, want %d", len(owner), deck.Size))
	}
	for _, c := range e.deck.All() {
		if _, ok := owner[c]; !ok {
			errs = append(errs, fmt.Errorf("%s is missing", c))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("game %s: %w", e.gameID, err)
	}
	return nil
}

// verifyTableau checks that face-down cards sit under a face-up run
func verifyTableau(z Zone, cards []*card.Card) error {
	if len(cards) == 0 {
		return nil
	}
	first := slices.IndexFunc(cards, (*card.Card).FaceUp)
	if first == -1 {
		return fmt.Errorf("%s has no face-up card", z)
	}
	if !rules.IsRun(cards[first:]) {
		return fmt.Errorf("%s face-up cards do not form a run", z)
	}
	return nil
}

// Score returns the current score
func (e *Engine) Score() int { return e.score }

// Moves returns the number of moves made, deals included
func (e *Engine) Moves() int { return e.moves }

// State returns the lifecycle state
func (e *Engine) State() State { return e.state }

// GameID identifies the current deal
func (e *Engine) GameID() uuid.UUID { return e.gameID }

// Seed returns the seed the engine's shuffle sequence started from
func (e *Engine) Seed() int64 { return e.seed }

// Elapsed returns the active play time of the current game
func (e *Engine) Elapsed() time.Duration { return e.timer.Elapsed() }

// Deck returns the stock and waste
func (e *Engine) Deck() *deck.Deck { return e.deck }

// Layout returns the layout animation targets are computed with
func (e *Engine) Layout() Layout { return e.layout }

// Tableau returns stack i, or nil when i is out of range
func (e *Engine) Tableau(i int) *pile.Tableau {
	if i < 0 || i >= TableauCount {
		return nil
	}
	return e.tableaus[i]
}

// Tableaus returns the seven stacks in order
func (e *Engine) Tableaus() []*pile.Tableau {
	return e.tableaus[:]
}

// Foundation returns the foundation for a suit
func (e *Engine) Foundation(s card.Suit) *pile.Foundation {
	if s < card.Clubs || s > card.Diamonds {
		return nil
	}
	return e.foundations[s]
}

// Foundations returns the foundations in display order
func (e *Engine) Foundations() []*pile.Foundation {
	out := make([]*pile.Foundation, 0, len(card.Suits))
	for _, s := range card.Suits {
		out = append(out, e.foundations[s])
	}
	return out
}
