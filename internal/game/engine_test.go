package game

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/klondike/internal/card"
	"github.com/lox/klondike/internal/geom"
	"github.com/lox/klondike/internal/randutil"
)

// find returns the engine's instance of a named card
func find(t *testing.T, e *Engine, name string) *card.Card {
	t.Helper()
	want := card.MustParse(name)
	c := e.Deck().Find(want.Suit, want.Rank)
	require.NotNil(t, c)
	return c
}

type recordingAnimator struct {
	placed  map[*card.Card]geom.Point
	flipped []*card.Card
}

func newRecordingAnimator() *recordingAnimator {
	return &recordingAnimator{placed: make(map[*card.Card]geom.Point)}
}

func (a *recordingAnimator) Place(c *card.Card, to geom.Point) <-chan struct{} {
	a.placed[c] = to
	return NopAnimator{}.Place(c, to)
}

func (a *recordingAnimator) Flip(c *card.Card, faceUp bool) {
	if faceUp {
		a.flipped = append(a.flipped, c)
	}
}

func TestNewEngineIsWaiting(t *testing.T) {
	e := New(WithSeed(1))

	assert.Equal(t, Waiting, e.State())
	assert.Nil(t, e.Deal())
	assert.Equal(t, 52, e.Deck().Len())
	assert.NoError(t, e.Verify())
	assert.False(t, e.Resume())
	assert.False(t, e.Pause())
}

func TestStartDealsOpeningTableau(t *testing.T) {
	e := NewTestEngine()

	require.Equal(t, Running, e.State())
	for i, tab := range e.Tableaus() {
		require.Equal(t, i+1, tab.Len(), "tableau %d", i)
		for j, c := range tab.Cards() {
			top := j == tab.Len()-1
			assert.Equal(t, top, c.FaceUp(), "tableau %d card %d", i, j)
			assert.Equal(t, top, c.OnTop(), "tableau %d card %d", i, j)
			assert.Equal(t, card.Played, c.State())
		}
	}

	assert.Len(t, e.Deck().Stock(), 24)
	assert.Empty(t, e.Deck().Waste())
	assert.Zero(t, e.Score())
	assert.Zero(t, e.Moves())
	assert.Equal(t, uuid.Version(7), e.GameID().Version())
	assert.NoError(t, e.Verify())
	assert.False(t, e.Start(), "second Start is ignored")
}

func TestSeedIsReproducible(t *testing.T) {
	layout := func(e *Engine) []string {
		var out []string
		for _, tab := range e.Tableaus() {
			out = append(out, tab.Top().String())
		}
		for _, c := range e.Deck().Stock() {
			out = append(out, c.String())
		}
		return out
	}

	a := NewTestEngine(WithSeed(7))
	b := NewTestEngine(WithSeed(7))
	c := NewTestEngine(WithSeed(8))

	assert.Equal(t, layout(a), layout(b))
	assert.NotEqual(t, layout(a), layout(c))
	assert.NotEqual(t, a.GameID(), b.GameID())
	assert.Equal(t, int64(7), a.Seed())
}

func TestDealOne(t *testing.T) {
	e := NewTestEngine()
	next := e.Deck().Stock()[0]

	c := e.Deal()

	require.Same(t, next, c)
	assert.Equal(t, card.Dealt, c.State())
	assert.True(t, c.FaceUp())
	assert.True(t, c.OnTop())
	assert.Len(t, e.Deck().Waste(), 1)
	assert.Len(t, e.Deck().Stock(), 23)
	assert.Equal(t, 1, e.Moves())
	assert.Zero(t, e.Score())
	assert.NoError(t, e.Verify())
}

func TestTapAceOfHeartsToFoundation(t *testing.T) {
	e := NewTestEngine(StackedDeck(nil, []string{"Ah"}))

	c := e.Deal()
	require.Equal(t, "A♥", c.String())

	require.True(t, e.AutoMove(c))

	assert.Equal(t, 1, e.Foundation(card.Hearts).Len())
	assert.Same(t, c, e.Foundation(card.Hearts).Top())
	assert.Equal(t, card.Placed, c.State())
	assert.Equal(t, card.Dealt, c.PrevState())
	assert.Equal(t, 15, e.Score())
	assert.Equal(t, 2, e.Moves())
	assert.Nil(t, e.Deck().Top())
	assert.NoError(t, e.Verify())
}

func TestKingToEmptyTableau(t *testing.T) {
	e := NewTestEngine(StackedDeck([]string{"As"}, []string{"Qd", "Kh"}))

	require.True(t, e.AutoMove(e.Tableau(0).Top()))
	require.Zero(t, e.Tableau(0).Len())

	queen := e.Deal()
	require.Equal(t, "Q♦", queen.String())
	assert.False(t, e.CanMove(queen, TableauZone(0)))
	assert.False(t, e.Move(queen, TableauZone(0)))
	assert.Equal(t, card.Dealt, queen.State())

	king := e.Deal()
	require.Equal(t, "K♥", king.String())
	require.True(t, e.Move(king, TableauZone(0)))

	assert.Same(t, king, e.Tableau(0).Top())
	assert.Equal(t, card.Played, king.State())
	assert.Equal(t, 15+5, e.Score())
	assert.Same(t, queen, e.Deck().Top())
	assert.True(t, queen.OnTop())
	assert.NoError(t, e.Verify())
}

func TestScoringIsAwardedOnce(t *testing.T) {
	t.Run("placed card moved back to tableau and up again", func(t *testing.T) {
		e := NewTestEngine(StackedDeck([]string{"3s"}, []string{"Ah", "2h"}))

		require.True(t, e.AutoMove(e.Deal()))
		two := e.Deal()
		require.True(t, e.AutoMove(two), "foundation is preferred")
		require.Equal(t, 20, e.Score())

		require.True(t, e.Move(two, TableauZone(0)))
		assert.Equal(t, 20, e.Score(), "moving back earns nothing")
		assert.Equal(t, card.Played, two.State())
		assert.Equal(t, card.Placed, two.PrevState())

		require.True(t, e.Move(two, FoundationZone(card.Hearts)))
		assert.Equal(t, 20, e.Score(), "placing again earns nothing")
		assert.Equal(t, 6, e.Moves())
		assert.NoError(t, e.Verify())
	})

	t.Run("waste card played then placed", func(t *testing.T) {
		e := NewTestEngine(StackedDeck([]string{"3s"}, []string{"2h", "Ah"}))

		two := e.Deal()
		require.True(t, e.AutoMove(two))
		require.Same(t, two, e.Tableau(0).Top())
		assert.Equal(t, 5, e.Score())

		require.True(t, e.AutoMove(e.Deal()))
		assert.Equal(t, 20, e.Score())

		require.True(t, e.AutoMove(two))
		assert.Equal(t, 25, e.Score())
		assert.Zero(t, two.Score())
		assert.NoError(t, e.Verify())
	})
}

func TestTableauMoveScoresOpeningCard(t *testing.T) {
	e := NewTestEngine(StackedDeck([]string{"Kc", "2c", "Qh", "3c", "4c", "Ks"}, nil))
	queen := e.Tableau(1).Top()
	require.Equal(t, "Q♥", queen.String())
	require.False(t, queen.HasBeenPlayed())

	require.True(t, e.Move(queen, TableauZone(0)))
	assert.Equal(t, card.PlayScore, e.Score())
	assert.True(t, queen.HasBeenPlayed())

	require.True(t, e.Move(queen, TableauZone(2)))
	assert.Equal(t, card.PlayScore, e.Score(), "a second move earns nothing")
	assert.Equal(t, 2, e.Moves())
	assert.NoError(t, e.Verify())
}

func TestAutoMoveTriesTableausInOrder(t *testing.T) {
	e := NewTestEngine(StackedDeck([]string{"3s", "Kd", "3c"}, []string{"2h"}))

	two := e.Deal()
	require.True(t, e.AutoMove(two))

	assert.Same(t, two, e.Tableau(0).Top())
	assert.Equal(t, 2, e.Tableau(1).Len())
}

func TestMoveRunRevealsCard(t *testing.T) {
	anim := newRecordingAnimator()
	e := NewTestEngine(
		StackedDeck([]string{"3s", "Kc", "4h", "Qd", "Jd", "5c"}, []string{"2h"}),
		WithAnimator(anim),
	)
	three := e.Tableau(0).Top()
	four := e.Tableau(1).Top()
	kc := e.Tableau(1).Cards()[0]
	require.False(t, kc.FaceUp())

	two := e.Deal()
	require.True(t, e.Move(two, TableauZone(0)))
	require.True(t, e.Move(three, TableauZone(1)))
	assert.Zero(t, e.Tableau(0).Len())
	require.Equal(t, []*card.Card{kc, four, three, two}, e.Tableau(1).Cards())

	require.True(t, e.Move(four, TableauZone(2)))

	assert.Equal(t, []*card.Card{kc}, e.Tableau(1).Cards())
	assert.True(t, kc.FaceUp())
	assert.True(t, kc.OnTop())
	assert.Contains(t, anim.flipped, kc)
	assert.Equal(t, []*card.Card{four, three, two}, e.Tableau(2).Cards()[3:])
	assert.Equal(t, 3*card.PlayScore, e.Score(), "the two, then the three and four as run leads")
	assert.Equal(t, 4, e.Moves())

	layout := e.Layout()
	assert.Equal(t, layout.SlotPosition(Slot{Zone: TableauZone(2), Depth: 5}), anim.placed[two])
	slot, ok := e.SlotOf(two)
	require.True(t, ok)
	assert.Equal(t, Slot{Zone: TableauZone(2), Depth: 5}, slot)
	assert.NoError(t, e.Verify())
}

func TestMoveRejections(t *testing.T) {
	e := NewTestEngine(StackedDeck([]string{"3s"}, []string{"9c", "2h"}))
	first := e.Deal()
	two := e.Deal()
	faceDown := e.Tableau(6).Cards()[0]
	undealt := e.Deck().Stock()[0]

	tests := []struct {
		name string
		card *card.Card
		to   Zone
	}{
		{"nil card", nil, TableauZone(0)},
		{"face down tableau card", faceDown, TableauZone(0)},
		{"undealt stock card", undealt, TableauZone(0)},
		{"buried waste card", first, FoundationZone(card.Clubs)},
		{"to the stock", two, Stock},
		{"to the waste", two, Waste},
		{"tableau out of range", two, TableauZone(TableauCount)},
		{"foundation of another suit", two, FoundationZone(card.Spades)},
		{"tableau top onto same tableau", e.Tableau(0).Top(), TableauZone(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moves, score := e.Moves(), e.Score()
			assert.False(t, e.CanMove(tt.card, tt.to))
			assert.False(t, e.Move(tt.card, tt.to))
			assert.Equal(t, moves, e.Moves())
			assert.Equal(t, score, e.Score())
			assert.NoError(t, e.Verify())
		})
	}

	t.Run("refused while paused", func(t *testing.T) {
		require.True(t, e.CanMove(two, TableauZone(0)))
		require.True(t, e.Pause())
		assert.False(t, e.Move(two, TableauZone(0)))
		assert.False(t, e.AutoMove(two))
		assert.Nil(t, e.Deal())
		require.True(t, e.Resume())
		assert.True(t, e.Move(two, TableauZone(0)))
	})
}

func TestMoveRefusesInconsistentCard(t *testing.T) {
	e := NewTestEngine(StackedDeck(nil, []string{"Ah"}))
	c := e.Deal()

	// A card whose state disagrees with its container must not move.
	c.SetState(card.Played)
	assert.False(t, e.AutoMove(c))
	assert.Error(t, e.Verify())

	c.SetState(card.Dealt)
	assert.True(t, e.AutoMove(c))
	assert.NoError(t, e.Verify())
}

func TestDealThroughStockRecycles(t *testing.T) {
	bus := NewEventBus()
	rec := &EventRecorder{}
	bus.Subscribe(rec)
	e := NewTestEngine(WithEventBus(bus))

	first := e.Deck().Stock()[0]
	for range 24 {
		require.NotNil(t, e.Deal())
	}
	assert.Empty(t, e.Deck().Stock())
	assert.Len(t, e.Deck().Waste(), 24)
	assert.Empty(t, rec.OfType(EventTypeStockRecycled))

	c := e.Deal()

	assert.Same(t, first, c)
	assert.Len(t, e.Deck().Waste(), 1)
	assert.Len(t, e.Deck().Stock(), 23)
	assert.Equal(t, 25, e.Moves())
	require.Len(t, rec.OfType(EventTypeStockRecycled), 1)
	dealt := rec.OfType(EventTypeCardDealt)
	assert.True(t, dealt[len(dealt)-1].(CardDealtEvent).Recycled)
	assert.NoError(t, e.Verify())
}

func TestResetStartsFreshGame(t *testing.T) {
	e := NewTestEngine(StackedDeck(nil, []string{"Ah"}))
	require.True(t, e.AutoMove(e.Deal()))
	id := e.GameID()

	e.Reset()

	assert.Equal(t, Running, e.State())
	assert.Zero(t, e.Score())
	assert.Zero(t, e.Moves())
	assert.Zero(t, e.Foundation(card.Hearts).Len())
	assert.NotEqual(t, id, e.GameID())
	assert.NoError(t, e.Verify())

	ace := e.Deal()
	require.Equal(t, "A♥", ace.String())
	assert.False(t, ace.HasBeenPlaced())
	require.True(t, e.AutoMove(ace))
	assert.Equal(t, 15, e.Score(), "scoring history is cleared between games")
}

// playToFoundations moves every playable top card up, reporting progress.
func playToFoundations(e *Engine) bool {
	moved := false
	if c := e.Deck().Top(); c != nil && e.Move(c, FoundationZone(c.Suit)) {
		moved = true
	}
	for _, tab := range e.Tableaus() {
		if c := tab.Top(); c != nil && e.Move(c, FoundationZone(c.Suit)) {
			moved = true
		}
	}
	return moved
}

func placedCount(e *Engine) int {
	n := 0
	for _, f := range e.Foundations() {
		n += f.Len()
	}
	return n
}

func TestWinWaitsForSettledCards(t *testing.T) {
	settled := false
	bus := NewEventBus()
	rec := &EventRecorder{}
	bus.Subscribe(rec)
	e := NewTestEngine(
		WithDealOrder(SolvableDealOrder()...),
		WithSettled(func(*card.Card) bool { return settled }),
		WithEventBus(bus),
	)

	for i := 0; i < 2000 && placedCount(e) < 52; i++ {
		if !playToFoundations(e) {
			e.Deal()
		}
		require.Equal(t, Running, e.Tick())
	}
	require.Equal(t, 52, placedCount(e))
	require.NoError(t, e.Verify())
	assert.Equal(t, 4*card.AcePlaceScore+48*card.PlaceScore, e.Score())

	assert.Equal(t, Running, e.Tick(), "cards still animating")
	assert.Empty(t, rec.OfType(EventTypeGameWon))

	settled = true
	assert.Equal(t, Complete, e.Tick())
	assert.Equal(t, Complete, e.Tick())

	won := rec.OfType(EventTypeGameWon)
	require.Len(t, won, 1)
	assert.Equal(t, e.Score(), won[0].(GameWonEvent).Score)
	assert.Equal(t, e.Moves(), won[0].(GameWonEvent).Moves)

	assert.Nil(t, e.Deal(), "complete game refuses deals")
	assert.False(t, e.Pause())
}

func TestLocate(t *testing.T) {
	e := NewTestEngine(StackedDeck(nil, []string{"Ah", "2c"}))
	ace := e.Deal()
	require.True(t, e.AutoMove(ace))
	e.Deal()

	tests := []struct {
		name string
		card *card.Card
		want Zone
	}{
		{"waste", find(t, e, "2c"), Waste},
		{"stock", e.Deck().Stock()[0], Stock},
		{"foundation", ace, FoundationZone(card.Hearts)},
		{"tableau", e.Tableau(3).Top(), TableauZone(3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z, ok := e.Locate(tt.card)
			require.True(t, ok)
			assert.Equal(t, tt.want, z)
		})
	}

	_, ok := e.Locate(card.MustParse("Ah"))
	assert.False(t, ok, "foreign card instance")
}

func TestRandomPlayConservesCards(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1234} {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			rng := randutil.New(seed)
			e := NewTestEngine(WithSeed(seed))
			all := e.Deck().All()
			zones := []Zone{Waste}
			for i := range e.Tableaus() {
				zones = append(zones, TableauZone(i))
			}
			for _, s := range card.Suits {
				zones = append(zones, FoundationZone(s))
			}

			for step := range 3000 {
				score, moves := e.Score(), e.Moves()
				var op string
				switch n := rng.IntN(100); {
				case n < 30:
					op = "deal"
					e.Deal()
				case n < 60:
					op = "automove"
					e.AutoMove(all[rng.IntN(len(all))])
				case n < 92:
					op = "move"
					e.Move(all[rng.IntN(len(all))], zones[rng.IntN(len(zones))])
				case n < 96:
					op = "pause"
					if !e.Pause() {
						e.Resume()
					}
				case n < 98:
					op = "tick"
					e.Tick()
				default:
					op = "reset"
					e.Reset()
					score, moves = 0, 0
				}

				require.NoError(t, e.Verify(), "step %d: %s", step, op)
				require.GreaterOrEqual(t, e.Score(), score, "step %d: %s", step, op)
				require.GreaterOrEqual(t, e.Moves(), moves, "step %d: %s", step, op)
			}
		})
	}
}
