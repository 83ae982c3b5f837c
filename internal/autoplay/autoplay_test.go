package autoplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/klondike/internal/card"
	"github.com/lox/klondike/internal/game"
)

func TestPlayWinsSolvableDeal(t *testing.T) {
	e := game.NewTestEngine(game.WithDealOrder(game.SolvableDealOrder()...))

	res := New(e).Play()

	require.True(t, res.Won)
	assert.False(t, res.Stuck)
	assert.Equal(t, game.Complete, e.State())
	assert.GreaterOrEqual(t, e.Score(), 300, "every card placed, plus any tableau plays")
	assert.NoError(t, e.Verify())
}

func TestPlayAlwaysTerminates(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		e := game.NewTestEngine(game.WithSeed(seed))

		res := New(e).Play()

		assert.LessOrEqual(t, res.Steps, DefaultMaxSteps)
		assert.NoError(t, e.Verify(), "seed %d", seed)
		if res.Won {
			assert.Equal(t, game.Complete, e.State())
		}
	}
}

func TestPlayRespectsMaxSteps(t *testing.T) {
	e := game.NewTestEngine(game.WithDealOrder(game.SolvableDealOrder()...))

	res := New(e, WithMaxSteps(3)).Play()

	assert.False(t, res.Won)
	assert.False(t, res.Stuck)
	assert.Equal(t, 3, res.Steps)
	assert.Equal(t, game.Running, e.State())
}

func TestStepPrefersFoundation(t *testing.T) {
	e := game.NewTestEngine(game.StackedDeck([]string{"3s"}, []string{"Ah", "2h"}))
	p := New(e)
	hearts := e.Foundation(card.Hearts)

	e.Deal()
	require.True(t, p.Step())
	require.Equal(t, 1, hearts.Len())

	two := e.Deal()
	require.True(t, p.Step())
	assert.Same(t, two, hearts.Top(), "foundation beats the black three")
	assert.Equal(t, 1, e.Tableau(0).Len())
}
