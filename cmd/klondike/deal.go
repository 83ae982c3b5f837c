package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/klondike/internal/game"
	"github.com/lox/klondike/internal/gameid"
	"github.com/lox/klondike/internal/tui"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type DealCmd struct {
	Seed    int64 `default:"0" help:"Deal seed (0 for random)"`
	NoColor bool  `help:"Disable colours"`
}

func (c *DealCmd) Run(g *Globals) error {
	if c.NoColor {
		tui.DisableColor()
	}

	var opts []game.Option
	if c.Seed != 0 {
		opts = append(opts, game.WithSeed(c.Seed))
	}
	e := game.New(opts...)
	e.Start()

	if err := e.Verify(); err != nil {
		return fmt.Errorf("bad deal: %w", err)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf(" ♠ ♥ Klondike deal %d ♦ ♣ ", e.Seed())))
	fmt.Println(tui.Snapshot(e))
	fmt.Printf("Game %s\n", gameid.Encode(e.GameID()))
	fmt.Printf("Replay with: klondike play --seed %d\n", e.Seed())
	return nil
}
