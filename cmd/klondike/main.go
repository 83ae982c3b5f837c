package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config string `short:"c" default:"klondike.hcl" help:"Path to HCL config file"`
	Debug  bool   `help:"Enable debug logging"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play Klondike in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Auto-play many games and report statistics"`
	Deal     DealCmd          `cmd:"" help:"Print the opening layout for a seed"`
	Settings SettingsCmd      `cmd:"" help:"Show or change player settings"`
	ID       IDCmd            `cmd:"" name:"id" help:"Show when a game ID was created"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("klondike"),
		kong.Description("Klondike solitaire for the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
