package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lox/klondike/internal/gameid"
)

type IDCmd struct {
	ID string `arg:"" help:"Game ID as shown by deal or in the log"`

	out io.Writer
}

// Validate is called by kong before Run
func (c *IDCmd) Validate() error {
	if err := gameid.Validate(c.ID); err != nil {
		return fmt.Errorf("invalid game ID: %w", err)
	}
	return nil
}

func (c *IDCmd) Run(g *Globals) error {
	id, err := gameid.Decode(c.ID)
	if err != nil {
		return fmt.Errorf("invalid game ID: %w", err)
	}

	w := c.out
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "UUID:    %s\n", id)
	fmt.Fprintf(w, "Short:   %s\n", gameid.Short(id))
	fmt.Fprintf(w, "Started: %s\n", gameid.Created(id).Format(time.RFC3339))
	return nil
}
