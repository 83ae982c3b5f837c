package game

import (
	"fmt"

	"github.com/lox/klondike/internal/card"
)

// State is the engine lifecycle state
type State int

const (
	Waiting State = iota
	Running
	Paused
	Complete
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// ZoneKind identifies a kind of card container
type ZoneKind int

const (
	ZoneStock ZoneKind = iota
	ZoneWaste
	ZoneTableau
	ZoneFoundation
)

func (k ZoneKind) String() string {
	switch k {
	case ZoneStock:
		return "stock"
	case ZoneWaste:
		return "waste"
	case ZoneTableau:
		return "tableau"
	case ZoneFoundation:
		return "foundation"
	default:
		return "unknown"
	}
}

// Zone names one container on the table. Index is the tableau index for
// ZoneTableau and the card.Suit for ZoneFoundation; it is zero otherwise.
type Zone struct {
	Kind  ZoneKind
	Index int
}

// Stock and Waste are the two deck zones
var (
	Stock = Zone{Kind: ZoneStock}
	Waste = Zone{Kind: ZoneWaste}
)

// TableauZone returns the zone of tableau stack i
func TableauZone(i int) Zone {
	return Zone{Kind: ZoneTableau, Index: i}
}

// FoundationZone returns the foundation zone for a suit
func FoundationZone(s card.Suit) Zone {
	return Zone{Kind: ZoneFoundation, Index: int(s)}
}

// Suit returns the foundation suit; only meaningful for ZoneFoundation.
func (z Zone) Suit() card.Suit {
	return card.Suit(z.Index)
}

func (z Zone) String() string {
	switch z.Kind {
	case ZoneTableau:
		return fmt.Sprintf("tableau[%d]", z.Index+1)
	case ZoneFoundation:
		return "foundation[" + z.Suit().Name() + "]"
	default:
		return z.Kind.String()
	}
}

// Slot is a logical card position: a zone plus the depth within it, where
// depth 0 is the bottom card.
type Slot struct {
	Zone  Zone
	Depth int
}
