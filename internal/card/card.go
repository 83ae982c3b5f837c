// Package card defines the playing card used by the solitaire engine.
//
// Cards are long-lived: the engine creates 52 of them once and reuses the same
// instances across games, so identity (the *Card pointer) is what the piles
// and the deck track. Card also carries its own one-time scoring history.
package card

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Clubs Suit = iota
	Spades
	Hearts
	Diamonds
)

// Suits lists every suit in foundation order.
var Suits = [4]Suit{Hearts, Spades, Diamonds, Clubs}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	default:
		return "?"
	}
}

// Name returns the lowercase suit name, e.g. "hearts".
func (s Suit) Name() string {
	switch s {
	case Clubs:
		return "clubs"
	case Spades:
		return "spades"
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	default:
		return "unknown"
	}
}

// Color returns the colour of the suit
func (s Suit) Color() Color {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

// Color is the colour of a card
type Color int

const (
	Black Color = iota
	Red
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Rank represents a card rank, 1 (Ace) to 13 (King)
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if r >= Two && r <= Ten {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// State tracks which kind of container a card is in.
type State int

const (
	Undealt State = iota // in the stock
	Dealt                // face up on the waste
	Played               // on a tableau stack
	Placed               // on a foundation
)

func (s State) String() string {
	switch s {
	case Undealt:
		return "undealt"
	case Dealt:
		return "dealt"
	case Played:
		return "played"
	case Placed:
		return "placed"
	default:
		return "unknown"
	}
}

// Scoring values. A card is worth PlaceScore+PlayScore over a game.
const (
	PlayScore      = 5
	PlaceScore     = 5
	AcePlaceScore  = 15
	maxJitterAngle = 0.05 // radians
)

// Card represents a single playing card and its in-game state
type Card struct {
	Suit Suit
	Rank Rank

	// Jitter is a cosmetic rotation for renderers; it never affects play.
	Jitter float64

	state     State
	prevState State
	faceUp    bool
	onTop     bool
	placed    bool
	played    bool
}

// New creates a face-down, undealt card
func New(suit Suit, rank Rank) *Card {
	return &Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c *Card) String() string {
	if c == nil {
		return "--"
	}
	return c.Rank.String() + c.Suit.String()
}

// Color returns the colour derived from the suit
func (c *Card) Color() Color {
	return c.Suit.Color()
}

// IsRed returns true if the card is red
func (c *Card) IsRed() bool {
	return c.Suit.Color() == Red
}

// State returns the card's current state
func (c *Card) State() State { return c.state }

// PrevState returns the state the card held before its last transition
func (c *Card) PrevState() State { return c.prevState }

// FaceUp reports whether the card is showing its face
func (c *Card) FaceUp() bool { return c.faceUp }

// OnTop reports whether the card is the interactive head of its container
func (c *Card) OnTop() bool { return c.onTop }

// SetOnTop is maintained by the containers holding the card
func (c *Card) SetOnTop(v bool) { c.onTop = v }

// HasBeenPlaced reports whether the card already earned its foundation score this game
func (c *Card) HasBeenPlaced() bool { return c.placed }

// HasBeenPlayed reports whether the card already earned its tableau score this game
func (c *Card) HasBeenPlayed() bool { return c.played }

// PlaceScore returns the points awarded the first time the card reaches a foundation
func (c *Card) PlaceScore() int {
	if c.Rank == Ace {
		return AcePlaceScore
	}
	return PlaceScore
}

// Score returns the points the card can still contribute this game.
func (c *Card) Score() int {
	if c.placed {
		return 0
	}
	if c.played {
		return c.PlaceScore()
	}
	return c.PlaceScore() + PlayScore
}

// Flip shows or hides the card face. It never affects scoring.
func (c *Card) Flip(faceUp bool) {
	c.faceUp = faceUp
}

// SetState moves the card to a new state and returns the points the
// transition earned. Each card earns its place and play scores at most once
// per game. Only cards leaving the stock unplayed (the opening deal) enter
// Played without scoring.
func (c *Card) SetState(s State) int {
	from := c.state
	c.prevState = from
	c.state = s

	awarded := 0
	switch s {
	case Placed:
		if !c.placed {
			awarded = c.PlaceScore()
			c.placed = true
		}
	case Played:
		if from != Undealt && !c.played && !c.placed {
			c.played = true
			awarded = PlayScore
		}
	case Undealt:
		c.Jitter = 0
	}
	return awarded
}

// Carry moves the card to a new state without scoring. It is used for the
// cards riding on top of a moved run; only the card that was moved scores.
func (c *Card) Carry(s State) {
	c.prevState = c.state
	c.state = s
}

// Reset returns the card to the stock, face down, with its scoring history
// cleared. A nil rng leaves the card without jitter.
func (c *Card) Reset(rng *rand.Rand) {
	c.SetState(Undealt)
	c.prevState = Undealt
	c.placed = false
	c.played = false
	c.onTop = false
	c.faceUp = false
	if rng != nil {
		c.Jitter = (rng.Float64()*2 - 1) * maxJitterAngle
	}
}

// Parse parses short notation such as "Ah", "Td" or "10s" into a fresh card.
func Parse(s string) (*Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return nil, fmt.Errorf("invalid card string: %q", s)
	}

	rankPart, suitPart := s[:len(s)-1], s[len(s)-1]

	var rank Rank
	switch strings.ToUpper(rankPart) {
	case "A":
		rank = Ace
	case "2", "3", "4", "5", "6", "7", "8", "9":
		rank = Rank(rankPart[0] - '0')
	case "T", "10":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		return nil, fmt.Errorf("invalid rank: %q", rankPart)
	}

	var suit Suit
	switch suitPart {
	case 'c', 'C':
		suit = Clubs
	case 's', 'S':
		suit = Spades
	case 'h', 'H':
		suit = Hearts
	case 'd', 'D':
		suit = Diamonds
	default:
		return nil, fmt.Errorf("invalid suit: %c", suitPart)
	}

	return New(suit, rank), nil
}

// MustParse is like Parse but panics on error. Intended for tests.
func MustParse(s string) *Card {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}
