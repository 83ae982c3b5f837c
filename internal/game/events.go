package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lox/klondike/internal/card"
	"github.com/lox/klondike/internal/gameid"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeGameStarted      EventType = "game_started"
	EventTypeGameStateChanged EventType = "game_state_changed"
	EventTypeScoreChanged     EventType = "score_changed"
	EventTypeMoveCountChanged EventType = "move_count_changed"
	EventTypeCardMoved        EventType = "card_moved"
	EventTypeCardDealt        EventType = "card_dealt"
	EventTypeStockRecycled    EventType = "stock_recycled"
	EventTypeGameWon          EventType = "game_won"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartedEvent is published when a fresh deal is on the table
type GameStartedEvent struct {
	GameID    uuid.UUID
	Seed      int64
	timestamp time.Time
}

func (e GameStartedEvent) EventType() EventType { return EventTypeGameStarted }
func (e GameStartedEvent) Timestamp() time.Time { return e.timestamp }

// GameStateChangedEvent is published on every lifecycle transition
type GameStateChangedEvent struct {
	From      State
	To        State
	timestamp time.Time
}

func (e GameStateChangedEvent) EventType() EventType { return EventTypeGameStateChanged }
func (e GameStateChangedEvent) Timestamp() time.Time { return e.timestamp }

// ScoreChangedEvent is published whenever the score changes
type ScoreChangedEvent struct {
	Score     int
	Delta     int
	timestamp time.Time
}

func (e ScoreChangedEvent) EventType() EventType { return EventTypeScoreChanged }
func (e ScoreChangedEvent) Timestamp() time.Time { return e.timestamp }

// MoveCountChangedEvent is published whenever the move count changes
type MoveCountChangedEvent struct {
	Moves     int
	timestamp time.Time
}

func (e MoveCountChangedEvent) EventType() EventType { return EventTypeMoveCountChanged }
func (e MoveCountChangedEvent) Timestamp() time.Time { return e.timestamp }

// CardMovedEvent is published after an accepted move. Cards is the moved run,
// bottom to top.
type CardMovedEvent struct {
	Cards     []*card.Card
	From      Zone
	To        Zone
	Awarded   int
	timestamp time.Time
}

func (e CardMovedEvent) EventType() EventType { return EventTypeCardMoved }
func (e CardMovedEvent) Timestamp() time.Time { return e.timestamp }

// CardDealtEvent is published when the stock is tapped
type CardDealtEvent struct {
	Card      *card.Card
	Recycled  bool
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// StockRecycledEvent is published when the waste is turned back into the stock
type StockRecycledEvent struct {
	Cards     int
	timestamp time.Time
}

func (e StockRecycledEvent) EventType() EventType { return EventTypeStockRecycled }
func (e StockRecycledEvent) Timestamp() time.Time { return e.timestamp }

// GameWonEvent is published once when the engine reaches Complete
type GameWonEvent struct {
	GameID    uuid.UUID
	Score     int
	Moves     int
	Elapsed   time.Duration
	timestamp time.Time
}

func (e GameWonEvent) EventType() EventType { return EventTypeGameWon }
func (e GameWonEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic synchronous in-memory event bus
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers in subscription order
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// EventRecorder is a subscriber that keeps every event it sees
type EventRecorder struct {
	Events []GameEvent
}

// OnEvent records the event
func (r *EventRecorder) OnEvent(event GameEvent) {
	r.Events = append(r.Events, event)
}

// OfType returns the recorded events of one type, oldest first
func (r *EventRecorder) OfType(t EventType) []GameEvent {
	var out []GameEvent
	for _, ev := range r.Events {
		if ev.EventType() == t {
			out = append(out, ev)
		}
	}
	return out
}

// Reset forgets all recorded events
func (r *EventRecorder) Reset() {
	r.Events = nil
}

// FormatEvent renders an event as a one-line, human readable log entry. It
// returns "" for events that are not worth showing in a move log.
func FormatEvent(event GameEvent) string {
	switch e := event.(type) {
	case GameStartedEvent:
		return fmt.Sprintf("New game %s", gameid.Short(e.GameID))
	case CardMovedEvent:
		names := make([]string, len(e.Cards))
		for i, c := range e.Cards {
			names[i] = c.String()
		}
		line := fmt.Sprintf("%s: %s → %s", strings.Join(names, " "), e.From, e.To)
		if e.Awarded > 0 {
			line += fmt.Sprintf(" (+%d)", e.Awarded)
		}
		return line
	case CardDealtEvent:
		if e.Recycled {
			return fmt.Sprintf("Dealt %s after recycling", e.Card)
		}
		return fmt.Sprintf("Dealt %s", e.Card)
	case StockRecycledEvent:
		return fmt.Sprintf("Recycled %d cards", e.Cards)
	case GameStateChangedEvent:
		if e.To == Paused || (e.From == Paused && e.To == Running) {
			return fmt.Sprintf("Game %s", e.To)
		}
		return ""
	case GameWonEvent:
		return fmt.Sprintf("Won with %d points in %d moves (%s)", e.Score, e.Moves, e.Elapsed.Round(time.Second))
	default:
		return ""
	}
}
