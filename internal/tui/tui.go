// Package tui is the terminal front end: a Bubble Tea model that draws the
// table, feeds mouse gestures to the interaction layer and maps keys to moves.
package tui

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/klondike/internal/card"
	"github.com/lox/klondike/internal/game"
	"github.com/lox/klondike/internal/geom"
	"github.com/lox/klondike/internal/input"
	"github.com/lox/klondike/internal/rules"
	"github.com/lox/klondike/internal/settings"
)

const (
	tickInterval = 33 * time.Millisecond

	// boardTop is the number of screen lines above the board; mouse rows
	// are shifted by it before hit testing.
	boardTop = 1

	logWidth = 32

	// deepest tableau slot: six hidden cards under a full King-to-Ace run
	maxTableauDepth = 18
)

// Config configures the terminal game
type Config struct {
	Seed          int64 // 0 deals a random game
	DragThreshold float64
	Settings      *settings.Model
	Logger        *log.Logger
	Clock         quartz.Clock
	Bell          io.Writer // gets "\a" when a card reaches a foundation, unless muted

	// EngineOptions are applied after the model's own engine options.
	EngineOptions []game.Option
}

type tickMsg time.Time

// Model is the Bubble Tea model for a game of Klondike
type Model struct {
	engine     *game.Engine
	controller *input.Controller
	board      *Board
	settings   *settings.Model
	logger     *log.Logger
	bell       io.Writer

	keys    keyMap
	help    help.Model
	moveLog viewport.Model
	entries []string

	focus  *card.Card // keyboard selection
	status string

	width, height int
	quitting      bool
}

// NewModel creates the model and deals the first game
func NewModel(cfg Config) *Model {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Model{
		board:   NewBoard(),
		logger:  logger.WithPrefix("tui"),
		bell:    cfg.Bell,
		keys:    defaultKeyMap(),
		help:    help.New(),
		moveLog: viewport.New(logWidth, 10),
	}

	m.settings = cfg.Settings
	if m.settings == nil {
		m.settings = settings.NewModel(settings.NewMemoryStore(), logger)
	}

	bus := game.NewEventBus()
	bus.Subscribe(m)

	opts := []game.Option{
		game.WithLogger(logger),
		game.WithEventBus(bus),
		game.WithAnimator(m.board),
		game.WithSettled(m.board.Settled),
	}
	if cfg.Seed != 0 {
		opts = append(opts, game.WithSeed(cfg.Seed))
	}
	if cfg.Clock != nil {
		opts = append(opts, game.WithClock(cfg.Clock))
	}
	m.engine = game.New(append(opts, cfg.EngineOptions...)...)

	threshold := cfg.DragThreshold
	if threshold <= 0 {
		threshold = input.DefaultDragThreshold
	}
	m.controller = input.NewController(m.engine,
		input.WithThreshold(threshold),
		input.WithLogger(logger),
		input.WithAnimator(m.board.Snap()),
	)

	m.engine.Start()
	return m
}

// Engine returns the game being played
func (m *Model) Engine() *game.Engine {
	return m.engine
}

// Board returns the animation sink
func (m *Model) Board() *Board {
	return m.board
}

// Entries returns the move log, oldest first
func (m *Model) Entries() []string {
	return slices.Clone(m.entries)
}

// Status returns the transient status line
func (m *Model) Status() string {
	return m.status
}

// Focus returns the card selected from the keyboard, or nil
func (m *Model) Focus() *card.Card {
	return m.focus
}

// Init starts the animation clock
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.logger.Debug("Updating dimensions", "width", msg.Width, "height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		m.board.Step()
		m.engine.Tick()
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.New):
		m.focus = nil
		m.engine.Reset()
		return m, nil
	case key.Matches(msg, m.keys.Pause):
		if !m.engine.Pause() {
			m.engine.Resume()
		}
		return m, nil
	case key.Matches(msg, m.keys.Mute):
		m.toggleMute()
		return m, nil
	case key.Matches(msg, m.keys.LogUp):
		m.moveLog.HalfPageUp()
		return m, nil
	case key.Matches(msg, m.keys.LogDown):
		m.moveLog.HalfPageDown()
		return m, nil
	}

	if m.engine.State() != game.Running {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Deal):
		m.focus = nil
		m.controller.TapStock()
	case key.Matches(msg, m.keys.Column):
		m.selectColumn(int(msg.String()[0] - '1'))
	case key.Matches(msg, m.keys.Waste):
		m.selectWaste()
	case key.Matches(msg, m.keys.Foundation):
		m.toFoundation()
	case key.Matches(msg, m.keys.Auto):
		m.autoMove()
	case key.Matches(msg, m.keys.Cancel):
		m.focus = nil
	}
	return m, nil
}

// selectColumn moves the selection to column i, or, when a card elsewhere is
// selected, tries to move it there. Pressing the same column again extends
// the selection one card down the face-up run, wrapping back to the top.
func (m *Model) selectColumn(i int) {
	t := m.engine.Tableau(i)
	if t == nil {
		return
	}
	if m.focus != nil && !t.Contains(m.focus) {
		m.moveFocus(game.TableauZone(i))
		return
	}

	top := t.Top()
	if top == nil || !top.FaceUp() {
		m.focus = nil
		return
	}
	if m.focus == nil {
		m.focus = top
		return
	}

	cards := t.Cards()
	idx := slices.Index(cards, m.focus)
	if idx > 0 {
		below := cards[idx-1]
		if below.FaceUp() && rules.IsRun(t.RunFrom(below)) {
			m.focus = below
			return
		}
	}
	m.focus = top
}

func (m *Model) selectWaste() {
	top := m.engine.Deck().Top()
	if top == nil {
		m.status = "The waste is empty"
		return
	}
	m.focus = top
}

func (m *Model) toFoundation() {
	c := m.focus
	if c == nil {
		c = m.engine.Deck().Top()
	}
	if c == nil {
		return
	}
	m.focus = c
	m.moveFocus(game.FoundationZone(c.Suit))
}

func (m *Model) autoMove() {
	c := m.focus
	if c == nil {
		c = m.engine.Deck().Top()
	}
	m.focus = nil
	if c == nil {
		return
	}
	if m.controller.TapCard(c) == input.Ignored {
		m.status = fmt.Sprintf("No move for %s", c)
	}
}

func (m *Model) moveFocus(to game.Zone) {
	c := m.focus
	m.focus = nil
	if !m.engine.Move(c, to) {
		m.status = fmt.Sprintf("Can't move %s to %s", c, to)
	}
}

func (m *Model) toggleMute() {
	muted, err := m.settings.ToggleMuted(context.Background())
	switch {
	case err != nil:
		m.status = "Could not save settings"
	case muted:
		m.status = "Sound off"
	default:
		m.status = "Sound on"
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	p := geom.Pt(float64(msg.X), float64(msg.Y-boardTop))

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.focus = nil
			m.status = ""
			m.controller.PointerDown(p)
		case tea.MouseButtonWheelUp:
			m.moveLog.ScrollUp(1)
		case tea.MouseButtonWheelDown:
			m.moveLog.ScrollDown(1)
		}
	case tea.MouseActionMotion:
		m.controller.PointerMove(p)
	case tea.MouseActionRelease:
		outcome := m.controller.PointerUp()
		m.logger.Debug("Pointer released", "x", p.X, "y", p.Y, "outcome", outcome)
	}
}

// OnEvent feeds engine events into the move log
func (m *Model) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.GameStartedEvent:
		m.entries = m.entries[:0]
	case game.CardMovedEvent:
		if e.To.Kind == game.ZoneFoundation {
			m.ring()
		}
	case game.GameWonEvent:
		m.status = "You won! Press n to deal again"
	}

	if line := game.FormatEvent(event); line != "" {
		m.entries = append(m.entries, line)
		m.moveLog.SetContent(strings.Join(m.entries, "\n"))
		m.moveLog.GotoBottom()
	}
}

func (m *Model) ring() {
	if m.bell == nil || m.settings.Muted() {
		return
	}
	if _, err := io.WriteString(m.bell, "\a"); err != nil {
		m.logger.Warn("Failed to ring bell", "error", err)
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	board := m.paint()
	m.moveLog.Height = board.h - 2

	logPane := PaneStyle.
		Width(logWidth).
		Height(board.h - 2).
		Render(GameLogStyle.Render(m.moveLog.View()))

	table := lipgloss.JoinHorizontal(lipgloss.Top, board.String(), " ", logPane)

	var status string
	switch {
	case m.engine.State() == game.Complete:
		status = SuccessStyle.Render(m.status)
	case m.status != "":
		status = WarningStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		table,
		status,
		m.help.View(m.keys),
	)
}

func (m *Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(" Klondike "))
	fmt.Fprintf(&b, "  Score %d  Moves %d  Time %s", m.engine.Score(), m.engine.Moves(), formatElapsed(m.engine.Elapsed()))

	if m.engine.State() == game.Paused {
		b.WriteString("  ")
		b.WriteString(WarningStyle.Render("[paused]"))
	}
	if m.settings.Muted() {
		b.WriteString("  ")
		b.WriteString(InfoStyle.Render("muted"))
	}
	return b.String()
}

// paint draws the model's table using the animated card positions
func (m *Model) paint() *canvas {
	return paintTable(m.engine, tableView{
		position: m.position,
		focused:  m.focusedRun(),
		dragged:  m.controller.Selected(),
		paused:   m.engine.State() == game.Paused,
	})
}

// Snapshot renders e with every card resting in its slot
func Snapshot(e *game.Engine) string {
	return paintTable(e, tableView{
		position: func(c *card.Card) geom.Point {
			slot, _ := e.SlotOf(c)
			return e.Layout().SlotPosition(slot)
		},
	}).String()
}

type tableView struct {
	position func(*card.Card) geom.Point
	focused  []*card.Card
	dragged  []*card.Card
	paused   bool
}

// paintTable draws the table back to front: empty zones, stock, waste,
// foundations, tableaus and finally any run being dragged.
func paintTable(e *game.Engine, v tableView) *canvas {
	l := e.Layout()
	size := l.CardSize()

	right := l.ZoneBounds(game.TableauZone(game.TableauCount - 1)).Max().X
	deepest := l.SlotPosition(game.Slot{Zone: game.TableauZone(0), Depth: maxTableauDepth}).Y
	cv := newCanvas(round(right)+1, round(deepest+size.H)+1)

	cv.slot(l.ZoneBounds(game.Stock), "↺")
	cv.slot(l.ZoneBounds(game.Waste), "")
	for _, s := range card.Suits {
		cv.slot(l.ZoneBounds(game.FoundationZone(s)), s.String())
	}
	for i := range game.TableauCount {
		cv.slot(l.ZoneBounds(game.TableauZone(i)), "")
	}

	if v.paused {
		cv.text(cv.w/2-3, cv.h/2, "PAUSED", inkFocus)
		return cv
	}

	draw := func(c *card.Card) {
		cv.card(c, v.position(c), size, slices.Contains(v.focused, c))
	}

	stock := e.Deck().Stock()
	for i := len(stock) - 1; i >= 0; i-- {
		draw(stock[i])
	}
	for _, c := range e.Deck().Waste() {
		draw(c)
	}
	for _, f := range e.Foundations() {
		for _, c := range f.Cards() {
			draw(c)
		}
	}
	for _, t := range e.Tableaus() {
		for _, c := range t.Cards() {
			draw(c)
		}
	}
	for _, c := range v.dragged {
		draw(c)
	}
	return cv
}

func (m *Model) focusedRun() []*card.Card {
	if m.focus == nil {
		return nil
	}
	z, ok := m.engine.Locate(m.focus)
	if ok && z.Kind == game.ZoneTableau {
		return m.engine.Tableau(z.Index).RunFrom(m.focus)
	}
	return []*card.Card{m.focus}
}

// position is where c is drawn: its animated position, or its slot when the
// board has not seen it yet.
func (m *Model) position(c *card.Card) geom.Point {
	if p, ok := m.board.Position(c); ok {
		return p
	}
	slot, _ := m.engine.SlotOf(c)
	return m.engine.Layout().SlotPosition(slot)
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
