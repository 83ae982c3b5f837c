package settings

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// Model holds the live settings and writes them back only when a value
// actually changes.
type Model struct {
	store    Store
	data     Settings
	logger   *log.Logger
	onChange []func(Settings)
}

// NewModel creates a model holding the defaults. Call Load to read the store.
func NewModel(store Store, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Model{
		store:  store,
		data:   Defaults(),
		logger: logger.WithPrefix("settings"),
	}
}

// Load replaces the current values with the stored ones and notifies
// listeners, so an audio sink picks up the stored mute state.
func (m *Model) Load(ctx context.Context) error {
	s, err := m.store.Load(ctx)
	if err != nil {
		return err
	}
	m.data = s
	m.logger.Debug("Settings loaded", "muted", s.Muted)
	m.notify()
	return nil
}

// OnChange registers fn to be called with the new settings after a load or a
// change.
func (m *Model) OnChange(fn func(Settings)) {
	m.onChange = append(m.onChange, fn)
}

// Settings returns a copy of the current values
func (m *Model) Settings() Settings {
	return m.data
}

// Muted reports whether sound is off
func (m *Model) Muted() bool {
	return m.data.Muted
}

// SetMuted changes the mute flag, saving only if it differs. The live value
// and listeners are updated only once the store has accepted it.
func (m *Model) SetMuted(ctx context.Context, muted bool) error {
	if muted == m.data.Muted {
		return nil
	}
	next := m.data
	next.Muted = muted
	if err := m.store.Save(ctx, next); err != nil {
		m.logger.Warn("Failed to save settings", "error", err)
		return err
	}
	m.data = next
	m.logger.Debug("Settings saved", "muted", muted)
	m.notify()
	return nil
}

// ToggleMuted flips the mute flag and returns the new value
func (m *Model) ToggleMuted(ctx context.Context) (bool, error) {
	err := m.SetMuted(ctx, !m.data.Muted)
	return m.data.Muted, err
}

func (m *Model) notify() {
	for _, fn := range m.onChange {
		fn(m.data)
	}
}
