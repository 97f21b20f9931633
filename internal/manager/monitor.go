package manager

import (
	"log/slog"
	"time"

	"clipreg/internal/clip"
)

// monitor polls the system clipboard for external changes and feeds the
// "default" register. All methods run on the coordinator loop; the ticker
// channel is selected on by Manager.run.
type monitor struct {
	clip     clip.Clipboard
	interval time.Duration

	enabled   bool
	ticker    *time.Ticker
	lastToken uint64
}

func newMonitor(cb clip.Clipboard, interval time.Duration) *monitor {
	return &monitor{clip: cb, interval: interval}
}

// tick returns the poll channel, or nil while monitoring is disabled (a nil
// channel never fires in a select).
func (mo *monitor) tick() <-chan time.Time {
	if mo.ticker == nil {
		return nil
	}
	return mo.ticker.C
}

// enable resets the last-seen token to the clipboard's current state before
// polling starts, so the first tick never reports a stale change.
func (mo *monitor) enable() {
	if mo.enabled {
		return
	}
	mo.enabled = true
	mo.lastToken = mo.clip.ChangeToken()
	mo.ticker = time.NewTicker(mo.interval)
	slog.Info("clipboard monitoring enabled", "interval", mo.interval)
}

func (mo *monitor) disable() {
	if !mo.enabled {
		return
	}
	mo.enabled = false
	mo.ticker.Stop()
	mo.ticker = nil
	slog.Info("clipboard monitoring disabled")
}

// poll is one monitor tick: detect an external clipboard change and write
// the new text into the "default" register, store-first.
func (m *Manager) poll() {
	token := m.clip.ChangeToken()
	if token == m.mon.lastToken {
		return
	}
	m.mon.lastToken = token

	text, ok := m.clip.ReadText()
	if !ok {
		// Non-text or unavailable; skip silently.
		return
	}
	if _, ok := m.cached(DefaultRegister); !ok {
		return
	}
	if err := m.store.UpdateContent(DefaultRegister, text); err != nil {
		slog.Warn("default register update failed", "err", err)
		return
	}
	m.refreshCache()
	slog.Debug("default register updated from clipboard", "bytes", len(text))
}
