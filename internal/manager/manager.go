// Package manager implements the register coordinator: the single serialized
// execution context through which every mutation of the register cache, the
// hotkey registry, and the system clipboard flows.
//
// Three independent sources touch shared state — caller operations, the
// clipboard monitor's poll tick, and fired hotkeys arriving from the OS
// boundary. All three are funnelled through one loop goroutine and processed
// in arrival order, so no finer-grained locking exists anywhere below here.
package manager

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clipreg/internal/clip"
	"clipreg/internal/hotkeys"
	"clipreg/internal/keybind"
	"clipreg/internal/store"
)

// DefaultRegister is the register fed by the clipboard monitor.
const DefaultRegister = "default"

var (
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("manager closed")

	// ErrEmptyName rejects register names that are empty.
	ErrEmptyName = errors.New("register name must not be empty")
)

// Config carries the coordinator's tunables.
type Config struct {
	// PollInterval is the clipboard monitor's poll period (default 500ms).
	PollInterval time.Duration

	// Monitor enables clipboard monitoring at startup.
	Monitor bool
}

// Status is a point-in-time summary of coordinator state.
type Status struct {
	Registers  int
	Bound      int
	Monitoring bool
}

// Manager coordinates the register store, the hotkey registry, and the
// clipboard monitor.
type Manager struct {
	store    store.Store
	facility hotkeys.Facility
	registry *hotkeys.Registry
	clip     clip.Clipboard
	mon      *monitor

	cache []store.Register

	ops  chan func()
	done chan struct{}
}

// New builds the coordinator, loads the register list, rebuilds every hotkey
// binding from it, and starts the serialized loop.
func New(st store.Store, facility hotkeys.Facility, cb clip.Clipboard, cfg Config) (*Manager, error) {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}

	m := &Manager{
		store:    st,
		facility: facility,
		registry: hotkeys.NewRegistry(facility),
		clip:     cb,
		mon:      newMonitor(cb, cfg.PollInterval),
		ops:      make(chan func(), 16),
		done:     make(chan struct{}),
	}

	regs, err := st.List()
	if err != nil {
		return nil, fmt.Errorf("load registers: %w", err)
	}
	m.cache = regs
	for _, r := range regs {
		if binding, ok := keybind.Parse(r.Shortcut); ok {
			if err := m.registry.Bind(binding, r.Name); err != nil {
				slog.Warn("startup hotkey bind failed", "register", r.Name, "err", err)
			}
		}
	}

	if cfg.Monitor {
		m.mon.enable()
	}

	go m.run()
	return m, nil
}

// Close drains in-flight work, unbinds every hotkey, and stops the loop.
// The store is left open; it belongs to the caller.
func (m *Manager) Close() {
	_ = m.do(func() error {
		m.mon.disable()
		m.registry.UnbindAll()
		return nil
	})
	close(m.done)
}

func (m *Manager) run() {
	for {
		select {
		case <-m.done:
			return
		case fn := <-m.ops:
			fn()
		case h := <-m.facility.Events():
			m.handleFired(h)
		case <-m.mon.tick():
			m.poll()
		}
	}
}

// do runs fn on the coordinator loop and waits for its result.
func (m *Manager) do(fn func() error) error {
	reply := make(chan error, 1)
	select {
	case m.ops <- func() { reply <- fn() }:
	case <-m.done:
		return ErrClosed
	}
	select {
	case err := <-reply:
		return err
	case <-m.done:
		return ErrClosed
	}
}

// AddRegister creates an empty register, optionally bound to a shortcut.
// Returns store.ErrConflict if the name is taken.
func (m *Manager) AddRegister(name, shortcut string) error {
	if name == "" {
		return ErrEmptyName
	}
	return m.do(func() error {
		if err := m.store.Create(name, shortcut); err != nil {
			return err
		}
		m.refreshCache()
		if binding, ok := keybind.Parse(shortcut); ok {
			if err := m.registry.Bind(binding, name); err != nil {
				slog.Warn("hotkey bind failed", "register", name, "err", err)
			}
		}
		return nil
	})
}

// UpdateContent replaces a register's content. No hotkey side effects.
func (m *Manager) UpdateContent(name, content string) error {
	return m.do(func() error {
		if err := m.store.UpdateContent(name, content); err != nil {
			return err
		}
		m.refreshCache()
		return nil
	})
}

// UpdateShortcut rebinds a register to a new shortcut descriptor (empty
// clears the binding). The old binding is released before the store write,
// so a persistence failure leaves the register temporarily unbound.
func (m *Manager) UpdateShortcut(name, shortcut string) error {
	return m.do(func() error {
		current, ok := m.cached(name)
		if !ok {
			return store.ErrNotFound
		}
		if old, ok := keybind.Parse(current.Shortcut); ok {
			m.registry.Unbind(old)
		}
		if err := m.store.UpdateShortcut(name, shortcut); err != nil {
			return err
		}
		m.refreshCache()
		if binding, ok := keybind.Parse(shortcut); ok {
			if err := m.registry.Bind(binding, name); err != nil {
				slog.Warn("hotkey bind failed", "register", name, "err", err)
			}
		}
		return nil
	})
}

// RemoveRegister deletes a register and releases its binding.
func (m *Manager) RemoveRegister(name string) error {
	return m.do(func() error {
		current, _ := m.cached(name)
		if err := m.store.Delete(name); err != nil {
			return err
		}
		if binding, ok := keybind.Parse(current.Shortcut); ok {
			m.registry.Unbind(binding)
		}
		m.refreshCache()
		return nil
	})
}

// CopyToClipboard writes content straight to the system clipboard.
func (m *Manager) CopyToClipboard(content string) error {
	return m.do(func() error {
		return m.clip.WriteText(content)
	})
}

// CopyFromRegister reads a register through the store and copies its content
// to the system clipboard. Absent or empty registers are store.ErrNotFound.
func (m *Manager) CopyFromRegister(name string) error {
	return m.do(func() error {
		content, err := m.store.Read(name)
		if err != nil {
			return err
		}
		if content == "" {
			return store.ErrNotFound
		}
		return m.clip.WriteText(content)
	})
}

// SetMonitoring toggles the clipboard monitor.
func (m *Manager) SetMonitoring(enabled bool) error {
	return m.do(func() error {
		if enabled {
			m.mon.enable()
		} else {
			m.mon.disable()
		}
		return nil
	})
}

// Monitoring reports whether the clipboard monitor is running.
func (m *Manager) Monitoring() bool {
	var enabled bool
	_ = m.do(func() error {
		enabled = m.mon.enabled
		return nil
	})
	return enabled
}

// Registers returns a snapshot of the cached register list.
func (m *Manager) Registers() []store.Register {
	var out []store.Register
	_ = m.do(func() error {
		out = make([]store.Register, len(m.cache))
		copy(out, m.cache)
		return nil
	})
	return out
}

// Status reports the current coordinator state.
func (m *Manager) Status() Status {
	var st Status
	_ = m.do(func() error {
		st = Status{
			Registers:  len(m.cache),
			Bound:      m.registry.Len(),
			Monitoring: m.mon.enabled,
		}
		return nil
	})
	return st
}

// handleFired resolves a fired hotkey and copies the owning register's
// current content to the system clipboard. Runs on the coordinator loop, so
// a press racing a store write observes the post-write state.
func (m *Manager) handleFired(h hotkeys.Handle) {
	name, ok := m.registry.Resolve(h)
	if !ok {
		slog.Debug("fired hotkey resolves to no register", "handle", h)
		return
	}
	content, err := m.store.Read(name)
	if err != nil {
		slog.Warn("register read failed on hotkey", "register", name, "err", err)
		return
	}
	if content == "" {
		slog.Debug("register empty, nothing copied", "register", name)
		return
	}
	if err := m.clip.WriteText(content); err != nil {
		slog.Warn("clipboard write failed on hotkey", "register", name, "err", err)
		return
	}
	slog.Info("hotkey copied register", "register", name, "bytes", len(content))
}

// refreshCache reloads the cached list from the store. Called only after a
// confirmed store write; on failure the previous cache is kept.
func (m *Manager) refreshCache() {
	regs, err := m.store.List()
	if err != nil {
		slog.Error("register list refresh failed", "err", err)
		return
	}
	m.cache = regs
}

func (m *Manager) cached(name string) (store.Register, bool) {
	for _, r := range m.cache {
		if r.Name == name {
			return r, true
		}
	}
	return store.Register{}, false
}
