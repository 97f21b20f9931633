package hotkeys

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.design/x/hotkey"

	"clipreg/internal/keybind"
)

// System is the Facility backed by golang.design/x/hotkey
// (Win32 RegisterHotKey / X11 XGrabKey / Cocoa on the respective platforms).
type System struct {
	mu        sync.Mutex
	next      Handle
	installed map[Handle]*installation
	events    chan Handle
}

type installation struct {
	hk   *hotkey.Hotkey
	stop chan struct{}
}

var _ Facility = (*System)(nil)

// NewSystem returns an empty system facility.
func NewSystem() *System {
	return &System{
		installed: make(map[Handle]*installation),
		events:    make(chan Handle, 16),
	}
}

// Install registers binding with the OS and starts a pump goroutine that
// forwards key-down events onto the shared event channel.
func (s *System) Install(binding keybind.Binding) (Handle, error) {
	mods, key, err := translate(binding)
	if err != nil {
		return 0, err
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return 0, fmt.Errorf("register %s: %w", binding, err)
	}

	s.mu.Lock()
	s.next++
	h := s.next
	inst := &installation{hk: hk, stop: make(chan struct{})}
	s.installed[h] = inst
	s.mu.Unlock()

	go s.pump(h, inst)

	slog.Debug("hotkey installed", "binding", binding.String(), "handle", h)
	return h, nil
}

// Uninstall removes the OS registration for handle and stops its pump.
func (s *System) Uninstall(handle Handle) {
	s.mu.Lock()
	inst, ok := s.installed[handle]
	if ok {
		delete(s.installed, handle)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	close(inst.stop)
	if err := inst.hk.Unregister(); err != nil {
		slog.Warn("hotkey unregister failed", "handle", handle, "err", err)
	}
	slog.Debug("hotkey uninstalled", "handle", handle)
}

// Events returns the fired-hotkey channel.
func (s *System) Events() <-chan Handle { return s.events }

func (s *System) pump(h Handle, inst *installation) {
	for {
		select {
		case <-inst.stop:
			return
		case <-inst.hk.Keydown():
			select {
			case s.events <- h:
			default:
				slog.Warn("hotkey event channel full, dropping", "handle", h)
			}
		}
	}
}

// translate converts a canonical binding into the platform's modifier and
// key values. Modifier translation is platform-specific (mods_*.go).
func translate(b keybind.Binding) ([]hotkey.Modifier, hotkey.Key, error) {
	var mods []hotkey.Modifier
	for canonical, platform := range platformMods {
		if b.Mods&canonical != 0 {
			mods = append(mods, platform)
		}
	}
	key, ok := platformKey(b.Key)
	if !ok {
		return nil, 0, fmt.Errorf("no platform key code for %s", b)
	}
	return mods, key, nil
}

// platformKey maps a canonical key code to the x/hotkey key value. The
// exported Key constants share names across platforms, so this table is
// platform-independent even though the underlying values are not.
func platformKey(k keybind.Key) (hotkey.Key, bool) {
	if k >= keybind.KeyF1 && k <= keybind.KeyF12 {
		return fnKeys[int(k-keybind.KeyF1)], true
	}
	key, ok := charKeys[k]
	return key, ok
}

var fnKeys = [12]hotkey.Key{
	hotkey.KeyF1, hotkey.KeyF2, hotkey.KeyF3, hotkey.KeyF4,
	hotkey.KeyF5, hotkey.KeyF6, hotkey.KeyF7, hotkey.KeyF8,
	hotkey.KeyF9, hotkey.KeyF10, hotkey.KeyF11, hotkey.KeyF12,
}

var charKeys = map[keybind.Key]hotkey.Key{
	'a': hotkey.KeyA, 'b': hotkey.KeyB, 'c': hotkey.KeyC, 'd': hotkey.KeyD,
	'e': hotkey.KeyE, 'f': hotkey.KeyF, 'g': hotkey.KeyG, 'h': hotkey.KeyH,
	'i': hotkey.KeyI, 'j': hotkey.KeyJ, 'k': hotkey.KeyK, 'l': hotkey.KeyL,
	'm': hotkey.KeyM, 'n': hotkey.KeyN, 'o': hotkey.KeyO, 'p': hotkey.KeyP,
	'q': hotkey.KeyQ, 'r': hotkey.KeyR, 's': hotkey.KeyS, 't': hotkey.KeyT,
	'u': hotkey.KeyU, 'v': hotkey.KeyV, 'w': hotkey.KeyW, 'x': hotkey.KeyX,
	'y': hotkey.KeyY, 'z': hotkey.KeyZ,
	'0': hotkey.Key0, '1': hotkey.Key1, '2': hotkey.Key2, '3': hotkey.Key3,
	'4': hotkey.Key4, '5': hotkey.Key5, '6': hotkey.Key6, '7': hotkey.Key7,
	'8': hotkey.Key8, '9': hotkey.Key9,
}
