package clip

import (
	"errors"
	"hash/fnv"
	"log/slog"

	"golang.design/x/clipboard"
)

// ErrUnavailable is returned by WriteText when no clipboard is reachable.
var ErrUnavailable = errors.New("system clipboard unavailable")

// New returns the system clipboard, or a headless no-op implementation if
// the display environment is unavailable (e.g. a server without X11 or
// Wayland). clipboard.Init is called here rather than in init() so that CLI
// sub-commands never trigger the warning.
func New() Clipboard {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return headless{}
	}
	return system{}
}

type system struct{}

func (system) ReadText() (string, bool) {
	b := clipboard.Read(clipboard.FmtText)
	if b == nil {
		return "", false
	}
	return string(b), true
}

func (system) WriteText(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// ChangeToken hashes the current text payload. The platform exposes no
// portable change counter, so content identity stands in for one; an
// external copy of identical text is indistinguishable from no change,
// which is harmless for the monitor's purposes.
func (system) ChangeToken() uint64 {
	h := fnv.New64a()
	h.Write(clipboard.Read(clipboard.FmtText))
	return h.Sum64()
}

type headless struct{}

func (headless) ReadText() (string, bool) { return "", false }
func (headless) WriteText(string) error   { return ErrUnavailable }
func (headless) ChangeToken() uint64      { return 0 }
