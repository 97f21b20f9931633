// Package clip provides access to the system clipboard.
//
// The Clipboard interface is what the coordinator and the clipboard monitor
// consume; the real implementation sits on golang.design/x/clipboard, with a
// headless no-op fallback when no display environment is available.
package clip

// Clipboard is the system clipboard boundary.
type Clipboard interface {
	// ReadText returns the clipboard's current text payload. ok is false
	// when the clipboard is empty, holds no text, or is unavailable.
	ReadText() (text string, ok bool)

	// WriteText replaces the clipboard contents with text.
	WriteText(text string) error

	// ChangeToken returns an opaque comparable value that changes whenever
	// the clipboard's text content changes. Pollers compare successive
	// tokens instead of the payload itself.
	ChangeToken() uint64
}
