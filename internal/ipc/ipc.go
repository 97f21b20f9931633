// Package ipc provides helpers for the local Unix-socket channel used by
// CLI sub-commands (add/set/bind/rm/ls/copy/watch/status) to talk to a
// running clipreg daemon.
//
// The channel carries newline-delimited JSON messages (internal/message)
// framed by internal/wire. The daemon listens on the socket; CLI commands
// dial it and fail with a clear error when no daemon is running.
package ipc

import (
	"net"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// SocketPath returns the platform-appropriate path for the IPC socket.
//
//   - Linux / macOS: $TMPDIR/clipreg.sock  (override with $CLIPREG_SOCKET)
//   - Windows:       \\.\pipe\clipreg      (named pipe — not yet implemented)
func SocketPath() string {
	if s := os.Getenv("CLIPREG_SOCKET"); s != "" {
		return s
	}
	if runtime.GOOS == "windows" {
		return `\\.\pipe\clipreg`
	}
	return filepath.Join(os.TempDir(), "clipreg.sock")
}

// IsRunning reports whether a clipreg daemon appears to be listening on the
// IPC socket. It does a cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := net.Dial("unix", SocketPath())
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Listen creates and returns a net.Listener on the IPC socket path, removing
// any stale socket file first.
func Listen() (net.Listener, error) {
	path := SocketPath()
	// Remove stale socket from a previous (crashed) run.
	_ = os.Remove(path)
	return net.Listen("unix", path)
}

// Dial connects to the daemon's IPC socket.
func Dial() (net.Conn, error) {
	return net.DialTimeout("unix", SocketPath(), 3*time.Second)
}
