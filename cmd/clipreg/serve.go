package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"clipreg/internal/clip"
	"clipreg/internal/hotkeys"
	"clipreg/internal/ipc"
	"clipreg/internal/manager"
	"clipreg/internal/message"
	"clipreg/internal/store"
	"clipreg/internal/wire"
)

func newServeCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the clipreg daemon (hotkeys + clipboard monitoring)",
		Long: `Starts the clipreg daemon: opens the register database, installs the
global hotkeys for every bound register, starts the clipboard monitor, and
listens on the local IPC socket for the other sub-commands.

Config file search order:
  /etc/clipreg/clipreg.toml
  $HOME/.config/clipreg/clipreg.toml
  path supplied via --config

Precedence (lowest → highest): defaults → config file → CLIPREG_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runServe(v) },
	}

	f := cmd.Flags()
	f.String("db", defaultDBPath(), "path to the register database")
	f.Duration("poll-interval", 500*time.Millisecond, "clipboard monitor poll interval")
	f.Bool("no-monitor", false, "start with clipboard monitoring disabled")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runServe(v *viper.Viper) error {
	setupLogging(v)

	dbPath := v.GetString("db")
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open register database: %w", err)
	}
	defer st.Close()

	mgr, err := manager.New(st, hotkeys.NewSystem(), clip.New(), manager.Config{
		PollInterval: v.GetDuration("poll-interval"),
		Monitor:      !v.GetBool("no-monitor"),
	})
	if err != nil {
		return err
	}
	defer mgr.Close()

	ln, err := ipc.Listen()
	if err != nil {
		return fmt.Errorf("IPC socket: %w", err)
	}
	defer ln.Close()

	status := mgr.Status()
	slog.Info("clipreg daemon started",
		"version", Version,
		"db", dbPath,
		"registers", status.Registers,
		"hotkeys", status.Bound,
		"monitoring", status.Monitoring,
		"socket", ipc.SocketPath(),
	)

	for {
		conn, err := ln.Accept()
		if err != nil {
			slog.Error("accept failed", "err", err)
			return err
		}
		go handleConn(conn, mgr)
	}
}

// handleConn serves one CLI request: read a message, dispatch it to the
// coordinator, write the reply.
func handleConn(conn net.Conn, mgr *manager.Manager) {
	defer conn.Close()
	wc := wire.New(conn)

	msg, err := wc.ReadMsg()
	if err != nil {
		return
	}

	resp := dispatch(msg, mgr)
	if err := wc.WriteMsg(resp); err != nil {
		slog.Warn("ipc reply failed", "err", err)
	}
}

func dispatch(msg *message.Message, mgr *manager.Manager) *message.Message {
	switch msg.Type {
	case message.TypeAdd:
		return result(mgr.AddRegister(msg.Name, msg.Shortcut))

	case message.TypeSetContent:
		content, err := msg.DecodePayload()
		if err != nil {
			return errorMsg(message.ErrBadRequest, err)
		}
		return result(mgr.UpdateContent(msg.Name, content))

	case message.TypeSetShortcut:
		return result(mgr.UpdateShortcut(msg.Name, msg.Shortcut))

	case message.TypeRemove:
		return result(mgr.RemoveRegister(msg.Name))

	case message.TypeCopy:
		return result(mgr.CopyFromRegister(msg.Name))

	case message.TypeWatch:
		return result(mgr.SetMonitoring(msg.Enabled))

	case message.TypeList:
		regs := mgr.Registers()
		infos := make([]message.RegisterInfo, len(regs))
		for i, r := range regs {
			infos[i] = message.RegisterInfo{
				Name:     r.Name,
				Content:  message.EncodePayload(r.Content),
				Shortcut: r.Shortcut,
			}
		}
		return &message.Message{Type: message.TypeRegisters, Registers: infos}

	case message.TypeStatus:
		status := mgr.Status()
		return &message.Message{
			Type:          message.TypeStatusResponse,
			Version:       Version,
			RegisterCount: status.Registers,
			BoundCount:    status.Bound,
			Monitoring:    status.Monitoring,
		}

	default:
		return errorMsg(message.ErrBadRequest, fmt.Errorf("unknown request type %q", msg.Type))
	}
}

func result(err error) *message.Message {
	if err == nil {
		return &message.Message{Type: message.TypeOK}
	}
	return errorMsg(errorCode(err), err)
}

func errorMsg(code string, err error) *message.Message {
	return &message.Message{Type: message.TypeError, Error: code, Detail: err.Error()}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return message.ErrNotFound
	case errors.Is(err, store.ErrConflict):
		return message.ErrConflict
	case errors.Is(err, manager.ErrEmptyName):
		return message.ErrBadRequest
	case errors.Is(err, clip.ErrUnavailable):
		return message.ErrUnavailable
	default:
		return message.ErrPersistence
	}
}
