// clipreg: named clipboard registers with global hotkeys.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clipreg/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "clipreg",
		Short: "Named clipboard registers with global hotkeys",
		Long: `clipreg manages named "registers" of reusable text. Each register can be
bound to a global keyboard shortcut; pressing it anywhere copies the
register's content to the system clipboard. A register named "default"
tracks whatever you last copied system-wide.

Run "clipreg serve" once per session. The other sub-commands talk to the
running daemon over a local socket.

Config file search order (first found wins):
  /etc/clipreg/clipreg.toml
  $HOME/.config/clipreg/clipreg.toml
  path supplied via --config

All flags can be set via CLIPREG_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(),
		newAddCmd(),
		newSetCmd(),
		newBindCmd(),
		newRemoveCmd(),
		newListCmd(),
		newCopyCmd(),
		newWatchCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("clipreg %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(interactive bool, formatStr, levelStr string) {
	format := logging.ParseFormat(formatStr)
	level := logging.ParseLevel(levelStr)
	if levelStr == "" {
		if interactive {
			level = logging.ParseLevel("debug")
		} else {
			level = logging.ParseLevel("info")
		}
	}
	logging.Setup(format, level)
}
