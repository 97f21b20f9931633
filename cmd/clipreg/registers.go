package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"clipreg/internal/keybind"
	"clipreg/internal/message"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> [shortcut]",
		Short: "Create a register, optionally bound to a shortcut",
		Long: `Creates an empty register. The optional shortcut is a descriptor like
"cmd+shift+1" or "ctrl+f5"; on Linux "cmd" is the Super key, on Windows
the Windows key.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			shortcut := ""
			if len(args) == 2 {
				shortcut = args[1]
				warnUnparsed(shortcut)
			}
			return request(&message.Message{
				Type:     message.TypeAdd,
				Name:     args[0],
				Shortcut: shortcut,
			})
		},
	}
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> [content]",
		Short: "Set a register's content (from the argument or stdin)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			var content string
			if len(args) == 2 {
				content = args[1]
			} else {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = string(data)
			}
			return request(&message.Message{
				Type:    message.TypeSetContent,
				Name:    args[0],
				Payload: message.EncodePayload(content),
			})
		},
	}
}

func newBindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bind <name> <shortcut>",
		Short: "Change a register's shortcut (empty string clears it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			warnUnparsed(args[1])
			return request(&message.Message{
				Type:     message.TypeSetShortcut,
				Name:     args[0],
				Shortcut: args[1],
			})
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a register and release its shortcut",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return request(&message.Message{
				Type: message.TypeRemove,
				Name: args[0],
			})
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List all registers",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			resp, err := roundTrip(&message.Message{Type: message.TypeList})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSHORTCUT\tCONTENT")
			for _, r := range resp.Registers {
				content, err := r.DecodeContent()
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Shortcut, preview(content))
			}
			return tw.Flush()
		},
	}
}

// warnUnparsed tells the user when a shortcut descriptor yields no binding.
// The daemon accepts it either way; the register just won't have a hotkey.
func warnUnparsed(shortcut string) {
	if shortcut == "" {
		return
	}
	if _, ok := keybind.Parse(shortcut); !ok {
		fmt.Fprintf(os.Stderr, "warning: %q yields no key binding; register will have no hotkey\n", shortcut)
	}
}

// preview renders content on a single table row, truncated.
func preview(content string) string {
	content = strings.ReplaceAll(content, "\n", "⏎")
	if len(content) > 48 {
		return content[:48] + "…"
	}
	return content
}
