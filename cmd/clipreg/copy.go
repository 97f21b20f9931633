package main

import (
	"github.com/spf13/cobra"

	"clipreg/internal/message"
)

func newCopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <name>",
		Short: "Copy a register's content to the system clipboard",
		Long: `Asks the daemon to copy the named register's current content to the
system clipboard — the same thing the register's hotkey does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return request(&message.Message{
				Type: message.TypeCopy,
				Name: args[0],
			})
		},
	}
}
