package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipreg/internal/message"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch on|off",
		Short: "Toggle clipboard monitoring of the \"default\" register",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var enabled bool
			switch args[0] {
			case "on":
				enabled = true
			case "off":
				enabled = false
			default:
				return fmt.Errorf("expected \"on\" or \"off\", got %q", args[0])
			}
			return request(&message.Message{
				Type:    message.TypeWatch,
				Enabled: enabled,
			})
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			resp, err := roundTrip(&message.Message{Type: message.TypeStatus})
			if err != nil {
				return err
			}
			monitoring := "off"
			if resp.Monitoring {
				monitoring = "on"
			}
			fmt.Printf("daemon:     clipreg %s\n", resp.Version)
			fmt.Printf("registers:  %d\n", resp.RegisterCount)
			fmt.Printf("hotkeys:    %d bound\n", resp.BoundCount)
			fmt.Printf("monitoring: %s\n", monitoring)
			return nil
		},
	}
}
