package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rmpc/internal/ipc"
)

// remoteCmd implements `rmpc remote --pid <pid> <remote-cmd>`, connecting
// to the IPC socket of an already-running instance and forwarding one of
// the commands spec.md §6 lists.
func remoteCmd() *cobra.Command {
	var pid int

	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Send a command to a running rmpc instance",
	}
	cmd.PersistentFlags().IntVar(&pid, "pid", 0, "pid of the running rmpc instance")
	_ = cmd.MarkPersistentFlagRequired("pid")

	cmd.AddCommand(&cobra.Command{
		Use:   "index-lrc <path>",
		Short: "Reindex a single lyrics file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return sendRemote(pid, ipc.Command{IndexLrc: &ipc.IndexLrcCommand{Path: args[0]}})
		},
	})

	cmd.AddCommand(func() *cobra.Command {
		var level string
		c := &cobra.Command{
			Use:   "status <message>",
			Short: "Show a status message in the running instance",
			Args:  cobra.ExactArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				return sendRemote(pid, ipc.Command{StatusMessage: &ipc.StatusMessageCommand{
					Message: args[0],
					Level:   level,
				}})
			},
		}
		c.Flags().StringVar(&level, "level", "info", "info|warn|error")
		return c
	}())

	cmd.AddCommand(&cobra.Command{
		Use:   "tmux <hook>",
		Short: "Forward a tmux hook notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return sendRemote(pid, ipc.Command{TmuxHook: &ipc.TmuxHookCommand{Hook: args[0]}})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "keybind <key>",
		Short: "Simulate a keypress in the running instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return sendRemote(pid, ipc.Command{Keybind: &ipc.KeybindCommand{Key: args[0]}})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "command <action>",
		Short: "Invoke an internal command by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return sendRemote(pid, ipc.Command{CommandAction: &ipc.CommandActionCommand{Action: args[0]}})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "switch-tab <name>",
		Short: "Switch the active tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return sendRemote(pid, ipc.Command{SwitchTab: &ipc.SwitchTabCommand{Name: args[0]}})
		},
	})

	return cmd
}

func sendRemote(pid int, cmd ipc.Command) error {
	lines, err := ipc.Send(ipc.SocketPath(pid), cmd)
	if err != nil {
		return fmt.Errorf("remote: %w", err)
	}
	for _, l := range lines {
		fmt.Println(l)
	}
	return nil
}
