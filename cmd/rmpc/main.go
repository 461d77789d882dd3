// Command rmpc is the terminal client's entrypoint: the root command
// launches the TUI, "remote" forwards a command to a running instance's
// IPC socket, and "albumart" is the scriptable cover-art helper spec.md
// §6 describes with its own exit-code contract.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var address, password, configPath string

	root := &cobra.Command{
		Use:           "rmpc",
		Short:         "A terminal user interface for MPD",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(address, password, configPath)
		},
	}
	root.Flags().StringVar(&address, "address", "", "MPD address override (host:port, /path, or @abstract)")
	root.Flags().StringVar(&password, "password", "", "MPD password override")
	root.Flags().StringVar(&configPath, "config", "", "explicit config file path")

	root.AddCommand(remoteCmd())
	root.AddCommand(albumArtCmd())
	return root
}
