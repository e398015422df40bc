// Package melodyctl implements the command line client for a running
// melodyd instance.
package melodyctl

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var serverAddr string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "melodyctl",
		Short:         "Client for the melodyd MIDI generation service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaultAddr := "http://localhost:8080"
	if v := os.Getenv("MELODYD_URL"); v != "" {
		defaultAddr = v
	}
	root.PersistentFlags().StringVar(&serverAddr, "server", defaultAddr, "Base URL of the melodyd server")

	root.AddCommand(newCheckpointsCmd())
	root.AddCommand(newGenresCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newGenerateCmd())
	return root
}

// Execute runs the CLI with the given arguments.
func Execute(args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}
