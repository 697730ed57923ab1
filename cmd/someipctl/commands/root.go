// Package commands implements the someipctl CLI commands.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the top-level cobra command for someipctl.
var rootCmd = &cobra.Command{
	Use:   "someipctl",
	Short: "Codec CLI for SOME/IP and Service Discovery frames",
	Long:  "someipctl encodes, decodes, and sends one-shot SOME/IP and SD frames. It carries no session state of its own.",

	// Silence cobra's built-in usage/error printing so we control it.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(headerCmd())
	rootCmd.AddCommand(sdCmd())
	rootCmd.AddCommand(sendCmd())
	rootCmd.AddCommand(versionCmd())
}

// Execute runs the root command and exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
