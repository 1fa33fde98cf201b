// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"
)

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage lshtml configuration",
		Long:  `Commands for viewing, testing, and clearing lshtml configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdTest())
	cmd.AddCommand(NewCmdClear())

	return cmd
}

// envVars lists the environment variables that override config values.
var envVars = []string{"LSHTML_DELIMITERS", "LSHTML_OUTPUT", "LSHTML_JOBS"}
