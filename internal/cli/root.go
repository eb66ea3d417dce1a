// Package cli wires the fishledger commands.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the fishledger CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fishledger",
		Short: "Fish sale ledger service",
		Long: `fishledger tracks fish sales between a seller and its clients:
ordered and delivered quantities, payments, and the resulting debt or credit.

Configuration is read from .env and the environment (DB_DRIVER, DB_*,
JWT_SECRET, LEDGER_MAX_RETRIES, LOG_LEVEL, ...).`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))

	return cmd
}
