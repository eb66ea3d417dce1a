package cli

import (
	"github.com/sangkips/fishledger/pkg/clock"
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(rootOpts)
			if err != nil {
				return wrap("load config", err)
			}
			defer func() { _ = log.Sync() }()

			db, err := openDatabase(cfg, clock.System{}, log)
			if err != nil {
				return wrap("migrate", err)
			}
			closeDatabase(db, log)
			return nil
		},
	}
}
