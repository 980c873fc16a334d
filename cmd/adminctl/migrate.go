package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/refine-admin-api/pkg/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the embedded schema migrations",
	}
	cmd.AddCommand(
		migrateStep("up", "Apply all pending migrations", database.Up),
		migrateStep("down", "Roll back the most recent migration", database.Down),
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				e, err := openEnv(cmd.Context())
				if err != nil {
					return err
				}
				defer e.Close()

				version, dirty, err := database.Version(e.db.DB)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty=%t)\n", version, dirty)
				return nil
			},
		},
	)
	return cmd
}

func migrateStep(use, short string, direction database.Direction) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			if err := database.Migrate(e.db.DB, direction); err != nil {
				return err
			}
			e.logger.Sugar().Infow("migrations applied", "direction", direction)
			return nil
		},
	}
}
