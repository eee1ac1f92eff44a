package cmd

import (
	"restaurante/db"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded SQL migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		// connect would migrate silently with --auto-migrate; run verbose here instead
		autoMigrate = false
		if _, err := connect(ctx); err != nil {
			return err
		}
		defer db.Close()

		if err := db.ApplyMigrations(ctx, true); err != nil {
			return err
		}
		color.Green("✅ Database schema is up to date")
		return nil
	},
}
