package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"legal-backend/internal/shared/storage/db"
	"legal-backend/internal/shared/telemetry"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DatabaseURL == "" {
			return eris.New("DATABASE_URL is required")
		}
		ctx := cmd.Context()
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultCLIOptions()))
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return err
		}
		version, err := db.Version(ctx, sqlDB)
		if err != nil {
			return err
		}
		telemetry.Info("migrate.done", map[string]any{"version": version})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
