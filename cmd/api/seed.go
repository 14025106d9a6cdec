package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"legal-backend/internal/lawyers"
	"legal-backend/internal/shared/storage/db"
)

var seedLawyersCmd = &cobra.Command{
	Use:   "seed-lawyers",
	Short: "Upsert the bundled lawyer directory into the database",
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

		n, err := lawyers.Seed(ctx, &lawyers.PGRepo{DB: sqlDB})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d lawyers\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedLawyersCmd)
}
