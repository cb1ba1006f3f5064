package main

import (
	"fmt"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/config"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and seed notification types",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := config.InitDB(cfg)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := config.Migrate(cmd.Context(), db); err != nil {
				return err
			}

			fmt.Println("Migration complete")
			return nil
		},
	}
}
