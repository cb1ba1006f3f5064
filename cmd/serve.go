package main

import (
	"fmt"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/config"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/http"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, err := config.InitContext(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize context: %w", err)
			}

			defer func() {
				if err := ctx.Logger.Sync(); err != nil {
					fmt.Printf("Failed to sync logger: %v\n", err)
				}
			}()

			sqlDB, err := ctx.DB.DB()
			if err != nil {
				ctx.Logger.Fatal("Failed to get underlying SQL DB from GORM DB", zap.Error(err))
			}
			defer func() {
				if err := sqlDB.Close(); err != nil {
					ctx.Logger.Error("Failed to close database connection", zap.Error(err))
				}
			}()

			if !skipMigrate {
				if err := config.Migrate(cmd.Context(), ctx.DB); err != nil {
					return err
				}
			}

			service := http.NewHTTPService(ctx)

			ctx.Logger.Info("Starting server", zap.String("port", cfg.Port))
			if err := service.Engine().Run(":" + cfg.Port); err != nil {
				ctx.Logger.Error("Failed to start the server", zap.Error(err))
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not migrate the schema on startup")
	return cmd
}
