package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/app"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/observability"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "employee-service",
	Short: "employee and department records API",
	// running without a subcommand serves HTTP
	RunE: runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "optional config file (yaml, json or toml); env vars take precedence")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, userCmd)
}

// openContainer loads configuration and connects every dependency. The
// returned cleanup closes connections and flushes the logger.
func openContainer(ctx context.Context) (*app.Container, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	c, err := app.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open dependencies", zap.Error(err))
		_ = logger.Sync()
		return nil, nil, err
	}
	return c, func() {
		c.Close()
		_ = logger.Sync()
	}, nil
}
