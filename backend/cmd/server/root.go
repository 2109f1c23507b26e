package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobrelay/backend/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "jobrelay",
	Short: "JobRelay - HTTP relay for job search providers",
	Long: `JobRelay exposes a single search endpoint and forwards every query
to the configured job search provider, returning its response unchanged.

Running without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute запуск CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(auditCmd)
}

// newLogger логгер пишет в stdout, в режиме разработки используется development конфигурация
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.IsDevelopment() {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.OutputPaths = []string{"stdout"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
