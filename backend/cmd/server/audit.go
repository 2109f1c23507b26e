package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobrelay/backend/internal/config"
	"jobrelay/backend/internal/storage"
)

var auditLimit int

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent search audits stored in Postgres",
	Long: `
Print the most recent search audit records as JSON lines, newest first.
Requires DATABASE_URL.
`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().IntVarP(&auditLimit, "limit", "n", 20, "Number of records to show")
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Audit.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	if auditLimit <= 0 {
		return fmt.Errorf("--limit must be positive")
	}

	db, err := storage.NewDatabase(cfg.Audit.DatabaseURL, zap.NewNop())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	audits, err := db.GetRecentSearchAudits(ctx, auditLimit)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, audit := range audits {
		if err := enc.Encode(audit); err != nil {
			return err
		}
	}
	return nil
}
