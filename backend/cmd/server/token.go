package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"jobrelay/backend/internal/api/middleware"
	"jobrelay/backend/internal/config"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for /api/search",
	Long: `
Issue an HS256 token signed with JWT_SECRET. The token is printed to stdout
and is accepted by /api/search until it expires.
`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "", "Client identifier stored in the token (required)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("subject")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is not set, authentication is disabled")
	}
	if tokenTTL <= 0 {
		return fmt.Errorf("--ttl must be positive")
	}

	token, err := middleware.GenerateToken(cfg.JWTSecret, tokenSubject, tokenTTL)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
