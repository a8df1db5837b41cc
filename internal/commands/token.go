package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/atelierops/shop_ledger_app/internal/platform/config"
	"github.com/atelierops/shop_ledger_app/internal/utils"
)

func newMintTokenCommand() *cobra.Command {
	var userID string
	var expiry time.Duration

	cmd := &cobra.Command{
		Use:   "mint-token",
		Short: "Mint a bearer token for an operator",
		Long:  "Signs a JWT with the configured secret and issuer. Operator identity is managed by the user service; this mints tokens for operators it has vouched for.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			tokenExpiry := cfg.JWTExpiryDuration
			if expiry > 0 {
				tokenExpiry = expiry
			}

			token, err := utils.GenerateJWT(userID, cfg.JWTSecret, tokenExpiry, cfg.JWTIssuer)
			if err != nil {
				return fmt.Errorf("minting token: %w", err)
			}

			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "operator user ID to embed as the subject (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().DurationVar(&expiry, "expiry", 0, "token lifetime (default: configured JWT_EXPIRY_DURATION)")

	return cmd
}
