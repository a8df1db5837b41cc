package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atelierops/shop_ledger_app/internal/utils"
)

func newHashAPIKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-api-key [key]",
		Short: "Produce the bcrypt hash for a collaborator API key",
		Long:  "Hashes the given key for the SERVICE_API_KEY_HASH setting. With no argument a fresh random key is generated and printed alongside its hash.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) > 0 {
				key = args[0]
			} else {
				generated, err := utils.GenerateSecureRandomString(32)
				if err != nil {
					return fmt.Errorf("generating key: %w", err)
				}
				key = generated
				fmt.Printf("API key: %s\n", key)
			}

			hash, err := utils.HashAPIKey(key)
			if err != nil {
				return fmt.Errorf("hashing key: %w", err)
			}

			fmt.Printf("SERVICE_API_KEY_HASH=%s\n", hash)
			return nil
		},
	}

	return cmd
}
