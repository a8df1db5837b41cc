package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atelierops/shop_ledger_app/internal/utils"
	"github.com/atelierops/shop_ledger_app/pkg/database"
)

func newBootstrapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the default account set",
		Long:  "Creates the operating till, consolidated till, mobile wallet and bank accounts if any are missing. Safe to run repeatedly.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svcs, dbPool, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer database.ClosePgxPool(dbPool)

			accounts, err := svcs.Account.EnsureDefaultAccounts(ctx, cliActor)
			if err != nil {
				return fmt.Errorf("bootstrapping default accounts: %w", err)
			}

			for _, a := range accounts {
				fmt.Printf("%s  %-28s balance=%s\n", a.Code, a.Name, utils.FormatMoney(a.Balance))
			}
			fmt.Printf("%d default accounts present\n", len(accounts))
			return nil
		},
	}

	return cmd
}
