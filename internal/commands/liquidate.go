package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/atelierops/shop_ledger_app/internal/dto"
	"github.com/atelierops/shop_ledger_app/internal/utils"
	"github.com/atelierops/shop_ledger_app/pkg/database"
)

func newLiquidateCommand() *cobra.Command {
	var amount string
	var notes string
	var branchID string

	cmd := &cobra.Command{
		Use:   "liquidate",
		Short: "Liquidate the operating till",
		Long:  "Transfers the given amount from the operating till into the consolidated till, the same movement the close-of-day endpoint performs.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amount, err)
			}

			req := dto.CreateLiquidationRequest{
				Amount: amt,
				Notes:  notes,
			}
			if branchID != "" {
				req.BranchID = &branchID
			}

			svcs, dbPool, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer database.ClosePgxPool(dbPool)

			result, err := svcs.Liquidation.Liquidate(ctx, req, cliActor)
			if err != nil {
				return fmt.Errorf("liquidating: %w", err)
			}

			fmt.Printf("Liquidated %s under %s\n", utils.FormatMoney(result.Amount), result.Reference)
			fmt.Printf("  operating till    %s  balance=%s\n", result.SourceAccountID, utils.FormatMoney(result.SourceBalance))
			fmt.Printf("  consolidated till %s  balance=%s\n", result.DestinationAccountID, utils.FormatMoney(result.DestinationBalance))
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount to move (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&notes, "notes", "", "note recorded on both ledger legs")
	cmd.Flags().StringVar(&branchID, "branch", "", "branch scope (default: global tills)")

	return cmd
}
