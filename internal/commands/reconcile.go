package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atelierops/shop_ledger_app/internal/utils"
	"github.com/atelierops/shop_ledger_app/pkg/database"
)

func newReconcileCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "List transactions that never reached the ledger",
		Long:  "Prints recorded transactions with no ledger posting, oldest first, with the account each should have hit. An empty report means the books are clean.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svcs, dbPool, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer database.ClosePgxPool(dbPool)

			items, err := svcs.Reporting.ReconciliationReport(ctx, limit)
			if err != nil {
				return fmt.Errorf("building reconciliation report: %w", err)
			}

			if len(items) == 0 {
				fmt.Println("No unposted transactions.")
				return nil
			}

			for _, item := range items {
				txn := item.Transaction
				fmt.Printf("%s  %s  %-8s %-10s amount=%s  expected account %s  %q\n",
					item.RecordedAt.Format("2006-01-02 15:04:05"),
					txn.TransactionID,
					txn.Type,
					txn.PaymentMethod,
					utils.FormatMoney(txn.Amount),
					item.ExpectedAccountCode,
					txn.Description,
				)
			}
			fmt.Printf("%d transactions need attention\n", len(items))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum items to list")

	return cmd
}
