package commands

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/atelierops/shop_ledger_app/internal/buildinfo"
	portssvc "github.com/atelierops/shop_ledger_app/internal/core/ports/services"
	"github.com/atelierops/shop_ledger_app/internal/core/services"
	"github.com/atelierops/shop_ledger_app/internal/platform/config"
	"github.com/atelierops/shop_ledger_app/internal/repositories/database/pgsql"
	"github.com/atelierops/shop_ledger_app/pkg/database"
)

// cliActor is recorded as createdBy/lastUpdatedBy on rows written from the CLI.
const cliActor = "admin-cli"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "sla-admin",
		Short:   "Shop ledger administration",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newBootstrapCommand())
	rootCmd.AddCommand(newLiquidateCommand())
	rootCmd.AddCommand(newReconcileCommand())
	rootCmd.AddCommand(newHashAPIKeyCommand())
	rootCmd.AddCommand(newMintTokenCommand())

	return rootCmd
}

// openServices connects to the database from the environment configuration and
// wires the service container the way the backend does, minus the event
// publisher. The returned pool must be closed by the caller.
func openServices(ctx context.Context) (*portssvc.ServiceContainer, *pgxpool.Pool, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	return services.NewServiceContainer(cfg, repos, nil), dbPool, nil
}
