package cmd

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bholdus-chain/dex/api"
	"github.com/bholdus-chain/dex/app"
	dextypes "github.com/bholdus-chain/dex/x/dex/types"
)

// StartCmd runs the API and metrics servers until interrupted.
func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the DEX daemon",
		Long: `Open the database, apply the genesis file on first start, then serve the HTTP
API and Prometheus metrics until SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			logger, err := app.NewLogger(cfg.App)
			if err != nil {
				return err
			}
			return runNode(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().String("db.backend", "", "database backend (memdb|goleveldb)")
	cmd.Flags().String("api.address", "", "HTTP API listen address")
	cmd.Flags().String("metrics.address", "", "Prometheus metrics listen address")
	cmd.Flags().String("log.level", "", "log level")
	cmd.Flags().String("log.format", "", "log format (plain|json)")
	cmd.Flags().String("genesis.file", "", "genesis file applied on first start")
	return cmd
}

// openApp opens the database and applies the genesis file if the database
// is empty.
func openApp(ctx context.Context, cfg Config, logger log.Logger) (*app.DexApp, error) {
	authority, err := dextypes.AddressListAuthorityFromBech32(cfg.App.Authorities)
	if err != nil {
		return nil, err
	}
	db, err := app.OpenDB(cfg.App)
	if err != nil {
		return nil, err
	}
	dexApp := app.NewDexApp(logger, db, authority)
	if dexApp.Initialized() {
		return dexApp, nil
	}

	doc, err := app.ReadGenesisDoc(cfg.App.GenesisFile)
	if err != nil {
		_ = dexApp.Close()
		return nil, err
	}
	if err := dexApp.InitChain(ctx, doc.AppState); err != nil {
		_ = dexApp.Close()
		return nil, fmt.Errorf("failed to apply genesis: %w", err)
	}
	logger.Info("applied genesis", "chain_id", doc.ChainID, "file", cfg.App.GenesisFile)
	return dexApp, nil
}

func runNode(ctx context.Context, cfg Config, logger log.Logger) error {
	dexApp, err := openApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := dexApp.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	shutdownTracing, err := initTracing(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}()

	apiCfg := cfg.API
	server := api.NewServer(dexApp, &apiCfg, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx)
	})
	if cfg.MetricsAddress != "" {
		g.Go(func() error {
			return runMetricsServer(gctx, cfg.MetricsAddress, logger)
		})
	}

	logger.Info("dexd started", "version", app.Version)
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("dexd stopped")
	return nil
}
