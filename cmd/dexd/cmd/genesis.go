package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bholdus-chain/dex/app"
)

// GenesisCmd groups genesis file helpers.
func GenesisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "genesis",
		Short:                      "Genesis file subcommands",
		DisableFlagParsing:         false,
		SuggestionsMinimumDistance: 2,
		RunE:                       func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	cmd.AddCommand(
		ValidateGenesisCmd(),
		DefaultGenesisCmd(),
		ExportGenesisCmd(),
	)
	return cmd
}

// ValidateGenesisCmd checks a genesis file, by default the configured one.
func ValidateGenesisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a genesis file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := LoadConfig(cmd)
				if err != nil {
					return err
				}
				path = cfg.App.GenesisFile
			}

			doc, err := app.ReadGenesisDoc(path)
			if err != nil {
				return fmt.Errorf("error validating genesis file %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "File at %s is a valid genesis file for chain %s\n", path, doc.ChainID)
			return nil
		},
	}
}

// DefaultGenesisCmd prints a genesis document with default module state.
func DefaultGenesisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "default",
		Short: "Print a default genesis file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chainID, _ := cmd.Flags().GetString(flagChainID)
			bz, err := app.DefaultGenesisDoc(chainID).MarshalIndent()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
			return err
		},
	}
	cmd.Flags().String(flagChainID, "dex-1", "chain id written to the document")
	return cmd
}

// ExportGenesisCmd prints the current state of a stopped node as a genesis
// document.
func ExportGenesisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export state to a genesis file",
		Args:  cobra.NoArgs,
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
			dexApp, err := openApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer dexApp.Close()

			state, err := dexApp.ExportGenesis(cmd.Context())
			if err != nil {
				return err
			}
			chainID, _ := cmd.Flags().GetString(flagChainID)
			bz, err := app.GenesisDoc{ChainID: chainID, AppState: state}.MarshalIndent()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
			return err
		},
	}
	cmd.Flags().String(flagChainID, "dex-1", "chain id written to the document")
	return cmd
}
