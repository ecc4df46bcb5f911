package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bholdus-chain/dex/app"
)

// NewRootCmd creates a new root command for dexd. It is called once in the
// main function.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dexd",
		Short: "Constant-product DEX daemon",
		Long: `dexd runs a constant-product exchange engine: liquidity pools, multi-hop
swaps and trading pair provisioning, served over an HTTP API.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().String(flagHome, app.DefaultNodeHome, "directory for config and data")

	rootCmd.AddCommand(
		InitCmd(),
		StartCmd(),
		GenesisCmd(),
		TokenCmd(),
		VersionCmd(),
	)
	return rootCmd
}
