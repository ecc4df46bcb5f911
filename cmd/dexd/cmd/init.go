package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/bholdus-chain/dex/app"
)

const (
	flagOverwrite = "overwrite"
	flagAuthority = "authority"
	flagChainID   = "chain-id"
)

// InitCmd returns a command that writes a default config and genesis file.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the configuration and genesis files",
		Long: `Write <home>/config/dexd.toml and <home>/config/genesis.json with default values.

Example:
  dexd init --chain-id dex-1 --authority bho1... --home ~/.dexd
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, _ := cmd.Flags().GetString(flagHome)
			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)
			authorities, _ := cmd.Flags().GetStringSlice(flagAuthority)
			chainID, _ := cmd.Flags().GetString(flagChainID)
			if chainID == "" {
				chainID = fmt.Sprintf("dex-%d", time.Now().Unix())
			}

			cfg := DefaultConfig(home)
			cfg.App.Authorities = authorities
			if err := cfg.Validate(); err != nil {
				return err
			}

			configPath := ConfigPath(home)
			genesisPath := cfg.App.GenesisFile
			if !overwrite {
				for _, path := range []string{configPath, genesisPath} {
					if fileExists(path) {
						return fmt.Errorf("%s already exists; use --%s to replace it", path, flagOverwrite)
					}
				}
			}

			if err := WriteConfigFile(configPath, cfg); err != nil {
				return err
			}
			bz, err := app.DefaultGenesisDoc(chainID).MarshalIndent()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(genesisPath), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(genesisPath, bz, 0o600); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "initialized %s (chain %s)\n", home, chainID)
			return nil
		},
	}

	cmd.Flags().String(flagChainID, "", "genesis file chain-id, if left blank will be randomly created")
	cmd.Flags().Bool(flagOverwrite, false, "overwrite existing config and genesis files")
	cmd.Flags().StringSlice(flagAuthority, nil, "listing authority account (repeatable)")
	return cmd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
