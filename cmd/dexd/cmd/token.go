package cmd

import (
	"errors"
	"fmt"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/bholdus-chain/dex/api"
)

const flagTTL = "ttl"

// TokenCmd issues an API bearer token for an account using the configured
// api.jwt_secret.
func TokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token <address>",
		Short: "Issue an API token for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return fmt.Errorf("invalid address: %w", err)
			}
			cfg, err := LoadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.API.JWTSecret == "" {
				return errors.New("api.jwt_secret is not set")
			}
			ttl, _ := cmd.Flags().GetDuration(flagTTL)
			if ttl <= 0 {
				return fmt.Errorf("--%s must be positive", flagTTL)
			}

			token, err := api.NewAuthService([]byte(cfg.API.JWTSecret)).GenerateToken(addr, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().Duration(flagTTL, 24*time.Hour, "token lifetime")
	return cmd
}
