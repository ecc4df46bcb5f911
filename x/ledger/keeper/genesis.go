package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bholdus-chain/dex/x/ledger/types"
)

// InitGenesis mints every genesis balance.
func (k *Keeper) InitGenesis(ctx context.Context, gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return fmt.Errorf("invalid ledger genesis: %w", err)
	}
	for _, b := range gs.Balances {
		addr, err := sdk.AccAddressFromBech32(b.Address)
		if err != nil {
			return fmt.Errorf("InitGenesis: %w", err)
		}
		if err := k.Mint(ctx, b.Asset, addr, b.Amount); err != nil {
			return fmt.Errorf("InitGenesis: mint %s%s to %s: %w", b.Amount, b.Asset, b.Address, err)
		}
	}
	k.Logger().Info("ledger genesis initialized", "balances", len(gs.Balances))
	return nil
}

// ExportGenesis returns the ledger's balances.
func (k *Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	balances, err := k.GetAllBalances(ctx)
	if err != nil {
		return nil, err
	}
	gs := types.DefaultGenesis()
	gs.Balances = append(gs.Balances, balances...)
	return gs, nil
}
