package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bholdus-chain/dex/x/dex/types"
)

// InitGenesis initializes the DEX module's state from a genesis state.
// Initial liquidity is added last, through the regular deposit path, so
// providers must already be funded in the ledger.
func (k *Keeper) InitGenesis(ctx context.Context, gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return fmt.Errorf("invalid dex genesis: %w", err)
	}

	unlock := k.lockAll()
	defer unlock()

	k.setParams(k.store, gs.Params)

	for _, tp := range gs.TradingPairs {
		k.setStatus(k.store, tp.Pair, tp.Status)
		k.setReserves(k.store, tp.Pair, tp.Reserves)
		if tp.ExchangeRate != nil {
			k.setExchangeRate(k.store, tp.Pair, *tp.ExchangeRate)
		}
	}

	for _, p := range gs.Provisions {
		who, err := sdk.AccAddressFromBech32(p.Contributor)
		if err != nil {
			return fmt.Errorf("InitGenesis: provision contributor: %w", err)
		}
		k.setProvision(k.store, p.Pair, who, p.Contribution)
	}

	for _, l := range gs.InitialLiquidity {
		provider, err := sdk.AccAddressFromBech32(l.Provider)
		if err != nil {
			return fmt.Errorf("InitGenesis: liquidity provider: %w", err)
		}
		pair, err := types.NewTradingPair(l.Asset0, l.Asset1)
		if err != nil {
			return fmt.Errorf("InitGenesis: %w", err)
		}
		if _, _, _, err := k.addLiquidity(ctx, provider, pair, l.Asset0, l.Amount0, l.Amount1); err != nil {
			return fmt.Errorf("InitGenesis: add liquidity of %s to %s: %w", l.Provider, pair, err)
		}
	}

	k.Logger().Info("dex genesis initialized",
		"trading_pairs", len(gs.TradingPairs),
		"provisions", len(gs.Provisions),
		"initial_liquidity", len(gs.InitialLiquidity),
	)
	return nil
}

// ExportGenesis returns the DEX module's full state. Liquidity already in
// the pools is exported as reserves, never as InitialLiquidity.
func (k *Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	unlock := k.lockAll()
	defer unlock()

	gs := types.DefaultGenesis()
	gs.Params = k.GetParams(ctx)

	var (
		pairs    []types.TradingPair
		statuses []types.TradingPairStatus
	)
	err := k.iterateStatuses(k.store, func(pair types.TradingPair, status types.TradingPairStatus) bool {
		pairs = append(pairs, pair)
		statuses = append(statuses, status)
		return false
	})
	if err != nil {
		return nil, err
	}

	for i, pair := range pairs {
		reserves, err := k.getReserves(k.store, pair)
		if err != nil {
			return nil, err
		}
		tp := types.GenesisTradingPair{Pair: pair, Status: statuses[i], Reserves: reserves}
		rate, found, err := k.getExchangeRate(k.store, pair)
		if err != nil {
			return nil, err
		}
		if found {
			tp.ExchangeRate = &rate
		}
		gs.TradingPairs = append(gs.TradingPairs, tp)
	}

	err = k.iterateProvisions(k.store, func(pair types.TradingPair, who sdk.AccAddress, c types.Contribution) bool {
		gs.Provisions = append(gs.Provisions, types.GenesisProvision{
			Pair:         pair,
			Contributor:  who.String(),
			Contribution: c,
		})
		return false
	})
	if err != nil {
		return nil, err
	}

	return gs, nil
}
