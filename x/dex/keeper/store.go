package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bholdus-chain/dex/x/dex/types"
)

// GetParams returns the module parameters, falling back to the defaults
// before genesis has stored any.
func (k *Keeper) GetParams(_ context.Context) types.Params {
	bz := k.store.Get(ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	k.cdc.MustUnmarshal(bz, &params)
	return params
}

func (k *Keeper) setParams(store storetypes.KVStore, params types.Params) {
	store.Set(ParamsKey, k.cdc.MustMarshal(params))
}

func (k *Keeper) getStatus(store storetypes.KVStore, pair types.TradingPair) (types.TradingPairStatus, error) {
	bz := store.Get(PairStatusKey(pair))
	if bz == nil {
		return types.DisabledStatus(), nil
	}
	var status types.TradingPairStatus
	if err := k.cdc.Unmarshal(bz, &status); err != nil {
		return types.TradingPairStatus{}, fmt.Errorf("decode status of %s: %w", pair, err)
	}
	return status, nil
}

func (k *Keeper) setStatus(store storetypes.KVStore, pair types.TradingPair, status types.TradingPairStatus) {
	if status.IsDisabled() {
		store.Delete(PairStatusKey(pair))
		return
	}
	store.Set(PairStatusKey(pair), k.cdc.MustMarshal(status))
}

func (k *Keeper) getReserves(store storetypes.KVStore, pair types.TradingPair) (types.Reserves, error) {
	bz := store.Get(ReservesKey(pair))
	if bz == nil {
		return types.ZeroReserves(), nil
	}
	var reserves types.Reserves
	if err := k.cdc.Unmarshal(bz, &reserves); err != nil {
		return types.Reserves{}, fmt.Errorf("decode reserves of %s: %w", pair, err)
	}
	return reserves, nil
}

func (k *Keeper) setReserves(store storetypes.KVStore, pair types.TradingPair, reserves types.Reserves) {
	if reserves.IsEmpty() {
		store.Delete(ReservesKey(pair))
		return
	}
	store.Set(ReservesKey(pair), k.cdc.MustMarshal(reserves))
}

func (k *Keeper) getExchangeRate(store storetypes.KVStore, pair types.TradingPair) (types.ExchangeRate, bool, error) {
	bz := store.Get(ExchangeRateKey(pair))
	if bz == nil {
		return types.ExchangeRate{}, false, nil
	}
	var rate types.ExchangeRate
	if err := k.cdc.Unmarshal(bz, &rate); err != nil {
		return types.ExchangeRate{}, false, fmt.Errorf("decode exchange rate of %s: %w", pair, err)
	}
	return rate, true, nil
}

func (k *Keeper) setExchangeRate(store storetypes.KVStore, pair types.TradingPair, rate types.ExchangeRate) {
	store.Set(ExchangeRateKey(pair), k.cdc.MustMarshal(rate))
}

func (k *Keeper) getProvision(store storetypes.KVStore, pair types.TradingPair, who sdk.AccAddress) (types.Contribution, bool, error) {
	bz := store.Get(ProvisionKey(pair, who))
	if bz == nil {
		return types.Contribution{Amount0: math.ZeroInt(), Amount1: math.ZeroInt()}, false, nil
	}
	var c types.Contribution
	if err := k.cdc.Unmarshal(bz, &c); err != nil {
		return types.Contribution{}, false, fmt.Errorf("decode provision of %s on %s: %w", who, pair, err)
	}
	return c, true, nil
}

func (k *Keeper) setProvision(store storetypes.KVStore, pair types.TradingPair, who sdk.AccAddress, c types.Contribution) {
	store.Set(ProvisionKey(pair, who), k.cdc.MustMarshal(c))
}

func (k *Keeper) deleteProvision(store storetypes.KVStore, pair types.TradingPair, who sdk.AccAddress) {
	store.Delete(ProvisionKey(pair, who))
}

// GetTradingPairStatus returns the status of the pair formed by a and b.
func (k *Keeper) GetTradingPairStatus(_ context.Context, a, b string) (types.TradingPairStatus, error) {
	pair, err := types.NewTradingPair(a, b)
	if err != nil {
		return types.TradingPairStatus{}, err
	}
	return k.getStatus(k.store, pair)
}

// GetLiquidity returns the reserves of the pool of a and b, ordered as (a, b).
func (k *Keeper) GetLiquidity(_ context.Context, a, b string) (math.Int, math.Int, error) {
	pair, err := types.NewTradingPair(a, b)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	reserves, err := k.getReserves(k.store, pair)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	reserveA, reserveB := reserves.Oriented(pair, a)
	return reserveA, reserveB, nil
}

// GetProvision returns who's outstanding contribution to the pair, ordered as (a, b).
func (k *Keeper) GetProvision(_ context.Context, who sdk.AccAddress, a, b string) (math.Int, math.Int, error) {
	pair, err := types.NewTradingPair(a, b)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	c, _, err := k.getProvision(k.store, pair, who)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if pair.IsFirst(a) {
		return c.Amount0, c.Amount1, nil
	}
	return c.Amount1, c.Amount0, nil
}

// GetInitialShareExchangeRate returns the rate recorded when the pair left
// provisioning, aligned to the pair's canonical order.
func (k *Keeper) GetInitialShareExchangeRate(_ context.Context, a, b string) (types.ExchangeRate, bool, error) {
	pair, err := types.NewTradingPair(a, b)
	if err != nil {
		return types.ExchangeRate{}, false, err
	}
	return k.getExchangeRate(k.store, pair)
}

// GetTotalShares returns the outstanding pool shares of the pair.
func (k *Keeper) GetTotalShares(ctx context.Context, a, b string) (math.Int, error) {
	pair, err := types.NewTradingPair(a, b)
	if err != nil {
		return math.Int{}, err
	}
	return k.ledger.TotalIssuance(ctx, pair.ShareAssetID()), nil
}

// iterateStatuses calls cb for every listed pair until cb returns true.
func (k *Keeper) iterateStatuses(store storetypes.KVStore, cb func(types.TradingPair, types.TradingPairStatus) bool) error {
	iter := storetypes.KVStorePrefixIterator(store, PairStatusKeyPrefix)
	defer iter.Close()

	for ; iter.Valid(); iter.Next() {
		pair, _, err := parsePairKey(iter.Key()[len(PairStatusKeyPrefix):])
		if err != nil {
			return fmt.Errorf("iterate statuses: %w", err)
		}
		var status types.TradingPairStatus
		if err := k.cdc.Unmarshal(iter.Value(), &status); err != nil {
			return fmt.Errorf("decode status of %s: %w", pair, err)
		}
		if cb(pair, status) {
			break
		}
	}
	return nil
}

// iterateProvisions calls cb for every outstanding contribution until cb returns true.
func (k *Keeper) iterateProvisions(store storetypes.KVStore, cb func(types.TradingPair, sdk.AccAddress, types.Contribution) bool) error {
	iter := storetypes.KVStorePrefixIterator(store, ProvisionKeyPrefix)
	defer iter.Close()

	for ; iter.Valid(); iter.Next() {
		pair, who, err := parseProvisionKey(iter.Key()[len(ProvisionKeyPrefix):])
		if err != nil {
			return fmt.Errorf("iterate provisions: %w", err)
		}
		var c types.Contribution
		if err := k.cdc.Unmarshal(iter.Value(), &c); err != nil {
			return fmt.Errorf("decode provision of %s on %s: %w", who, pair, err)
		}
		if cb(pair, who, c) {
			break
		}
	}
	return nil
}

// GetAllTradingPairs returns every pair that is not disabled with its status.
func (k *Keeper) GetAllTradingPairs(_ context.Context) ([]types.TradingPair, []types.TradingPairStatus, error) {
	var (
		pairs    []types.TradingPair
		statuses []types.TradingPairStatus
	)
	err := k.iterateStatuses(k.store, func(pair types.TradingPair, status types.TradingPairStatus) bool {
		pairs = append(pairs, pair)
		statuses = append(statuses, status)
		return false
	})
	return pairs, statuses, err
}
