package keeper

import (
	"context"
	"math/big"
	"time"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bholdus-chain/dex/x/dex/types"
)

// SwapWithExactSupply sells exactly supplyAmount of path[0] for as much of
// the last asset as the pools give, failing when that is below minTargetAmount.
func (k *Keeper) SwapWithExactSupply(
	ctx context.Context,
	trader sdk.AccAddress,
	path []string,
	supplyAmount, minTargetAmount math.Int,
) (targetAmount math.Int, err error) {
	start := time.Now()
	defer func() {
		k.metrics.SwapLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			k.metrics.recordError("swap_with_exact_supply", err)
		}
	}()

	params := k.GetParams(ctx)
	if err := validatePath(params, path); err != nil {
		return math.Int{}, err
	}
	if err := validateAmounts(supplyAmount, minTargetAmount); err != nil {
		return math.Int{}, err
	}
	if supplyAmount.IsZero() {
		return math.Int{}, types.ErrZeroTargetAmount.Wrap("supply amount is zero")
	}
	pairs, err := pathPairs(path)
	if err != nil {
		return math.Int{}, err
	}

	unlock := k.lockPairs(pairs...)
	defer unlock()
	// Parameters may have changed before the locks were taken.
	params = k.GetParams(ctx)

	cache := k.branch()
	amounts, err := k.getTargetAmounts(cache, params, path, supplyAmount)
	if err != nil {
		return math.Int{}, err
	}
	targetAmount = amounts[len(amounts)-1]
	if targetAmount.LT(minTargetAmount) {
		return math.Int{}, types.ErrInsufficientTargetAmount.Wrapf("target %s below minimum %s", targetAmount, minTargetAmount)
	}

	if err := k.executeSwap(ctx, cache, trader, path, pairs, amounts, "exact_supply"); err != nil {
		return math.Int{}, err
	}
	return targetAmount, nil
}

// SwapWithExactTarget buys exactly targetAmount of the last asset of path,
// failing when that costs more than maxSupplyAmount of path[0].
func (k *Keeper) SwapWithExactTarget(
	ctx context.Context,
	trader sdk.AccAddress,
	path []string,
	targetAmount, maxSupplyAmount math.Int,
) (supplyAmount math.Int, err error) {
	start := time.Now()
	defer func() {
		k.metrics.SwapLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			k.metrics.recordError("swap_with_exact_target", err)
		}
	}()

	params := k.GetParams(ctx)
	if err := validatePath(params, path); err != nil {
		return math.Int{}, err
	}
	if err := validateAmounts(targetAmount, maxSupplyAmount); err != nil {
		return math.Int{}, err
	}
	if targetAmount.IsZero() {
		return math.Int{}, types.ErrZeroSupplyAmount.Wrap("target amount is zero")
	}
	pairs, err := pathPairs(path)
	if err != nil {
		return math.Int{}, err
	}

	unlock := k.lockPairs(pairs...)
	defer unlock()
	params = k.GetParams(ctx)

	cache := k.branch()
	amounts, err := k.getSupplyAmounts(cache, params, path, targetAmount)
	if err != nil {
		return math.Int{}, err
	}
	supplyAmount = amounts[0]
	if supplyAmount.GT(maxSupplyAmount) {
		return math.Int{}, types.ErrInsufficientSupplyAmount.Wrapf("supply %s above maximum %s", supplyAmount, maxSupplyAmount)
	}

	if err := k.executeSwap(ctx, cache, trader, path, pairs, amounts, "exact_target"); err != nil {
		return math.Int{}, err
	}
	return supplyAmount, nil
}

// executeSwap applies priced hops to the cached pools, moves the trader's
// funds and commits. Nothing is written if any step fails.
func (k *Keeper) executeSwap(
	ctx context.Context,
	cache storetypes.CacheKVStore,
	trader sdk.AccAddress,
	path []string,
	pairs []types.TradingPair,
	amounts []math.Int,
	kind string,
) error {
	for i, pair := range pairs {
		if err := k.swapHop(cache, pair, path[i], amounts[i], amounts[i+1]); err != nil {
			return err
		}
	}

	supplyAsset, targetAsset := path[0], path[len(path)-1]
	supplyAmount, targetAmount := amounts[0], amounts[len(amounts)-1]

	ops := k.newLedgerOps(ctx)
	if err := ops.transfer(supplyAsset, trader, k.moduleAddr, supplyAmount); err != nil {
		return err
	}
	if err := ops.transfer(targetAsset, k.moduleAddr, trader, targetAmount); err != nil {
		ops.revert()
		return err
	}
	cache.Write()

	k.metrics.SwapsTotal.WithLabelValues(kind, supplyAsset, targetAsset).Inc()
	k.metrics.SwapHops.Observe(float64(len(pairs)))
	for i, pair := range pairs {
		k.metrics.SwapVolume.WithLabelValues(pair.String(), path[i]).Add(amountFloat(amounts[i]))
		if reserves, err := k.getReserves(k.store, pair); err == nil {
			k.observePool(ctx, pair, reserves)
		}
	}

	k.Logger().Debug("swap executed",
		"trader", trader.String(),
		"kind", kind,
		"path", path,
		"supply", supplyAmount.String(),
		"target", targetAmount.String(),
	)
	k.events.Emit(ctx, types.EventSwap{
		Trader:  trader,
		Path:    append([]string(nil), path...),
		Amounts: amounts,
	})
	return nil
}

// swapHop moves supplyIn into and targetOut out of one pool and checks the
// constant product did not shrink.
func (k *Keeper) swapHop(store storetypes.KVStore, pair types.TradingPair, supplyAsset string, supplyIn, targetOut math.Int) error {
	reserves, err := k.getReserves(store, pair)
	if err != nil {
		return err
	}
	supplyPool, targetPool := reserves.Oriented(pair, supplyAsset)

	newSupplyPool, err := SafeAdd(supplyPool, supplyIn)
	if err != nil {
		return err
	}
	if targetOut.GT(targetPool) {
		return types.ErrInsufficientLiquidity.Wrapf("pair %s cannot pay out %s", pair, targetOut)
	}
	newTargetPool, err := SafeSub(targetPool, targetOut)
	if err != nil {
		return err
	}

	oldProduct := new(big.Int).Mul(supplyPool.BigInt(), targetPool.BigInt())
	newProduct := new(big.Int).Mul(newSupplyPool.BigInt(), newTargetPool.BigInt())
	if newProduct.Cmp(oldProduct) < 0 {
		k.metrics.InvariantFailures.WithLabelValues("constant_product").Inc()
		k.Logger().Error("constant product decreased",
			"pair", pair.String(),
			"old_product", oldProduct.String(),
			"new_product", newProduct.String(),
		)
		return types.ErrInvariantAfterCheckFailed.Wrapf("pair %s: %s < %s", pair, newProduct, oldProduct)
	}

	if pair.IsFirst(supplyAsset) {
		k.setReserves(store, pair, types.Reserves{Reserve0: newSupplyPool, Reserve1: newTargetPool})
	} else {
		k.setReserves(store, pair, types.Reserves{Reserve0: newTargetPool, Reserve1: newSupplyPool})
	}
	return nil
}
