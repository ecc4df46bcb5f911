package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bholdus-chain/dex/x/dex/types"
)

// AddLiquidity deposits into an enabled pool and mints pool shares to who.
// The deposit is clamped to the current pool price, so the returned actual
// amounts may be lower than offered. Results are ordered as (assetA, assetB).
func (k *Keeper) AddLiquidity(
	ctx context.Context,
	who sdk.AccAddress,
	assetA, assetB string,
	amountA, amountB math.Int,
) (actualA, actualB, shares math.Int, err error) {
	defer func() {
		if err != nil {
			k.metrics.recordError("add_liquidity", err)
		}
	}()

	pair, err := types.NewTradingPair(assetA, assetB)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	if err := validateAmounts(amountA, amountB); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	if amountA.IsZero() || amountB.IsZero() {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrInvalidLiquidityIncrement.Wrap("both amounts must be positive")
	}

	unlock := k.lockPairs(pair)
	defer unlock()

	return k.addLiquidity(ctx, who, pair, assetA, amountA, amountB)
}

func (k *Keeper) addLiquidity(
	ctx context.Context,
	who sdk.AccAddress,
	pair types.TradingPair,
	assetA string,
	amountA, amountB math.Int,
) (math.Int, math.Int, math.Int, error) {
	amount0, amount1 := amountA, amountB
	if !pair.IsFirst(assetA) {
		amount0, amount1 = amountB, amountA
	}

	cache := k.branch()

	// 1. Guards
	status, err := k.getStatus(cache, pair)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	if !status.IsEnabled() {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrTradingPairMustBeEnabled.Wrapf("pair %s is %s", pair, status.Status)
	}

	// 2. Price the deposit
	reserves, err := k.getReserves(cache, pair)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	shareAsset := pair.ShareAssetID()
	totalShares := k.ledger.TotalIssuance(ctx, shareAsset)

	var actual0, actual1, shares math.Int
	if reserves.IsEmpty() {
		actual0, actual1 = amount0, amount1
		shares, _, err = InitialShares(amount0, amount1)
	} else {
		actual0, actual1, shares, err = proportionalDeposit(reserves, totalShares, amount0, amount1)
	}
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	if actual0.IsZero() || actual1.IsZero() || shares.IsZero() {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrInvalidLiquidityIncrement.Wrapf(
			"deposit of %s/%s yields %s shares", actual0, actual1, shares)
	}

	newReserve0, err := SafeAdd(reserves.Reserve0, actual0)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	newReserve1, err := SafeAdd(reserves.Reserve1, actual1)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	if _, err := SafeAdd(totalShares, shares); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	newReserves := types.Reserves{Reserve0: newReserve0, Reserve1: newReserve1}
	k.setReserves(cache, pair, newReserves)

	// 3. Move funds, then commit the pool update
	ops := k.newLedgerOps(ctx)
	if err := ops.transfer(pair.First(), who, k.moduleAddr, actual0); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	if err := ops.transfer(pair.Second(), who, k.moduleAddr, actual1); err != nil {
		ops.revert()
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	if err := ops.mint(shareAsset, who, shares); err != nil {
		ops.revert()
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	cache.Write()

	k.metrics.LiquidityAdded.WithLabelValues(pair.String(), pair.First()).Add(amountFloat(actual0))
	k.metrics.LiquidityAdded.WithLabelValues(pair.String(), pair.Second()).Add(amountFloat(actual1))
	k.observePool(ctx, pair, newReserves)

	k.Logger().Debug("liquidity added",
		"provider", who.String(),
		"pair", pair.String(),
		"amount0", actual0.String(),
		"amount1", actual1.String(),
		"shares", shares.String(),
	)
	k.events.Emit(ctx, types.EventAddLiquidity{
		Who:     who,
		Asset0:  pair.First(),
		Amount0: actual0,
		Asset1:  pair.Second(),
		Amount1: actual1,
		Shares:  shares,
	})

	if pair.IsFirst(assetA) {
		return actual0, actual1, shares, nil
	}
	return actual1, actual0, shares, nil
}

// proportionalDeposit clamps a deposit to the pool price. The side that
// limits the deposit is taken in full and determines the shares.
func proportionalDeposit(reserves types.Reserves, totalShares, amount0, amount1 math.Int) (math.Int, math.Int, math.Int, error) {
	if totalShares.IsZero() {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrZeroTotalShare.Wrap("pool holds reserves without shares")
	}
	r0, r1 := reserves.Reserve0, reserves.Reserve1

	ideal1, err := SafeMulDiv(amount0, r1, r0)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	if ideal1.LTE(amount1) {
		shares, err := SafeMulDiv(totalShares, amount0, r0)
		if err != nil {
			return math.Int{}, math.Int{}, math.Int{}, err
		}
		return amount0, ideal1, shares, nil
	}

	ideal0, err := SafeMulDiv(amount1, r0, r1)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	shares, err := SafeMulDiv(totalShares, amount1, r1)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	return ideal0, amount1, shares, nil
}

// RemoveLiquidity burns shares and pays out the proportional part of both
// reserves. minA and minB bound the payout and, like the results, are
// ordered as (assetA, assetB).
func (k *Keeper) RemoveLiquidity(
	ctx context.Context,
	who sdk.AccAddress,
	assetA, assetB string,
	shares, minA, minB math.Int,
) (withdrawnA, withdrawnB math.Int, err error) {
	defer func() {
		if err != nil {
			k.metrics.recordError("remove_liquidity", err)
		}
	}()

	pair, err := types.NewTradingPair(assetA, assetB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := validateAmounts(shares, minA, minB); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if shares.IsZero() {
		return math.Int{}, math.Int{}, types.ErrInvalidRemoveShareAmount.Wrap("shares must be positive")
	}

	unlock := k.lockPairs(pair)
	defer unlock()

	min0, min1 := minA, minB
	if !pair.IsFirst(assetA) {
		min0, min1 = minB, minA
	}

	cache := k.branch()
	shareAsset := pair.ShareAssetID()
	totalShares := k.ledger.TotalIssuance(ctx, shareAsset)
	if totalShares.IsZero() {
		return math.Int{}, math.Int{}, types.ErrZeroTotalShare.Wrapf("pair %s", pair)
	}
	if shares.GT(totalShares) {
		return math.Int{}, math.Int{}, types.ErrInvalidRemoveShareAmount.Wrapf("shares %s exceed total %s", shares, totalShares)
	}

	reserves, err := k.getReserves(cache, pair)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	withdraw0, err := SafeMulDiv(reserves.Reserve0, shares, totalShares)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	withdraw1, err := SafeMulDiv(reserves.Reserve1, shares, totalShares)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if withdraw0.LT(min0) || withdraw1.LT(min1) {
		return math.Int{}, math.Int{}, types.ErrUnacceptableWithdrawnAmount.Wrapf(
			"withdrawn %s/%s below minimum %s/%s", withdraw0, withdraw1, min0, min1)
	}

	newReserve0, err := SafeSub(reserves.Reserve0, withdraw0)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	newReserve1, err := SafeSub(reserves.Reserve1, withdraw1)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	newReserves := types.Reserves{Reserve0: newReserve0, Reserve1: newReserve1}
	k.setReserves(cache, pair, newReserves)

	ops := k.newLedgerOps(ctx)
	if err := ops.burn(shareAsset, who, shares); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := ops.transfer(pair.First(), k.moduleAddr, who, withdraw0); err != nil {
		ops.revert()
		return math.Int{}, math.Int{}, err
	}
	if err := ops.transfer(pair.Second(), k.moduleAddr, who, withdraw1); err != nil {
		ops.revert()
		return math.Int{}, math.Int{}, err
	}
	cache.Write()

	k.metrics.LiquidityRemoved.WithLabelValues(pair.String(), pair.First()).Add(amountFloat(withdraw0))
	k.metrics.LiquidityRemoved.WithLabelValues(pair.String(), pair.Second()).Add(amountFloat(withdraw1))
	k.observePool(ctx, pair, newReserves)

	k.Logger().Debug("liquidity removed",
		"provider", who.String(),
		"pair", pair.String(),
		"amount0", withdraw0.String(),
		"amount1", withdraw1.String(),
		"shares", shares.String(),
	)
	k.events.Emit(ctx, types.EventRemoveLiquidity{
		Who:     who,
		Asset0:  pair.First(),
		Amount0: withdraw0,
		Asset1:  pair.Second(),
		Amount1: withdraw1,
		Shares:  shares,
	})

	if pair.IsFirst(assetA) {
		return withdraw0, withdraw1, nil
	}
	return withdraw1, withdraw0, nil
}

// validateAmounts rejects nil, negative and unrepresentable amounts.
func validateAmounts(amounts ...math.Int) error {
	for _, amt := range amounts {
		if err := types.ValidateBalance(amt); err != nil {
			return err
		}
	}
	return nil
}

// observePool refreshes the pool gauges after a committed change.
func (k *Keeper) observePool(ctx context.Context, pair types.TradingPair, reserves types.Reserves) {
	k.metrics.PoolReserves.WithLabelValues(pair.String(), pair.First()).Set(amountFloat(reserves.Reserve0))
	k.metrics.PoolReserves.WithLabelValues(pair.String(), pair.Second()).Set(amountFloat(reserves.Reserve1))
	k.metrics.ShareSupply.WithLabelValues(pair.String()).Set(amountFloat(k.ledger.TotalIssuance(ctx, pair.ShareAssetID())))
}
