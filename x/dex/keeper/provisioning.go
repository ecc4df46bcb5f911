package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bholdus-chain/dex/x/dex/types"
)

// orientedParams builds provisioning parameters in canonical order from
// thresholds given in (assetA, assetB) order.
func orientedParams(pair types.TradingPair, assetA string, minA, minB, targetA, targetB math.Int) types.ProvisioningParameters {
	if pair.IsFirst(assetA) {
		return types.NewProvisioningParameters(minA, minB, targetA, targetB)
	}
	return types.NewProvisioningParameters(minB, minA, targetB, targetA)
}

func (k *Keeper) authorize(ctx context.Context, caller sdk.AccAddress) error {
	if !k.authority.IsAuthorized(ctx, caller) {
		return types.ErrBadOrigin.Wrapf("%s is not a listing authority", caller)
	}
	return nil
}

// ListProvisioning moves a disabled pair into provisioning. Thresholds are
// ordered as (assetA, assetB).
func (k *Keeper) ListProvisioning(
	ctx context.Context,
	caller sdk.AccAddress,
	assetA, assetB string,
	minA, minB, targetA, targetB math.Int,
) (err error) {
	defer func() {
		if err != nil {
			k.metrics.recordError("list_provisioning", err)
		}
	}()

	if err := k.authorize(ctx, caller); err != nil {
		return err
	}
	pair, err := types.NewTradingPair(assetA, assetB)
	if err != nil {
		return err
	}
	if err := validateAmounts(minA, minB, targetA, targetB); err != nil {
		return err
	}

	unlock := k.lockPairs(pair)
	defer unlock()

	return k.listProvisioning(ctx, pair, orientedParams(pair, assetA, minA, minB, targetA, targetB))
}

func (k *Keeper) listProvisioning(ctx context.Context, pair types.TradingPair, params types.ProvisioningParameters) error {
	status, err := k.getStatus(k.store, pair)
	if err != nil {
		return err
	}
	if !status.IsDisabled() {
		return types.ErrTradingPairMustBeDisabled.Wrapf("pair %s is %s", pair, status.Status)
	}

	k.setStatus(k.store, pair, types.ProvisioningStatus(params))

	k.metrics.PairStatusChanges.WithLabelValues(types.StatusDisabled.String(), types.StatusProvisioning.String()).Inc()
	k.Logger().Info("trading pair provisioning", "pair", pair.String())
	k.events.Emit(ctx, types.EventTradingPairProvisioning{Pair: pair, Parameters: params})
	return nil
}

// UpdateProvisioningParameters replaces the thresholds of a provisioning
// pair, keeping what has already been contributed.
func (k *Keeper) UpdateProvisioningParameters(
	ctx context.Context,
	caller sdk.AccAddress,
	assetA, assetB string,
	minA, minB, targetA, targetB math.Int,
) (err error) {
	defer func() {
		if err != nil {
			k.metrics.recordError("update_provisioning_parameters", err)
		}
	}()

	if err := k.authorize(ctx, caller); err != nil {
		return err
	}
	pair, err := types.NewTradingPair(assetA, assetB)
	if err != nil {
		return err
	}
	if err := validateAmounts(minA, minB, targetA, targetB); err != nil {
		return err
	}

	unlock := k.lockPairs(pair)
	defer unlock()

	status, err := k.getStatus(k.store, pair)
	if err != nil {
		return err
	}
	if !status.IsProvisioning() {
		return types.ErrTradingPairMustBeProvisioning.Wrapf("pair %s is %s", pair, status.Status)
	}

	params := orientedParams(pair, assetA, minA, minB, targetA, targetB)
	params.AccumulatedProvision0 = status.Provisioning.AccumulatedProvision0
	params.AccumulatedProvision1 = status.Provisioning.AccumulatedProvision1
	k.setStatus(k.store, pair, types.ProvisioningStatus(params))

	k.Logger().Info("provisioning parameters updated", "pair", pair.String())
	k.events.Emit(ctx, types.EventProvisioningParametersUpdated{Pair: pair, Parameters: params})
	return nil
}

// AddProvision contributes to a provisioning pair. Amounts are ordered as
// (assetA, assetB); at least one side must meet its minimum contribution.
func (k *Keeper) AddProvision(
	ctx context.Context,
	who sdk.AccAddress,
	assetA, assetB string,
	amountA, amountB math.Int,
) (err error) {
	defer func() {
		if err != nil {
			k.metrics.recordError("add_provision", err)
		}
	}()

	pair, err := types.NewTradingPair(assetA, assetB)
	if err != nil {
		return err
	}
	if err := validateAmounts(amountA, amountB); err != nil {
		return err
	}

	unlock := k.lockPairs(pair)
	defer unlock()

	amount0, amount1 := amountA, amountB
	if !pair.IsFirst(assetA) {
		amount0, amount1 = amountB, amountA
	}

	cache := k.branch()
	status, err := k.getStatus(cache, pair)
	if err != nil {
		return err
	}
	if !status.IsProvisioning() {
		return types.ErrTradingPairMustBeProvisioning.Wrapf("pair %s is %s", pair, status.Status)
	}
	params := *status.Provisioning
	if amount0.IsZero() && amount1.IsZero() {
		return types.ErrInvalidContributionIncrement.Wrap("contribution is zero")
	}
	if amount0.LT(params.MinContribution0) && amount1.LT(params.MinContribution1) {
		return types.ErrInvalidContributionIncrement.Wrapf(
			"contribution %s/%s below minimum %s/%s",
			amount0, amount1, params.MinContribution0, params.MinContribution1)
	}

	params.AccumulatedProvision0, err = SafeAdd(params.AccumulatedProvision0, amount0)
	if err != nil {
		return err
	}
	params.AccumulatedProvision1, err = SafeAdd(params.AccumulatedProvision1, amount1)
	if err != nil {
		return err
	}
	contribution, _, err := k.getProvision(cache, pair, who)
	if err != nil {
		return err
	}
	contribution.Amount0, err = SafeAdd(contribution.Amount0, amount0)
	if err != nil {
		return err
	}
	contribution.Amount1, err = SafeAdd(contribution.Amount1, amount1)
	if err != nil {
		return err
	}
	k.setStatus(cache, pair, types.ProvisioningStatus(params))
	k.setProvision(cache, pair, who, contribution)

	ops := k.newLedgerOps(ctx)
	if err := ops.transfer(pair.First(), who, k.moduleAddr, amount0); err != nil {
		return err
	}
	if err := ops.transfer(pair.Second(), who, k.moduleAddr, amount1); err != nil {
		ops.revert()
		return err
	}
	cache.Write()

	k.metrics.ProvisionsTotal.WithLabelValues(pair.String()).Inc()
	k.events.Emit(ctx, types.EventAddProvision{
		Who:     who,
		Asset0:  pair.First(),
		Amount0: amount0,
		Asset1:  pair.Second(),
		Amount1: amount1,
	})
	return nil
}

// EnableProvisioningTradingPair ends provisioning once both targets are met.
// The accumulated deposits become the pool reserves and the shares owed to
// contributors are minted to the module account until claimed.
func (k *Keeper) EnableProvisioningTradingPair(ctx context.Context, caller sdk.AccAddress, assetA, assetB string) (err error) {
	defer func() {
		if err != nil {
			k.metrics.recordError("enable_provisioning_trading_pair", err)
		}
	}()

	if err := k.authorize(ctx, caller); err != nil {
		return err
	}
	pair, err := types.NewTradingPair(assetA, assetB)
	if err != nil {
		return err
	}

	unlock := k.lockPairs(pair)
	defer unlock()

	cache := k.branch()
	status, err := k.getStatus(cache, pair)
	if err != nil {
		return err
	}
	if !status.IsProvisioning() {
		return types.ErrTradingPairMustBeProvisioning.Wrapf("pair %s is %s", pair, status.Status)
	}
	params := status.Provisioning
	if !params.TargetReached() {
		return types.ErrUnqualifiedProvision.Wrapf(
			"accumulated %s/%s, target %s/%s",
			params.AccumulatedProvision0, params.AccumulatedProvision1,
			params.TargetProvision0, params.TargetProvision1)
	}

	shares, rate, err := InitialShares(params.AccumulatedProvision0, params.AccumulatedProvision1)
	if err != nil {
		return err
	}
	reserves := types.Reserves{Reserve0: params.AccumulatedProvision0, Reserve1: params.AccumulatedProvision1}
	k.setReserves(cache, pair, reserves)
	k.setExchangeRate(cache, pair, rate)
	k.setStatus(cache, pair, types.EnabledStatus())

	ops := k.newLedgerOps(ctx)
	if err := ops.mint(pair.ShareAssetID(), k.moduleAddr, shares); err != nil {
		return err
	}
	cache.Write()

	k.metrics.PairStatusChanges.WithLabelValues(types.StatusProvisioning.String(), types.StatusEnabled.String()).Inc()
	k.observePool(ctx, pair, reserves)
	k.Logger().Info("trading pair enabled from provisioning",
		"pair", pair.String(),
		"reserve0", reserves.Reserve0.String(),
		"reserve1", reserves.Reserve1.String(),
		"shares", shares.String(),
	)
	k.events.Emit(ctx, types.EventTradingPairEnabledFromProvisioning{
		Pair:        pair,
		Reserve0:    reserves.Reserve0,
		Reserve1:    reserves.Reserve1,
		TotalShares: shares,
	})
	return nil
}

// EnableTradingPair opens a pair for trading with empty reserves. It accepts
// disabled pairs and provisioning pairs nobody has contributed to yet.
func (k *Keeper) EnableTradingPair(ctx context.Context, caller sdk.AccAddress, assetA, assetB string) (err error) {
	defer func() {
		if err != nil {
			k.metrics.recordError("enable_trading_pair", err)
		}
	}()

	if err := k.authorize(ctx, caller); err != nil {
		return err
	}
	pair, err := types.NewTradingPair(assetA, assetB)
	if err != nil {
		return err
	}

	unlock := k.lockPairs(pair)
	defer unlock()

	return k.enableTradingPair(ctx, pair)
}

func (k *Keeper) enableTradingPair(ctx context.Context, pair types.TradingPair) error {
	status, err := k.getStatus(k.store, pair)
	if err != nil {
		return err
	}
	switch {
	case status.IsEnabled():
		return types.ErrTradingPairAlreadyEnabled.Wrapf("pair %s", pair)
	case status.IsProvisioning() && status.Provisioning.HasContributions():
		return types.ErrTradingPairAlreadyProvisioned.Wrapf("pair %s", pair)
	}

	k.setStatus(k.store, pair, types.EnabledStatus())

	k.metrics.PairStatusChanges.WithLabelValues(status.Status.String(), types.StatusEnabled.String()).Inc()
	k.Logger().Info("trading pair enabled", "pair", pair.String())
	k.events.Emit(ctx, types.EventTradingPairEnabled{Pair: pair})
	return nil
}

// ClaimDexShare pays who's provisioning shares out to beneficiary at the
// recorded initial exchange rate and clears the contribution. Claiming with
// nothing outstanding succeeds and pays nothing.
func (k *Keeper) ClaimDexShare(
	ctx context.Context,
	who, beneficiary sdk.AccAddress,
	assetA, assetB string,
) (shares math.Int, err error) {
	defer func() {
		if err != nil {
			k.metrics.recordError("claim_dex_share", err)
		}
	}()

	pair, err := types.NewTradingPair(assetA, assetB)
	if err != nil {
		return math.Int{}, err
	}

	unlock := k.lockPairs(pair)
	defer unlock()

	cache := k.branch()
	status, err := k.getStatus(cache, pair)
	if err != nil {
		return math.Int{}, err
	}
	if !status.IsEnabled() {
		return math.Int{}, types.ErrTradingPairMustBeEnabled.Wrapf("pair %s is %s", pair, status.Status)
	}
	contribution, found, err := k.getProvision(cache, pair, who)
	if err != nil {
		return math.Int{}, err
	}
	if !found {
		return math.ZeroInt(), nil
	}
	rate, found, err := k.getExchangeRate(cache, pair)
	if err != nil {
		return math.Int{}, err
	}
	if !found {
		return math.Int{}, types.ErrTradingPairMustBeEnabled.Wrapf("pair %s has no initial exchange rate", pair)
	}

	shares, err = SharesAtRate(rate, contribution.Amount0, contribution.Amount1)
	if err != nil {
		return math.Int{}, err
	}
	k.deleteProvision(cache, pair, who)

	ops := k.newLedgerOps(ctx)
	if err := ops.transfer(pair.ShareAssetID(), k.moduleAddr, beneficiary, shares); err != nil {
		return math.Int{}, err
	}
	cache.Write()

	k.metrics.SharesClaimed.WithLabelValues(pair.String()).Add(amountFloat(shares))
	k.events.Emit(ctx, types.EventClaimDexShare{
		Who:         who,
		Beneficiary: beneficiary,
		Pair:        pair,
		Shares:      shares,
	})
	return shares, nil
}
