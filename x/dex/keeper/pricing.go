package keeper

import (
	"context"
	"math/big"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"

	"github.com/bholdus-chain/dex/x/dex/types"
)

// GetTargetAmount prices an exact-supply hop under the constant product rule
// with the fee taken on input. It returns zero when any input is zero.
func GetTargetAmount(supplyPool, targetPool, supplyAmount math.Int, fee types.ExchangeFee) (math.Int, error) {
	if supplyPool.IsZero() || targetPool.IsZero() || supplyAmount.IsZero() {
		return math.ZeroInt(), nil
	}

	feeKept := big.NewInt(int64(fee.Denominator - fee.Numerator))
	supplyAfterFee := new(big.Int).Mul(supplyAmount.BigInt(), feeKept)

	numerator := new(big.Int).Mul(supplyAfterFee, targetPool.BigInt())
	denominator := new(big.Int).Mul(supplyPool.BigInt(), big.NewInt(int64(fee.Denominator)))
	denominator.Add(denominator, supplyAfterFee)

	return narrow(numerator.Quo(numerator, denominator))
}

// GetSupplyAmount prices an exact-target hop. The result is rounded up by one
// unit so the pool never loses on rounding.
func GetSupplyAmount(supplyPool, targetPool, targetAmount math.Int, fee types.ExchangeFee) (math.Int, error) {
	if supplyPool.IsZero() || targetPool.IsZero() || targetAmount.IsZero() {
		return math.ZeroInt(), nil
	}
	if targetAmount.GTE(targetPool) {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf("target %s exceeds pool %s", targetAmount, targetPool)
	}

	numerator := new(big.Int).Mul(supplyPool.BigInt(), targetAmount.BigInt())
	numerator.Mul(numerator, big.NewInt(int64(fee.Denominator)))

	denominator := new(big.Int).Sub(targetPool.BigInt(), targetAmount.BigInt())
	denominator.Mul(denominator, big.NewInt(int64(fee.Denominator-fee.Numerator)))

	supply := numerator.Quo(numerator, denominator)
	return narrow(supply.Add(supply, big.NewInt(1)))
}

// GetTargetAmounts quotes an exact-supply swap along path. The returned slice
// has one amount per asset, starting with supplyAmount.
func (k *Keeper) GetTargetAmounts(ctx context.Context, path []string, supplyAmount math.Int) ([]math.Int, error) {
	params := k.GetParams(ctx)
	if err := validatePath(params, path); err != nil {
		return nil, err
	}
	return k.getTargetAmounts(k.store, params, path, supplyAmount)
}

// GetSupplyAmounts quotes an exact-target swap along path. The returned slice
// has one amount per asset, ending with targetAmount.
func (k *Keeper) GetSupplyAmounts(ctx context.Context, path []string, targetAmount math.Int) ([]math.Int, error) {
	params := k.GetParams(ctx)
	if err := validatePath(params, path); err != nil {
		return nil, err
	}
	return k.getSupplyAmounts(k.store, params, path, targetAmount)
}

func validatePath(params types.Params, path []string) error {
	if len(path) < 2 || uint32(len(path)) > params.TradingPathLimit {
		return types.ErrInvalidTradingPathLength.Wrapf("path length %d not in [2, %d]", len(path), params.TradingPathLimit)
	}
	return nil
}

// pathPairs resolves every hop of path into its trading pair.
func pathPairs(path []string) ([]types.TradingPair, error) {
	pairs := make([]types.TradingPair, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		pair, err := types.NewTradingPair(path[i], path[i+1])
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// hopPools loads the oriented pools of one hop, requiring an enabled pair
// with liquidity on both sides.
func (k *Keeper) hopPools(store storetypes.KVStore, supplyAsset, targetAsset string) (math.Int, math.Int, error) {
	pair, err := types.NewTradingPair(supplyAsset, targetAsset)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	status, err := k.getStatus(store, pair)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if !status.IsEnabled() {
		return math.Int{}, math.Int{}, types.ErrTradingPairMustBeEnabled.Wrapf("pair %s is %s", pair, status.Status)
	}
	reserves, err := k.getReserves(store, pair)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	supplyPool, targetPool := reserves.Oriented(pair, supplyAsset)
	if supplyPool.IsZero() || targetPool.IsZero() {
		return math.Int{}, math.Int{}, types.ErrInsufficientLiquidity.Wrapf("pair %s has no liquidity", pair)
	}
	return supplyPool, targetPool, nil
}

func (k *Keeper) getTargetAmounts(store storetypes.KVStore, params types.Params, path []string, supplyAmount math.Int) ([]math.Int, error) {
	amounts := make([]math.Int, len(path))
	amounts[0] = supplyAmount
	for i := 0; i+1 < len(path); i++ {
		supplyPool, targetPool, err := k.hopPools(store, path[i], path[i+1])
		if err != nil {
			return nil, err
		}
		target, err := GetTargetAmount(supplyPool, targetPool, amounts[i], params.ExchangeFee)
		if err != nil {
			return nil, err
		}
		if target.IsZero() {
			return nil, types.ErrZeroTargetAmount.Wrapf("hop %s -> %s", path[i], path[i+1])
		}
		amounts[i+1] = target
	}
	return amounts, nil
}

func (k *Keeper) getSupplyAmounts(store storetypes.KVStore, params types.Params, path []string, targetAmount math.Int) ([]math.Int, error) {
	amounts := make([]math.Int, len(path))
	amounts[len(path)-1] = targetAmount
	for i := len(path) - 1; i > 0; i-- {
		supplyPool, targetPool, err := k.hopPools(store, path[i-1], path[i])
		if err != nil {
			return nil, err
		}
		supply, err := GetSupplyAmount(supplyPool, targetPool, amounts[i], params.ExchangeFee)
		if err != nil {
			return nil, err
		}
		if supply.IsZero() {
			return nil, types.ErrZeroSupplyAmount.Wrapf("hop %s -> %s", path[i-1], path[i])
		}
		amounts[i-1] = supply
	}
	return amounts, nil
}
