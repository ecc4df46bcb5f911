package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bholdus-chain/dex/x/dex/types"
)

// SwapHopForTest applies one hop with caller-chosen amounts against a
// throwaway cache, so tests can drive the constant product check directly.
func SwapHopForTest(k *Keeper, pair types.TradingPair, supplyAsset string, supplyIn, targetOut math.Int) error {
	return k.swapHop(k.branch(), pair, supplyAsset, supplyIn, targetOut)
}

// ExecuteSwapForTest runs a swap along path with caller-chosen hop amounts
// instead of priced ones.
func ExecuteSwapForTest(ctx context.Context, k *Keeper, trader sdk.AccAddress, path []string, amounts []math.Int) error {
	pairs, err := pathPairs(path)
	if err != nil {
		return err
	}
	return k.executeSwap(ctx, k.branch(), trader, path, pairs, amounts, "test")
}

// SetReservesForTest overwrites the stored reserves of a pair.
func SetReservesForTest(k *Keeper, pair types.TradingPair, reserves types.Reserves) {
	k.setReserves(k.store, pair, reserves)
}

// SortedUniquePairsForTest exposes the lock ordering helper.
func SortedUniquePairsForTest(pairs []types.TradingPair) []types.TradingPair {
	return sortedUniquePairs(pairs)
}
