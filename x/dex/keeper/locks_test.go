package keeper_test

import (
	"sync"
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/bholdus-chain/dex/testutil/keeper"
	"github.com/bholdus-chain/dex/x/dex/keeper"
	"github.com/bholdus-chain/dex/x/dex/types"
)

func TestSortedUniquePairs(t *testing.T) {
	bhoBnb := types.MustNewTradingPair(BHO, BNB)
	bnbDot := types.MustNewTradingPair(BNB, DOT)
	bhoDot := types.MustNewTradingPair(DOT, BHO)

	got := keeper.SortedUniquePairsForTest([]types.TradingPair{bnbDot, bhoBnb, bnbDot, bhoDot, bhoBnb})
	require.Equal(t, []types.TradingPair{bhoBnb, bhoDot, bnbDot}, got)

	require.Empty(t, keeper.SortedUniquePairsForTest(nil))
}

// TestSwap_OpposingPathsDoNotDeadlock runs swaps that lock the same pairs in
// opposite path order next to deposits and quotes
func TestSwap_OpposingPathsDoNotDeadlock(t *testing.T) {
	f := keepertest.NewDexFixture(t)
	f.EnablePool(t, alice, BHO, BNB, 10_000_000, 10_000_000)
	f.EnablePool(t, alice, BNB, DOT, 10_000_000, 10_000_000)

	const rounds = 50
	f.Fund(t, bob, BHO, rounds*100)
	f.Fund(t, carol, DOT, rounds*100)
	f.Fund(t, alice, BHO, rounds*100)
	f.Fund(t, alice, BNB, rounds*100)

	var wg sync.WaitGroup
	errs := make(chan error, 4*rounds)
	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				if err := fn(); err != nil {
					errs <- err
				}
			}
		}()
	}

	run(func() error {
		_, err := f.Keeper.SwapWithExactSupply(f.Ctx, bob, []string{BHO, BNB, DOT}, math.NewInt(100), math.ZeroInt())
		return err
	})
	run(func() error {
		_, err := f.Keeper.SwapWithExactSupply(f.Ctx, carol, []string{DOT, BNB, BHO}, math.NewInt(100), math.ZeroInt())
		return err
	})
	run(func() error {
		_, _, _, err := f.Keeper.AddLiquidity(f.Ctx, alice, BHO, BNB, math.NewInt(100), math.NewInt(100))
		return err
	})
	run(func() error {
		_, err := f.Keeper.GetTargetAmounts(f.Ctx, []string{BHO, BNB, DOT}, math.NewInt(100))
		return err
	})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("concurrent operations did not finish")
	}
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	require.True(t, f.Balance(bob, BHO).IsZero())
	require.True(t, f.Balance(carol, DOT).IsZero())
	msg, broken := keeper.AllInvariants(f.Keeper)(f.Ctx)
	require.False(t, broken, msg)
}
