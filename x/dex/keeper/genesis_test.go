package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/bholdus-chain/dex/testutil/keeper"
	"github.com/bholdus-chain/dex/x/dex/keeper"
	"github.com/bholdus-chain/dex/x/dex/types"
)

// populate leaves one pair in every interesting state: an enabled pool with
// liquidity, a provisioning pair with contributions and an enabled pair with
// unclaimed provisioning shares.
func populate(t *testing.T, f *keepertest.DexFixture) {
	t.Helper()
	f.EnablePool(t, alice, BHO, BNB, 1_000, 2_000)

	require.NoError(t, f.Keeper.ListProvisioning(f.Ctx, f.Authority, BNB, DOT,
		math.NewInt(1), math.NewInt(1), math.NewInt(1_000), math.NewInt(1_000)))
	f.Fund(t, bob, BNB, 300)
	require.NoError(t, f.Keeper.AddProvision(f.Ctx, bob, BNB, DOT, math.NewInt(300), math.ZeroInt()))

	require.NoError(t, f.Keeper.ListProvisioning(f.Ctx, f.Authority, BHO, DOT,
		math.NewInt(1), math.NewInt(1), math.NewInt(10), math.NewInt(10)))
	f.Fund(t, carol, BHO, 10)
	f.Fund(t, carol, DOT, 30)
	require.NoError(t, f.Keeper.AddProvision(f.Ctx, carol, BHO, DOT, math.NewInt(10), math.NewInt(30)))
	require.NoError(t, f.Keeper.EnableProvisioningTradingPair(f.Ctx, f.Authority, BHO, DOT))

	params := types.DefaultParams()
	params.TradingPathLimit = 4
	require.NoError(t, f.Keeper.UpdateParams(f.Ctx, f.Authority, params))
}

func TestGenesis_ExportImportRoundTrip(t *testing.T) {
	src := keepertest.NewDexFixture(t)
	populate(t, src)

	exported, err := src.Keeper.ExportGenesis(src.Ctx)
	require.NoError(t, err)
	require.NoError(t, exported.Validate())
	require.Len(t, exported.TradingPairs, 3)
	require.Len(t, exported.Provisions, 2)
	require.Empty(t, exported.InitialLiquidity)
	require.Equal(t, uint32(4), exported.Params.TradingPathLimit)

	balances, err := src.Ledger.ExportGenesis(src.Ctx)
	require.NoError(t, err)

	dst := keepertest.NewDexFixture(t)
	require.NoError(t, dst.Ledger.InitGenesis(dst.Ctx, *balances))
	require.NoError(t, dst.Keeper.InitGenesis(dst.Ctx, *exported))

	reexported, err := dst.Keeper.ExportGenesis(dst.Ctx)
	require.NoError(t, err)
	require.Equal(t,
		string(types.ModuleCdc.MustMarshalJSON(exported)),
		string(types.ModuleCdc.MustMarshalJSON(reexported)))

	msg, broken := keeper.AllInvariants(dst.Keeper)(dst.Ctx)
	require.False(t, broken, msg)

	// The imported state keeps working.
	shares, err := dst.Keeper.ClaimDexShare(dst.Ctx, carol, carol, DOT, BHO)
	require.NoError(t, err)
	require.True(t, shares.IsPositive())

	dst.Fund(t, bob, BHO, 100)
	_, err = dst.Keeper.SwapWithExactSupply(dst.Ctx, bob, []string{BHO, BNB}, math.NewInt(100), math.OneInt())
	require.NoError(t, err)
}

func TestGenesis_InitialLiquidity(t *testing.T) {
	f := keepertest.NewDexFixture(t)
	f.Fund(t, alice, BHO, 5_000)
	f.Fund(t, alice, BNB, 5_000)

	gs := types.DefaultGenesis()
	gs.TradingPairs = []types.GenesisTradingPair{{
		Pair:     types.MustNewTradingPair(BHO, BNB),
		Status:   types.EnabledStatus(),
		Reserves: types.ZeroReserves(),
	}}
	gs.InitialLiquidity = []types.GenesisLiquidity{
		{Provider: alice.String(), Asset0: BNB, Asset1: BHO, Amount0: math.NewInt(2_000), Amount1: math.NewInt(1_000)},
		{Provider: alice.String(), Asset0: BHO, Asset1: BNB, Amount0: math.NewInt(500), Amount1: math.NewInt(5_000)},
	}
	require.NoError(t, f.Keeper.InitGenesis(f.Ctx, *gs))

	ra, rb, err := f.Keeper.GetLiquidity(f.Ctx, BHO, BNB)
	require.NoError(t, err)
	requireAmount(t, 1_500, ra)
	requireAmount(t, 3_000, rb)

	total, err := f.Keeper.GetTotalShares(f.Ctx, BHO, BNB)
	require.NoError(t, err)
	requireAmount(t, 3_000, total)
	requireAmount(t, 3_000, f.Balance(alice, shareOf(BHO, BNB)))
}

func TestGenesis_InitRejectsInvalidState(t *testing.T) {
	f := keepertest.NewDexFixture(t)

	gs := types.DefaultGenesis()
	gs.TradingPairs = []types.GenesisTradingPair{{
		Pair:     types.MustNewTradingPair(BHO, BNB),
		Status:   types.DisabledStatus(),
		Reserves: types.Reserves{Reserve0: math.NewInt(1), Reserve1: math.NewInt(1)},
	}}
	require.Error(t, f.Keeper.InitGenesis(f.Ctx, *gs))

	gs = types.DefaultGenesis()
	gs.TradingPairs = []types.GenesisTradingPair{{
		Pair:     types.MustNewTradingPair(BHO, BNB),
		Status:   types.EnabledStatus(),
		Reserves: types.ZeroReserves(),
	}}
	gs.InitialLiquidity = []types.GenesisLiquidity{
		{Provider: alice.String(), Asset0: BHO, Asset1: BNB, Amount0: math.NewInt(10), Amount1: math.NewInt(10)},
	}
	// alice holds nothing
	require.Error(t, f.Keeper.InitGenesis(f.Ctx, *gs))
}
