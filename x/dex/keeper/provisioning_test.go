package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/bholdus-chain/dex/testutil/keeper"
	"github.com/bholdus-chain/dex/x/dex/keeper"
	"github.com/bholdus-chain/dex/x/dex/types"
)

func (suite *KeeperTestSuite) listBHOBNB(min0, min1, target0, target1 int64) {
	suite.Require().NoError(suite.f.Keeper.ListProvisioning(suite.f.Ctx, suite.f.Authority, BHO, BNB,
		math.NewInt(min0), math.NewInt(min1), math.NewInt(target0), math.NewInt(target1)))
}

func (suite *KeeperTestSuite) provide(who string, amountBHO, amountBNB int64) error {
	addr := keepertest.Addr(who)
	suite.fund(addr, BHO, amountBHO)
	suite.fund(addr, BNB, amountBNB)
	return suite.f.Keeper.AddProvision(suite.f.Ctx, addr, BHO, BNB, math.NewInt(amountBHO), math.NewInt(amountBNB))
}

// TestProvisioning_Lifecycle lists, funds, enables and claims a pair
func (suite *KeeperTestSuite) TestProvisioning_Lifecycle() {
	k, ctx := suite.f.Keeper, suite.f.Ctx
	suite.listBHOBNB(10, 10, 100, 200)

	status, err := k.GetTradingPairStatus(ctx, BNB, BHO)
	suite.Require().NoError(err)
	suite.Require().True(status.IsProvisioning())

	suite.Require().NoError(suite.provide("alice", 60, 0))
	suite.Require().NoError(suite.provide("bob", 40, 200))

	status, err = k.GetTradingPairStatus(ctx, BHO, BNB)
	suite.Require().NoError(err)
	suite.requireInt(100, status.Provisioning.AccumulatedProvision0)
	suite.requireInt(200, status.Provisioning.AccumulatedProvision1)

	provBNB, provBHO, err := k.GetProvision(ctx, bob, BNB, BHO)
	suite.Require().NoError(err)
	suite.requireInt(200, provBNB)
	suite.requireInt(40, provBHO)
	suite.requireInvariants()

	suite.Require().NoError(k.EnableProvisioningTradingPair(ctx, suite.f.Authority, BHO, BNB))
	suite.requireReserves(BHO, BNB, 100, 200)
	suite.requireTotalShares(BHO, BNB, 200)
	suite.requireBalance(k.GetModuleAddress(), shareOf(BHO, BNB), 200)

	enabled, ok := suite.f.Events.Last().(types.EventTradingPairEnabledFromProvisioning)
	suite.Require().True(ok)
	suite.requireInt(200, enabled.TotalShares)

	rate, found, err := k.GetInitialShareExchangeRate(ctx, BHO, BNB)
	suite.Require().NoError(err)
	suite.Require().True(found)
	suite.Require().Equal("1.000000000000000000", rate.Rate0.String())
	suite.Require().Equal("0.500000000000000000", rate.Rate1.String())
	suite.requireInvariants()

	shares, err := k.ClaimDexShare(ctx, alice, alice, BHO, BNB)
	suite.Require().NoError(err)
	suite.requireInt(60, shares)

	shares, err = k.ClaimDexShare(ctx, bob, carol, BNB, BHO)
	suite.Require().NoError(err)
	suite.requireInt(140, shares)
	suite.requireBalance(carol, shareOf(BHO, BNB), 140)
	suite.requireBalance(bob, shareOf(BHO, BNB), 0)
	suite.requireBalance(k.GetModuleAddress(), shareOf(BHO, BNB), 0)

	claim, ok := suite.f.Events.Last().(types.EventClaimDexShare)
	suite.Require().True(ok)
	suite.Require().Equal(bob, claim.Who)
	suite.Require().Equal(carol, claim.Beneficiary)

	// A second claim finds nothing left.
	shares, err = k.ClaimDexShare(ctx, bob, bob, BHO, BNB)
	suite.Require().NoError(err)
	suite.Require().True(shares.IsZero())
	suite.requireInvariants()

	// Claimed shares are ordinary pool shares.
	withdrawnBHO, withdrawnBNB, err := k.RemoveLiquidity(ctx, carol, BHO, BNB, math.NewInt(140), math.ZeroInt(), math.ZeroInt())
	suite.Require().NoError(err)
	suite.requireInt(70, withdrawnBHO)
	suite.requireInt(140, withdrawnBNB)
	suite.requireInvariants()
}

// TestProvisioning_InexactRate rounds the initial rate and every claim down
func (suite *KeeperTestSuite) TestProvisioning_InexactRate() {
	k, ctx := suite.f.Keeper, suite.f.Ctx
	suite.listBHOBNB(1, 1, 100, 300)
	suite.Require().NoError(suite.provide("alice", 100, 0))
	suite.Require().NoError(suite.provide("bob", 0, 300))
	suite.Require().NoError(k.EnableProvisioningTradingPair(ctx, suite.f.Authority, BHO, BNB))

	suite.requireTotalShares(BHO, BNB, 199)

	shares, err := k.ClaimDexShare(ctx, alice, alice, BHO, BNB)
	suite.Require().NoError(err)
	suite.requireInt(100, shares)
	shares, err = k.ClaimDexShare(ctx, bob, bob, BHO, BNB)
	suite.Require().NoError(err)
	suite.requireInt(99, shares)
	suite.requireBalance(k.GetModuleAddress(), shareOf(BHO, BNB), 0)
	suite.requireInvariants()
}

func (suite *KeeperTestSuite) TestListProvisioning_Errors() {
	k, ctx := suite.f.Keeper, suite.f.Ctx
	one := math.OneInt()

	err := k.ListProvisioning(ctx, alice, BHO, BNB, one, one, one, one)
	suite.Require().ErrorIs(err, types.ErrBadOrigin)

	err = k.ListProvisioning(ctx, suite.f.Authority, BHO, BHO, one, one, one, one)
	suite.Require().ErrorIs(err, types.ErrInvalidCurrencyID)

	err = k.ListProvisioning(ctx, suite.f.Authority, BHO, shareOf(BNB, DOT), one, one, one, one)
	suite.Require().ErrorIs(err, types.ErrInvalidCurrencyID)

	suite.listBHOBNB(1, 1, 1, 1)
	err = k.ListProvisioning(ctx, suite.f.Authority, BNB, BHO, one, one, one, one)
	suite.Require().ErrorIs(err, types.ErrTradingPairMustBeDisabled)

	suite.Require().NoError(k.EnableTradingPair(ctx, suite.f.Authority, BNB, DOT))
	err = k.ListProvisioning(ctx, suite.f.Authority, DOT, BNB, one, one, one, one)
	suite.Require().ErrorIs(err, types.ErrTradingPairMustBeDisabled)
}

// TestListProvisioning_CallerOrder stores thresholds in canonical order
func (suite *KeeperTestSuite) TestListProvisioning_CallerOrder() {
	k, ctx := suite.f.Keeper, suite.f.Ctx
	suite.Require().NoError(k.ListProvisioning(ctx, suite.f.Authority, BNB, BHO,
		math.NewInt(1), math.NewInt(2), math.NewInt(30), math.NewInt(40)))

	status, err := k.GetTradingPairStatus(ctx, BHO, BNB)
	suite.Require().NoError(err)
	suite.requireInt(2, status.Provisioning.MinContribution0)
	suite.requireInt(1, status.Provisioning.MinContribution1)
	suite.requireInt(40, status.Provisioning.TargetProvision0)
	suite.requireInt(30, status.Provisioning.TargetProvision1)

	event, ok := suite.f.Events.Last().(types.EventTradingPairProvisioning)
	suite.Require().True(ok)
	suite.Require().Equal(types.MustNewTradingPair(BHO, BNB), event.Pair)
}

func (suite *KeeperTestSuite) TestAddProvision_Errors() {
	k, ctx := suite.f.Keeper, suite.f.Ctx

	err := suite.provide("alice", 10, 10)
	suite.Require().ErrorIs(err, types.ErrTradingPairMustBeProvisioning)

	suite.listBHOBNB(10, 20, 100, 100)

	err = k.AddProvision(ctx, alice, BHO, BNB, math.ZeroInt(), math.ZeroInt())
	suite.Require().ErrorIs(err, types.ErrInvalidContributionIncrement)

	err = suite.provide("alice", 9, 19)
	suite.Require().ErrorIs(err, types.ErrInvalidContributionIncrement)

	err = k.AddProvision(ctx, alice, BHO, BNB, math.NewInt(-1), math.NewInt(20))
	suite.Require().ErrorIs(err, types.ErrInvalidAmount)

	err = k.AddProvision(ctx, bob, BHO, BNB, math.NewInt(10), math.ZeroInt())
	suite.Require().Error(err, "bob holds nothing")

	status, err := k.GetTradingPairStatus(ctx, BHO, BNB)
	suite.Require().NoError(err)
	suite.Require().False(status.Provisioning.HasContributions())

	// One side meeting its minimum is enough.
	suite.Require().NoError(k.AddProvision(ctx, alice, BHO, BNB, math.NewInt(9), math.NewInt(20)))
	suite.Require().NoError(k.AddProvision(ctx, alice, BNB, BHO, math.ZeroInt(), math.NewInt(10)))

	provBHO, provBNB, err := k.GetProvision(ctx, alice, BHO, BNB)
	suite.Require().NoError(err)
	suite.requireInt(19, provBHO)
	suite.requireInt(20, provBNB)
	suite.requireBalance(alice, BHO, 0)
	suite.requireBalance(alice, BNB, 9)
	suite.requireInvariants()
}

func (suite *KeeperTestSuite) TestEnableProvisioningTradingPair_Errors() {
	k, ctx := suite.f.Keeper, suite.f.Ctx

	err := k.EnableProvisioningTradingPair(ctx, suite.f.Authority, BHO, BNB)
	suite.Require().ErrorIs(err, types.ErrTradingPairMustBeProvisioning)

	suite.listBHOBNB(1, 1, 100, 100)
	err = k.EnableProvisioningTradingPair(ctx, alice, BHO, BNB)
	suite.Require().ErrorIs(err, types.ErrBadOrigin)

	err = k.EnableProvisioningTradingPair(ctx, suite.f.Authority, BHO, BNB)
	suite.Require().ErrorIs(err, types.ErrUnqualifiedProvision)

	// Reaching one target is not enough.
	suite.Require().NoError(suite.provide("alice", 150, 0))
	err = k.EnableProvisioningTradingPair(ctx, suite.f.Authority, BHO, BNB)
	suite.Require().ErrorIs(err, types.ErrUnqualifiedProvision)

	suite.Require().NoError(suite.provide("bob", 0, 99))
	err = k.EnableProvisioningTradingPair(ctx, suite.f.Authority, BHO, BNB)
	suite.Require().ErrorIs(err, types.ErrUnqualifiedProvision)

	suite.Require().NoError(suite.provide("bob", 0, 1))
	suite.Require().NoError(k.EnableProvisioningTradingPair(ctx, suite.f.Authority, BHO, BNB))

	err = k.EnableProvisioningTradingPair(ctx, suite.f.Authority, BHO, BNB)
	suite.Require().ErrorIs(err, types.ErrTradingPairMustBeProvisioning)

	err = suite.provide("carol", 10, 10)
	suite.Require().ErrorIs(err, types.ErrTradingPairMustBeProvisioning)
	suite.requireInvariants()
}

// TestProvisioning_ZeroTargets never enables a pool with an empty side
func (suite *KeeperTestSuite) TestProvisioning_ZeroTargets() {
	k, ctx := suite.f.Keeper, suite.f.Ctx
	suite.listBHOBNB(0, 0, 0, 0)
	suite.Require().NoError(suite.provide("alice", 10, 0))

	err := k.EnableProvisioningTradingPair(ctx, suite.f.Authority, BHO, BNB)
	suite.Require().ErrorIs(err, types.ErrUnqualifiedProvision)

	suite.Require().NoError(suite.provide("bob", 0, 10))
	suite.Require().NoError(k.EnableProvisioningTradingPair(ctx, suite.f.Authority, BHO, BNB))
	suite.requireTotalShares(BHO, BNB, 20)
}

func (suite *KeeperTestSuite) TestUpdateProvisioningParameters() {
	k, ctx := suite.f.Keeper, suite.f.Ctx
	one := math.OneInt()

	err := k.UpdateProvisioningParameters(ctx, suite.f.Authority, BHO, BNB, one, one, one, one)
	suite.Require().ErrorIs(err, types.ErrTradingPairMustBeProvisioning)

	suite.listBHOBNB(10, 10, 1_000, 1_000)
	suite.Require().NoError(suite.provide("alice", 100, 100))

	err = k.UpdateProvisioningParameters(ctx, alice, BHO, BNB, one, one, one, one)
	suite.Require().ErrorIs(err, types.ErrBadOrigin)

	err = k.EnableProvisioningTradingPair(ctx, suite.f.Authority, BHO, BNB)
	suite.Require().ErrorIs(err, types.ErrUnqualifiedProvision)

	suite.Require().NoError(k.UpdateProvisioningParameters(ctx, suite.f.Authority, BNB, BHO,
		math.NewInt(5), math.NewInt(1), math.NewInt(100), math.NewInt(50)))

	status, err := k.GetTradingPairStatus(ctx, BHO, BNB)
	suite.Require().NoError(err)
	suite.requireInt(1, status.Provisioning.MinContribution0)
	suite.requireInt(5, status.Provisioning.MinContribution1)
	suite.requireInt(50, status.Provisioning.TargetProvision0)
	suite.requireInt(100, status.Provisioning.TargetProvision1)
	suite.requireInt(100, status.Provisioning.AccumulatedProvision0)
	suite.requireInt(100, status.Provisioning.AccumulatedProvision1)

	_, ok := suite.f.Events.Last().(types.EventProvisioningParametersUpdated)
	suite.Require().True(ok)

	suite.Require().NoError(k.EnableProvisioningTradingPair(ctx, suite.f.Authority, BHO, BNB))
	suite.requireReserves(BHO, BNB, 100, 100)
}

func (suite *KeeperTestSuite) TestEnableTradingPair() {
	k, ctx := suite.f.Keeper, suite.f.Ctx

	suite.Require().ErrorIs(k.EnableTradingPair(ctx, alice, BHO, BNB), types.ErrBadOrigin)
	suite.Require().ErrorIs(k.EnableTradingPair(ctx, suite.f.Authority, BHO, BHO), types.ErrInvalidCurrencyID)
	suite.Require().ErrorIs(k.EnableTradingPair(ctx, suite.f.Authority, shareOf(BHO, BNB), DOT), types.ErrInvalidCurrencyID)

	suite.Require().NoError(k.EnableTradingPair(ctx, suite.f.Authority, BNB, BHO))
	status, err := k.GetTradingPairStatus(ctx, BHO, BNB)
	suite.Require().NoError(err)
	suite.Require().True(status.IsEnabled())
	suite.requireReserves(BHO, BNB, 0, 0)
	suite.Require().ErrorIs(k.EnableTradingPair(ctx, suite.f.Authority, BHO, BNB), types.ErrTradingPairAlreadyEnabled)

	// A provisioning pair nobody has contributed to can be enabled directly.
	suite.Require().NoError(k.ListProvisioning(ctx, suite.f.Authority, BNB, DOT,
		math.OneInt(), math.OneInt(), math.NewInt(10), math.NewInt(10)))
	suite.Require().NoError(k.EnableTradingPair(ctx, suite.f.Authority, BNB, DOT))

	suite.Require().NoError(k.ListProvisioning(ctx, suite.f.Authority, BHO, DOT,
		math.OneInt(), math.OneInt(), math.NewInt(10), math.NewInt(10)))
	suite.fund(alice, BHO, 1)
	suite.Require().NoError(k.AddProvision(ctx, alice, BHO, DOT, math.OneInt(), math.ZeroInt()))
	suite.Require().ErrorIs(k.EnableTradingPair(ctx, suite.f.Authority, BHO, DOT), types.ErrTradingPairAlreadyProvisioned)

	pairs, statuses, err := k.GetAllTradingPairs(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(pairs, 3)
	suite.Require().Len(statuses, 3)
}

func (suite *KeeperTestSuite) TestClaimDexShare_Errors() {
	k, ctx := suite.f.Keeper, suite.f.Ctx

	_, err := k.ClaimDexShare(ctx, alice, alice, BHO, BNB)
	suite.Require().ErrorIs(err, types.ErrTradingPairMustBeEnabled)

	_, err = k.ClaimDexShare(ctx, alice, alice, shareOf(BHO, BNB), DOT)
	suite.Require().ErrorIs(err, types.ErrInvalidCurrencyID)

	suite.listBHOBNB(1, 1, 10, 10)
	suite.Require().NoError(suite.provide("alice", 10, 10))
	_, err = k.ClaimDexShare(ctx, alice, alice, BHO, BNB)
	suite.Require().ErrorIs(err, types.ErrTradingPairMustBeEnabled)

	suite.Require().NoError(k.EnableProvisioningTradingPair(ctx, suite.f.Authority, BHO, BNB))
	shares, err := k.ClaimDexShare(ctx, carol, carol, BHO, BNB)
	suite.Require().NoError(err)
	suite.Require().True(shares.IsZero())
	suite.requireBalance(k.GetModuleAddress(), shareOf(BHO, BNB), 20)
}

// TestAddProvision_LedgerFailureIsAtomic fails the second deposit transfer
func TestAddProvision_LedgerFailureIsAtomic(t *testing.T) {
	var failing *keepertest.FailingLedger
	f := keepertest.NewDexFixtureWithLedger(t, func(inner types.LedgerKeeper) types.LedgerKeeper {
		failing = keepertest.NewFailingLedger(inner)
		return failing
	})
	require.NoError(t, f.Keeper.ListProvisioning(f.Ctx, f.Authority, BHO, BNB,
		math.OneInt(), math.OneInt(), math.NewInt(100), math.NewInt(100)))
	f.Fund(t, alice, BHO, 50)
	f.Fund(t, alice, BNB, 50)

	failing.Arm("transfer", 2)
	err := f.Keeper.AddProvision(f.Ctx, alice, BHO, BNB, math.NewInt(50), math.NewInt(50))
	require.ErrorIs(t, err, keepertest.ErrInjected)

	requireAmount(t, 50, f.Balance(alice, BHO))
	requireAmount(t, 50, f.Balance(alice, BNB))
	provBHO, provBNB, err := f.Keeper.GetProvision(f.Ctx, alice, BHO, BNB)
	require.NoError(t, err)
	require.True(t, provBHO.IsZero())
	require.True(t, provBNB.IsZero())
	status, err := f.Keeper.GetTradingPairStatus(f.Ctx, BHO, BNB)
	require.NoError(t, err)
	require.False(t, status.Provisioning.HasContributions())

	msg, broken := keeper.AllInvariants(f.Keeper)(f.Ctx)
	require.False(t, broken, msg)
}

// TestClaimDexShare_LedgerFailureKeepsRecord fails the share payout
func TestClaimDexShare_LedgerFailureKeepsRecord(t *testing.T) {
	var failing *keepertest.FailingLedger
	f := keepertest.NewDexFixtureWithLedger(t, func(inner types.LedgerKeeper) types.LedgerKeeper {
		failing = keepertest.NewFailingLedger(inner)
		return failing
	})
	require.NoError(t, f.Keeper.ListProvisioning(f.Ctx, f.Authority, BHO, BNB,
		math.OneInt(), math.OneInt(), math.NewInt(10), math.NewInt(10)))
	f.Fund(t, alice, BHO, 10)
	f.Fund(t, alice, BNB, 10)
	require.NoError(t, f.Keeper.AddProvision(f.Ctx, alice, BHO, BNB, math.NewInt(10), math.NewInt(10)))
	require.NoError(t, f.Keeper.EnableProvisioningTradingPair(f.Ctx, f.Authority, BHO, BNB))

	failing.Arm("transfer", 1)
	_, err := f.Keeper.ClaimDexShare(f.Ctx, alice, alice, BHO, BNB)
	require.ErrorIs(t, err, keepertest.ErrInjected)

	failing.Disarm()
	shares, err := f.Keeper.ClaimDexShare(f.Ctx, alice, alice, BHO, BNB)
	require.NoError(t, err)
	requireAmount(t, 20, shares)
}
