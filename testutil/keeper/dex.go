package keeper

import (
	"context"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store/dbadapter"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/bholdus-chain/dex/x/dex/keeper"
	"github.com/bholdus-chain/dex/x/dex/types"
	ledgerkeeper "github.com/bholdus-chain/dex/x/ledger/keeper"
)

// DexFixture bundles a dex keeper with the collaborators tests inspect.
type DexFixture struct {
	Ctx       context.Context
	Keeper    *keeper.Keeper
	Ledger    *ledgerkeeper.Keeper
	Events    *EventRecorder
	Authority sdk.AccAddress
}

// Addr returns a deterministic 20 byte test address derived from name.
func Addr(name string) sdk.AccAddress {
	bz := make([]byte, 20)
	copy(bz, name)
	return sdk.AccAddress(bz)
}

// NewDexFixture creates a dex keeper over an in-memory store with a real
// ledger, an event recorder and a single listing authority.
func NewDexFixture(t testing.TB) *DexFixture {
	return NewDexFixtureWithLedger(t, nil)
}

// NewDexFixtureWithLedger is NewDexFixture with the ledger seen by the dex
// keeper replaced by wrap(ledger), for fault injection.
func NewDexFixtureWithLedger(t testing.TB, wrap func(types.LedgerKeeper) types.LedgerKeeper) *DexFixture {
	t.Helper()

	db := dbm.NewMemDB()
	store := dbadapter.Store{DB: db}

	ledger := ledgerkeeper.NewKeeper(store, log.NewNopLogger())
	var dexLedger types.LedgerKeeper = ledger
	if wrap != nil {
		dexLedger = wrap(ledger)
	}

	authority := Addr("authority")
	events := NewEventRecorder()
	k := keeper.NewKeeper(
		store,
		dexLedger,
		types.NewAddressListAuthority(authority),
		events,
		log.NewNopLogger(),
	)

	ctx := context.Background()
	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return &DexFixture{
		Ctx:       ctx,
		Keeper:    k,
		Ledger:    ledger,
		Events:    events,
		Authority: authority,
	}
}

// DexKeeper creates a test keeper for the DEX module with a default fixture
func DexKeeper(t testing.TB) (*keeper.Keeper, context.Context) {
	f := NewDexFixture(t)
	return f.Keeper, f.Ctx
}

// Fund mints amount of asset to who.
func (f *DexFixture) Fund(t testing.TB, who sdk.AccAddress, asset string, amount int64) {
	t.Helper()
	require.NoError(t, f.Ledger.Mint(f.Ctx, asset, who, math.NewInt(amount)))
}

// Balance returns who's ledger balance of asset.
func (f *DexFixture) Balance(who sdk.AccAddress, asset string) math.Int {
	return f.Ledger.Balance(f.Ctx, asset, who)
}

// EnablePool enables the pair of a and b and seeds it through provider.
func (f *DexFixture) EnablePool(t testing.TB, provider sdk.AccAddress, a, b string, amountA, amountB int64) {
	t.Helper()
	require.NoError(t, f.Keeper.EnableTradingPair(f.Ctx, f.Authority, a, b))
	f.Fund(t, provider, a, amountA)
	f.Fund(t, provider, b, amountB)
	_, _, _, err := f.Keeper.AddLiquidity(f.Ctx, provider, a, b, math.NewInt(amountA), math.NewInt(amountB))
	require.NoError(t, err)
}
