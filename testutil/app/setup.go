package apptesting

import (
	"context"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/bholdus-chain/dex/app"
	dextypes "github.com/bholdus-chain/dex/x/dex/types"
	ledgertypes "github.com/bholdus-chain/dex/x/ledger/types"
)

// GenesisBuilder assembles an application genesis for tests.
type GenesisBuilder struct {
	Ledger ledgertypes.GenesisState
	Dex    dextypes.GenesisState
}

// NewGenesisBuilder starts from the default module genesis.
func NewGenesisBuilder() *GenesisBuilder {
	return &GenesisBuilder{
		Ledger: *ledgertypes.DefaultGenesis(),
		Dex:    *dextypes.DefaultGenesis(),
	}
}

// Fund adds a genesis balance.
func (b *GenesisBuilder) Fund(who sdk.AccAddress, asset string, amount int64) *GenesisBuilder {
	b.Ledger.Balances = append(b.Ledger.Balances, ledgertypes.Balance{
		Address: who.String(),
		Asset:   asset,
		Amount:  math.NewInt(amount),
	})
	return b
}

// EnablePool enables the pair and seeds it from provider, who must be funded.
func (b *GenesisBuilder) EnablePool(provider sdk.AccAddress, asset0, asset1 string, amount0, amount1 int64) *GenesisBuilder {
	b.Dex.TradingPairs = append(b.Dex.TradingPairs, dextypes.GenesisTradingPair{
		Pair:     dextypes.MustNewTradingPair(asset0, asset1),
		Status:   dextypes.EnabledStatus(),
		Reserves: dextypes.ZeroReserves(),
	})
	b.Dex.InitialLiquidity = append(b.Dex.InitialLiquidity, dextypes.GenesisLiquidity{
		Provider: provider.String(),
		Asset0:   asset0,
		Asset1:   asset1,
		Amount0:  math.NewInt(amount0),
		Amount1:  math.NewInt(amount1),
	})
	return b
}

// Build encodes the module sections.
func (b *GenesisBuilder) Build(t testing.TB) app.GenesisState {
	t.Helper()
	ledgerBz, err := ledgertypes.ModuleCdc.MarshalJSON(b.Ledger)
	require.NoError(t, err)
	dexBz, err := dextypes.ModuleCdc.MarshalJSON(b.Dex)
	require.NoError(t, err)
	return app.GenesisState{
		ledgertypes.ModuleName: ledgerBz,
		dextypes.ModuleName:    dexBz,
	}
}

// Addr returns a deterministic 20 byte test address derived from name.
func Addr(name string) sdk.AccAddress {
	bz := make([]byte, 20)
	copy(bz, name)
	return sdk.AccAddress(bz)
}

// SetupTestingApp builds an app over a memdb, with authority as the only
// listing authority, and applies the genesis from b.
func SetupTestingApp(t testing.TB, authority sdk.AccAddress, b *GenesisBuilder) *app.DexApp {
	t.Helper()

	db := dbm.NewMemDB()
	dexApp := app.NewDexApp(log.NewNopLogger(), db, dextypes.NewAddressListAuthority(authority))
	t.Cleanup(func() { _ = dexApp.Close() })

	if b == nil {
		b = NewGenesisBuilder()
	}
	require.NoError(t, dexApp.InitChain(context.Background(), b.Build(t)))
	return dexApp
}
