package app_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	"github.com/bholdus-chain/dex/app"
	apptesting "github.com/bholdus-chain/dex/testutil/app"
	dextypes "github.com/bholdus-chain/dex/x/dex/types"
	ledgertypes "github.com/bholdus-chain/dex/x/ledger/types"
)

var (
	authority = apptesting.Addr("authority")
	alice     = apptesting.Addr("alice")
	bob       = apptesting.Addr("bob")
)

func seededGenesis() *apptesting.GenesisBuilder {
	return apptesting.NewGenesisBuilder().
		Fund(alice, "BHO", 10_000).
		Fund(alice, "BNB", 10_000).
		Fund(bob, "BHO", 1_000).
		EnablePool(alice, "BHO", "BNB", 1_000, 2_000)
}

func TestDefaultGenesisIsValid(t *testing.T) {
	gs := app.NewDefaultGenesisState()
	require.Len(t, gs, 2)
	require.NoError(t, app.ValidateGenesis(gs))

	doc := app.DefaultGenesisDoc("dex-1")
	require.NoError(t, doc.Validate())
	doc.ChainID = ""
	require.Error(t, doc.Validate())
}

func TestValidateGenesis_Errors(t *testing.T) {
	missing := app.NewDefaultGenesisState()
	delete(missing, dextypes.ModuleName)
	require.ErrorContains(t, app.ValidateGenesis(missing), "missing the dex module")

	unknown := app.NewDefaultGenesisState()
	unknown["oracle"] = json.RawMessage(`{}`)
	require.ErrorContains(t, app.ValidateGenesis(unknown), "unknown modules")

	garbage := app.NewDefaultGenesisState()
	garbage[ledgertypes.ModuleName] = json.RawMessage(`{"balances":"nope"}`)
	require.ErrorContains(t, app.ValidateGenesis(garbage), "ledger genesis")
}

func TestInitChain(t *testing.T) {
	dexApp := apptesting.SetupTestingApp(t, authority, seededGenesis())
	ctx := context.Background()

	require.True(t, dexApp.Initialized())
	require.ErrorContains(t, dexApp.InitChain(ctx, app.NewDefaultGenesisState()), "already initialized")

	r0, r1, err := dexApp.DexKeeper.GetLiquidity(ctx, "BHO", "BNB")
	require.NoError(t, err)
	require.Equal(t, "1000", r0.String())
	require.Equal(t, "2000", r1.String())
	require.Equal(t, "9000", dexApp.LedgerKeeper.Balance(ctx, "BHO", alice).String())
	require.Empty(t, dexApp.CheckInvariants(ctx))

	records := dexApp.Events.Recent(0, 0)
	require.Len(t, records, 1)
	require.Equal(t, dextypes.EventTypeAddLiquidity, records[0].Type)
}

func TestInitChain_RejectsUnfundedLiquidity(t *testing.T) {
	dexApp := app.NewDexApp(log.NewNopLogger(), dbm.NewMemDB(), dextypes.NewAddressListAuthority(authority))
	gs := apptesting.NewGenesisBuilder().EnablePool(alice, "BHO", "BNB", 1_000, 2_000).Build(t)
	require.Error(t, dexApp.InitChain(context.Background(), gs))
}

func TestExportImportRoundTrip(t *testing.T) {
	src := apptesting.SetupTestingApp(t, authority, seededGenesis())
	ctx := context.Background()

	_, err := src.DexKeeper.SwapWithExactSupply(ctx, bob, []string{"BHO", "BNB"}, math.NewInt(100), math.OneInt())
	require.NoError(t, err)

	exported, err := src.ExportGenesis(ctx)
	require.NoError(t, err)
	require.NoError(t, app.ValidateGenesis(exported))

	dst := app.NewDexApp(log.NewNopLogger(), dbm.NewMemDB(), dextypes.NewAddressListAuthority(authority))
	defer dst.Close()
	require.NoError(t, dst.InitChain(ctx, exported))

	again, err := dst.ExportGenesis(ctx)
	require.NoError(t, err)
	for name, bz := range exported {
		require.JSONEq(t, string(bz), string(again[name]), name)
	}
	require.Equal(t,
		src.LedgerKeeper.Balance(ctx, "BNB", bob).String(),
		dst.LedgerKeeper.Balance(ctx, "BNB", bob).String(),
	)
	require.Empty(t, dst.CheckInvariants(ctx))
}

func TestGenesisDocFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.json")
	doc := app.GenesisDoc{ChainID: "dex-test", AppState: seededGenesis().Build(t)}
	bz, err := doc.MarshalIndent()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, bz, 0o600))

	read, err := app.ReadGenesisDoc(path)
	require.NoError(t, err)
	require.Equal(t, "dex-test", read.ChainID)
	require.JSONEq(t, string(doc.AppState[dextypes.ModuleName]), string(read.AppState[dextypes.ModuleName]))

	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err = app.ReadGenesisDoc(path)
	require.Error(t, err)

	_, err = app.ReadGenesisDoc(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestConfig(t *testing.T) {
	cfg := app.DefaultConfig("/tmp/dexd")
	require.NoError(t, cfg.Validate())
	require.Equal(t, filepath.Join("/tmp/dexd", "config", "genesis.json"), cfg.GenesisFile)

	cfg.DBBackend = "rocksdb"
	require.Error(t, cfg.Validate())

	cfg = app.DefaultConfig("/tmp/dexd")
	cfg.LogLevel = "loud"
	require.Error(t, cfg.Validate())

	cfg = app.DefaultConfig("/tmp/dexd")
	cfg.LogFormat = "xml"
	require.Error(t, cfg.Validate())

	cfg = app.DefaultConfig("/tmp/dexd")
	cfg.Authorities = []string{"not-an-address"}
	require.Error(t, cfg.Validate())

	cfg = app.DefaultConfig("")
	cfg.DBBackend = "memdb"
	db, err := app.OpenDB(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = app.NewLogger(cfg)
	require.NoError(t, err)
}

func TestOpenDB_GoLevelDBPersists(t *testing.T) {
	cfg := app.DefaultConfig(t.TempDir())
	ctx := context.Background()

	db, err := app.OpenDB(cfg)
	require.NoError(t, err)
	first := app.NewDexApp(log.NewNopLogger(), db, dextypes.NewAddressListAuthority(authority))
	require.NoError(t, first.InitChain(ctx, seededGenesis().Build(t)))
	require.NoError(t, first.Close())

	db, err = app.OpenDB(cfg)
	require.NoError(t, err)
	second := app.NewDexApp(log.NewNopLogger(), db, dextypes.NewAddressListAuthority(authority))
	defer second.Close()
	require.True(t, second.Initialized())
	r0, _, err := second.DexKeeper.GetLiquidity(ctx, "BHO", "BNB")
	require.NoError(t, err)
	require.Equal(t, "1000", r0.String())
}
