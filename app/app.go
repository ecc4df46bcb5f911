package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cosmossdk.io/log"
	"cosmossdk.io/store/dbadapter"
	storetypes "cosmossdk.io/store/types"
	dbm "github.com/cosmos/cosmos-db"

	"github.com/bholdus-chain/dex/x/dex"
	dexkeeper "github.com/bholdus-chain/dex/x/dex/keeper"
	dextypes "github.com/bholdus-chain/dex/x/dex/types"
	"github.com/bholdus-chain/dex/x/ledger"
	ledgerkeeper "github.com/bholdus-chain/dex/x/ledger/keeper"
)

const appName = "dexd"

var (
	// DefaultNodeHome is the default home directory for the application daemon.
	DefaultNodeHome string

	initializedKey = []byte("app/genesis_initialized")
)

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}

	DefaultNodeHome = filepath.Join(userHomeDir, "."+appName)
}

var _ dextypes.LedgerKeeper = (*ledgerkeeper.Keeper)(nil)

// ModuleBasic is the genesis surface every module provides without a keeper.
type ModuleBasic interface {
	Name() string
	DefaultGenesis() json.RawMessage
	ValidateGenesis(bz json.RawMessage) error
}

// Module is a ModuleBasic bound to its keeper.
type Module interface {
	ModuleBasic
	InitGenesis(ctx context.Context, bz json.RawMessage) error
	ExportGenesis(ctx context.Context) (json.RawMessage, error)
}

// DexApp wires the ledger and the dex engine over one database.
type DexApp struct {
	logger log.Logger
	db     dbm.DB
	store  storetypes.KVStore

	LedgerKeeper *ledgerkeeper.Keeper
	DexKeeper    *dexkeeper.Keeper
	Events       *EventLog

	modules []Module
}

// NewDexApp returns a reference to an initialized DexApp.
func NewDexApp(logger log.Logger, db dbm.DB, authority dextypes.ListingAuthority) *DexApp {
	store := dbadapter.Store{DB: db}
	events := NewEventLog(DefaultEventLogSize, logger)

	app := &DexApp{
		logger: logger,
		db:     db,
		store:  store,
		Events: events,
	}
	app.LedgerKeeper = ledgerkeeper.NewKeeper(store, logger)
	app.DexKeeper = dexkeeper.NewKeeper(store, app.LedgerKeeper, authority, events, logger)
	app.modules = []Module{
		ledger.NewAppModule(app.LedgerKeeper),
		dex.NewAppModule(app.DexKeeper),
	}
	return app
}

// Logger returns the application logger.
func (app *DexApp) Logger() log.Logger {
	return app.logger
}

// Initialized reports whether a genesis has been applied to the database.
func (app *DexApp) Initialized() bool {
	return app.store.Has(initializedKey)
}

// InitChain applies gs to an empty database.
func (app *DexApp) InitChain(ctx context.Context, gs GenesisState) error {
	if app.Initialized() {
		return fmt.Errorf("genesis already initialized")
	}
	if err := ValidateGenesis(gs); err != nil {
		return err
	}
	for _, m := range app.modules {
		if err := m.InitGenesis(ctx, gs[m.Name()]); err != nil {
			return fmt.Errorf("failed to init %s genesis: %w", m.Name(), err)
		}
	}
	if msg, broken := dexkeeper.AllInvariants(app.DexKeeper)(ctx); broken {
		return fmt.Errorf("genesis breaks invariants: %s", msg)
	}
	app.store.Set(initializedKey, []byte{1})
	app.logger.Info("genesis initialized", "modules", len(app.modules))
	return nil
}

// ExportGenesis exports the state of every module.
func (app *DexApp) ExportGenesis(ctx context.Context) (GenesisState, error) {
	genesis := make(GenesisState, len(app.modules))
	for _, m := range app.modules {
		bz, err := m.ExportGenesis(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to export %s genesis: %w", m.Name(), err)
		}
		genesis[m.Name()] = bz
	}
	return genesis, nil
}

// CheckInvariants runs every registered invariant and returns the messages of
// those that are broken.
func (app *DexApp) CheckInvariants(ctx context.Context) map[string]string {
	broken := make(map[string]string)
	for route, inv := range dexkeeper.RegisteredInvariants(app.DexKeeper) {
		if msg, stop := inv(ctx); stop {
			broken[route] = msg
			app.logger.Error("invariant broken", "route", route, "msg", msg)
		}
	}
	return broken
}

// Close releases the database.
func (app *DexApp) Close() error {
	return app.db.Close()
}
