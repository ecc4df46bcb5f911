package keeper

import (
	"sync"

	"cosmossdk.io/log"
	"cosmossdk.io/store/cachekv"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/bholdus-chain/dex/x/dex/types"
)

// Keeper of the dex store
type Keeper struct {
	store     storetypes.KVStore
	cdc       *codec.LegacyAmino
	ledger    types.LedgerKeeper
	authority types.ListingAuthority
	events    types.EventSink
	logger    log.Logger
	metrics   *DEXMetrics

	// locks serializes operations per trading pair. stateMu is held shared
	// by every operation and exclusively by whole-store operations such as
	// genesis export and parameter updates.
	locks   *pairLocks
	stateMu *sync.RWMutex

	moduleAddr sdk.AccAddress
}

// NewKeeper creates a new dex Keeper instance. The keeper owns the
// ModuleName-prefixed part of store.
func NewKeeper(
	store storetypes.KVStore,
	ledger types.LedgerKeeper,
	authority types.ListingAuthority,
	events types.EventSink,
	logger log.Logger,
) *Keeper {
	if events == nil {
		events = types.NopEventSink{}
	}
	return &Keeper{
		store:      prefix.NewStore(store, []byte(types.StoreKey+"/")),
		cdc:        types.ModuleCdc,
		ledger:     ledger,
		authority:  authority,
		events:     events,
		logger:     logger.With("module", "x/"+types.ModuleName),
		metrics:    GetDEXMetrics(),
		locks:      newPairLocks(),
		stateMu:    &sync.RWMutex{},
		moduleAddr: authtypes.NewModuleAddress(types.ModuleName),
	}
}

// Logger returns a module-specific logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetModuleAddress returns the account holding pool reserves, provisioning
// deposits and unclaimed provisioning shares.
func (k *Keeper) GetModuleAddress() sdk.AccAddress {
	return k.moduleAddr
}

// branch opens a write cache over the module store. Writes are only visible
// to others once the caller invokes Write.
func (k *Keeper) branch() *cachekv.Store {
	return cachekv.NewStore(k.store)
}
