package dex

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bholdus-chain/dex/x/dex/keeper"
	"github.com/bholdus-chain/dex/x/dex/types"
)

// AppModule adapts the dex keeper to the application's genesis handling.
type AppModule struct {
	keeper *keeper.Keeper
}

// NewAppModule creates a new AppModule object
func NewAppModule(k *keeper.Keeper) AppModule {
	return AppModule{keeper: k}
}

// Name returns the dex module's name.
func (AppModule) Name() string {
	return types.ModuleName
}

// DefaultGenesis returns default genesis state as raw bytes for the dex
// module.
func (AppModule) DefaultGenesis() json.RawMessage {
	return types.ModuleCdc.MustMarshalJSON(types.DefaultGenesis())
}

// ValidateGenesis performs genesis state validation for the dex module.
func (AppModule) ValidateGenesis(bz json.RawMessage) error {
	var genState types.GenesisState
	if err := types.ModuleCdc.UnmarshalJSON(bz, &genState); err != nil {
		return fmt.Errorf("failed to unmarshal %s genesis state: %w", types.ModuleName, err)
	}
	return genState.Validate()
}

// InitGenesis performs genesis initialization for the dex module.
func (am AppModule) InitGenesis(ctx context.Context, bz json.RawMessage) error {
	var genState types.GenesisState
	if err := types.ModuleCdc.UnmarshalJSON(bz, &genState); err != nil {
		return fmt.Errorf("failed to unmarshal %s genesis state: %w", types.ModuleName, err)
	}
	return am.keeper.InitGenesis(ctx, genState)
}

// ExportGenesis returns the exported genesis state as raw bytes for the dex
// module.
func (am AppModule) ExportGenesis(ctx context.Context) (json.RawMessage, error) {
	genState, err := am.keeper.ExportGenesis(ctx)
	if err != nil {
		return nil, err
	}
	return types.ModuleCdc.MarshalJSON(genState)
}

// RegisteredInvariants returns the dex invariants by route name.
func (am AppModule) RegisteredInvariants() map[string]keeper.Invariant {
	return keeper.RegisteredInvariants(am.keeper)
}
