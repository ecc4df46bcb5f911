package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bholdus-chain/dex/x/ledger/keeper"
	"github.com/bholdus-chain/dex/x/ledger/types"
)

// AppModule adapts the ledger keeper to the application's genesis handling.
type AppModule struct {
	keeper *keeper.Keeper
}

func NewAppModule(k *keeper.Keeper) AppModule {
	return AppModule{keeper: k}
}

func (AppModule) Name() string {
	return types.ModuleName
}

func (AppModule) DefaultGenesis() json.RawMessage {
	return types.ModuleCdc.MustMarshalJSON(types.DefaultGenesis())
}

func (AppModule) ValidateGenesis(bz json.RawMessage) error {
	var genState types.GenesisState
	if err := types.ModuleCdc.UnmarshalJSON(bz, &genState); err != nil {
		return fmt.Errorf("failed to unmarshal %s genesis state: %w", types.ModuleName, err)
	}
	return genState.Validate()
}

func (am AppModule) InitGenesis(ctx context.Context, bz json.RawMessage) error {
	var genState types.GenesisState
	if err := types.ModuleCdc.UnmarshalJSON(bz, &genState); err != nil {
		return fmt.Errorf("failed to unmarshal %s genesis state: %w", types.ModuleName, err)
	}
	return am.keeper.InitGenesis(ctx, genState)
}

func (am AppModule) ExportGenesis(ctx context.Context) (json.RawMessage, error) {
	genState, err := am.keeper.ExportGenesis(ctx)
	if err != nil {
		return nil, err
	}
	return types.ModuleCdc.MarshalJSON(genState)
}
