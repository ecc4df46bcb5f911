package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bholdus-chain/dex/x/dex/types"
)

// UpdateParams replaces the exchange fee and trading path limit. It waits
// for in-flight operations so none of them mixes old and new parameters.
func (k *Keeper) UpdateParams(ctx context.Context, caller sdk.AccAddress, params types.Params) error {
	if err := k.authorize(ctx, caller); err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}

	unlock := k.lockAll()
	defer unlock()

	k.setParams(k.store, params)

	k.Logger().Info("params updated",
		"exchange_fee", params.ExchangeFee.String(),
		"trading_path_limit", params.TradingPathLimit,
	)
	k.events.Emit(ctx, types.EventParamsUpdated{Params: params})
	return nil
}
