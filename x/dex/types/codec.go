package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
)

// RegisterLegacyAminoCodec registers the module events so they can be
// encoded behind the Event interface.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterInterface((*Event)(nil), nil)
	cdc.RegisterConcrete(EventTradingPairProvisioning{}, "dex/TradingPairProvisioning", nil)
	cdc.RegisterConcrete(EventProvisioningParametersUpdated{}, "dex/ProvisioningParametersUpdated", nil)
	cdc.RegisterConcrete(EventTradingPairEnabled{}, "dex/TradingPairEnabled", nil)
	cdc.RegisterConcrete(EventTradingPairEnabledFromProvisioning{}, "dex/TradingPairEnabledFromProvisioning", nil)
	cdc.RegisterConcrete(EventAddProvision{}, "dex/AddProvision", nil)
	cdc.RegisterConcrete(EventClaimDexShare{}, "dex/ClaimDexShare", nil)
	cdc.RegisterConcrete(EventAddLiquidity{}, "dex/AddLiquidity", nil)
	cdc.RegisterConcrete(EventRemoveLiquidity{}, "dex/RemoveLiquidity", nil)
	cdc.RegisterConcrete(EventSwap{}, "dex/Swap", nil)
	cdc.RegisterConcrete(EventParamsUpdated{}, "dex/ParamsUpdated", nil)
}

// ModuleCdc encodes store records and genesis state.
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	RegisterLegacyAminoCodec(ModuleCdc)
	ModuleCdc.Seal()
}
